//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequeueSettlementJob(t *testing.T) {
	f := newFixture(t)
	jobs := commands.NewSettlementJobCommands(f.store, queries.NewSettlementJobQueries(f.store.SettlementJobReadStore()), f.clock)

	lastError := "wallet of platform: insufficient held amount"
	failed := shared.SettlementJob{
		ID:            "settle:" + uuid.NewString(),
		ReservationID: uuid.New(),
		Payload:       []byte(`{}`),
		RunAt:         fixtureNow.Add(-24 * time.Hour),
		Attempts:      3,
		MaxAttempts:   3,
		Status:        shared.JobFailed,
		LastError:     &lastError,
		CreatedAt:     fixtureNow.Add(-48 * time.Hour),
		UpdatedAt:     fixtureNow.Add(-time.Hour),
	}
	f.store.PutJob(failed)

	view, err := jobs.RequeueSettlementJob(context.Background(), failed.ID)
	require.NoError(t, err)
	assert.Equal(t, "queued", view.Status)
	assert.Equal(t, int32(0), view.Attempts)
	assert.Equal(t, fixtureNow, view.RunAt)
	assert.Nil(t, view.LastError)

	t.Run("queued job cannot be requeued", func(t *testing.T) {
		_, err := jobs.RequeueSettlementJob(context.Background(), failed.ID)
		assert.True(t, errs.Is(err, commands.ErrJobNotFailed))
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := jobs.RequeueSettlementJob(context.Background(), "settle:missing")
		assert.True(t, errs.Is(err, queries.ErrSettlementJobNotFound))
	})
}
