//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettlementJobQueries struct {
	mock.Mock
}

func (m *MockSettlementJobQueries) UpsertSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertSettlementJobParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockSettlementJobQueries) DeleteSettlementJob(ctx context.Context, db sqlc.DBTX, id string) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettlementJobQueries) ClaimDueSettlementJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueSettlementJobsParams) ([]sqlc.SettlementJobs, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.SettlementJobs), args.Error(1)
}

func (m *MockSettlementJobQueries) CompleteSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteSettlementJobParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockSettlementJobQueries) RetrySettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.RetrySettlementJobParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockSettlementJobQueries) FailSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.FailSettlementJobParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockSettlementJobQueries) RequeueSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.RequeueSettlementJobParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestSettlementJobRepository_ClaimDue(t *testing.T) {
	now := fixedNow
	cutoff := now.Add(-5 * time.Minute)
	resID := uuid.New()

	m := new(MockSettlementJobQueries)
	m.On("ClaimDueSettlementJobs", mock.Anything, mock.Anything, sqlc.ClaimDueSettlementJobsParams{
		Now:         pgconvTime(now),
		LeaseCutoff: pgconvTime(cutoff),
		BatchSize:   10,
	}).Return([]sqlc.SettlementJobs{{
		ID:            "settle:" + resID.String(),
		ReservationID: resID,
		Payload:       []byte(`{"v":1}`),
		RunAt:         pgconvTime(now),
		Attempts:      1,
		MaxAttempts:   3,
		Status:        "running",
		LastError:     pgtype.Text{String: "boom", Valid: true},
		LockedAt:      pgconvTime(now),
	}}, nil)

	repo := NewSettlementJobRepository(m)
	jobs, err := repo.ClaimDue(context.Background(), nopDBTX{}, now, cutoff, 10)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, shared.JobRunning, jobs[0].Status)
	assert.Equal(t, int32(1), jobs[0].Attempts)
	require.NotNil(t, jobs[0].LastError)
	assert.Equal(t, "boom", *jobs[0].LastError)
	require.NotNil(t, jobs[0].LockedAt)
}

func TestSettlementJobRepository_DeleteAndRequeue(t *testing.T) {
	tests := []struct {
		name string
		rows int64
		want bool
	}{
		{name: "affected", rows: 1, want: true},
		{name: "nothing to do", rows: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockSettlementJobQueries)
			m.On("DeleteSettlementJob", mock.Anything, mock.Anything, "settle:x").Return(tt.rows, nil)
			m.On("RequeueSettlementJob", mock.Anything, mock.Anything, mock.Anything).Return(tt.rows, nil)

			repo := NewSettlementJobRepository(m)

			deleted, err := repo.Delete(context.Background(), nopDBTX{}, "settle:x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)

			requeued, err := repo.Requeue(context.Background(), nopDBTX{}, "settle:x", fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, requeued)
		})
	}
}

func TestSettlementJobRepository_Upsert_UnknownReservation(t *testing.T) {
	m := new(MockSettlementJobQueries)
	m.On("UpsertSettlementJob", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	repo := NewSettlementJobRepository(m)
	err := repo.Upsert(context.Background(), nopDBTX{}, shared.NewSettlementJob{ID: "settle:x", RunAt: fixedNow})

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
