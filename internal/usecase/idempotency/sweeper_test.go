//go:build unit

package idempotency

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"arena-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPurger struct {
	mock.Mock
}

func (m *mockPurger) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestSweeper(p ExpiredKeyPurger, interval time.Duration) (*Sweeper, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewSweeper(p, config.IdempotencyConfig{SweepInterval: interval}, logger), &buf
}

func TestSweeper_SweepOnce(t *testing.T) {
	t.Run("reports purged keys", func(t *testing.T) {
		p := new(mockPurger)
		p.On("DeleteExpired", mock.Anything).Return(int64(3), nil).Once()
		s, logs := newTestSweeper(p, time.Hour)

		assert.Equal(t, int64(3), s.SweepOnce(context.Background()))
		assert.Contains(t, logs.String(), "count=3")
		p.AssertExpectations(t)
	})

	t.Run("nothing expired logs nothing", func(t *testing.T) {
		p := new(mockPurger)
		p.On("DeleteExpired", mock.Anything).Return(int64(0), nil).Once()
		s, logs := newTestSweeper(p, time.Hour)

		assert.Zero(t, s.SweepOnce(context.Background()))
		assert.Empty(t, logs.String())
	})

	t.Run("failure is logged", func(t *testing.T) {
		p := new(mockPurger)
		p.On("DeleteExpired", mock.Anything).Return(int64(0), errors.New("connection reset")).Once()
		s, logs := newTestSweeper(p, time.Hour)

		assert.Zero(t, s.SweepOnce(context.Background()))
		assert.Contains(t, logs.String(), "idempotency sweep failed")
	})
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	p := new(mockPurger)
	swept := make(chan struct{}, 8)
	p.On("DeleteExpired", mock.Anything).Return(int64(0), nil).Run(func(mock.Arguments) {
		select {
		case swept <- struct{}{}:
		default:
		}
	})
	s, _ := newTestSweeper(p, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
