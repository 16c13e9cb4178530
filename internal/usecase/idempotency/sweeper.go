// Package idempotency purges reservation idempotency keys past their expiry.
// Expired keys are already ignored on lookup; the sweep only bounds table size.
package idempotency

import (
	"context"
	"log/slog"
	"time"

	"arena-booking/internal/pkg/config"
)

type ExpiredKeyPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type Sweeper struct {
	purger   ExpiredKeyPurger
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(purger ExpiredKeyPurger, cfg config.IdempotencyConfig, logger *slog.Logger) *Sweeper {
	return &Sweeper{purger: purger, interval: cfg.SweepInterval, logger: logger}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		s.SweepOnce(ctx)
	}
}

// SweepOnce logs instead of returning the error; the next tick retries.
func (s *Sweeper) SweepOnce(ctx context.Context) int64 {
	n, err := s.purger.DeleteExpired(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "idempotency sweep failed", "error", err)
		return 0
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired idempotency keys purged", "count", n)
	}
	return n
}
