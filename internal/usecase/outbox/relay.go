// Package outbox delivers events written inside business transactions to the
// message broker once those transactions have committed.
package outbox

//go:generate mockgen -destination=../../../tests/mock/outbox/publisher.go -package=outboxmock . Publisher

import (
	"context"
	"log/slog"
	"time"

	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	CreatedAt   time.Time
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Relay publishes pending events at least once. Rows stay locked while a
// batch is published, so two relays never send the same event concurrently.
type Relay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger

	interval    time.Duration
	batchSize   int32
	maxAttempts int32
}

func NewRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, logger *slog.Logger, cfg config.OutboxConfig) *Relay {
	r := &Relay{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		logger:      logger,
		interval:    cfg.PollInterval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
	}
	if r.interval <= 0 {
		r.interval = 2 * time.Second
	}
	if r.batchSize <= 0 {
		r.batchSize = 50
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = 20
	}
	return r
}

func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.PublishPending(ctx); err != nil {
			r.logger.ErrorContext(ctx, "outbox tick failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// PublishPending sends one batch and returns how many events were published.
// Events that keep failing stop being claimed after maxAttempts.
func (r *Relay) PublishPending(ctx context.Context) (int, error) {
	published := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published = 0
		events, err := tx.Outbox().ClaimPending(ctx, tx.DB(), r.maxAttempts, r.batchSize)
		if err != nil {
			return err
		}

		for _, ev := range events {
			pubErr := r.publisher.Publish(ctx, Message{
				ID:          ev.ID,
				Topic:       ev.Topic,
				AggregateID: ev.AggregateID,
				Payload:     ev.Payload,
				CreatedAt:   ev.CreatedAt,
			})
			if pubErr != nil {
				level := slog.LevelWarn
				if ev.Attempts+1 >= r.maxAttempts {
					level = slog.LevelError
				}
				r.logger.Log(ctx, level, "outbox publish failed",
					"event_id", ev.ID,
					"topic", ev.Topic,
					"attempts", ev.Attempts+1,
					"error", pubErr,
				)
				if err := tx.Outbox().MarkFailed(ctx, tx.DB(), ev.ID, pubErr.Error()); err != nil {
					return err
				}
				continue
			}
			if err := tx.Outbox().MarkPublished(ctx, tx.DB(), ev.ID, r.clock.Now()); err != nil {
				return err
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(err, "failed to relay outbox events")
	}
	if published > 0 {
		r.logger.InfoContext(ctx, "outbox batch published", "published", published)
	}
	return published, nil
}
