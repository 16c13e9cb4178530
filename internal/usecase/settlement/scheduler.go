// Package settlement defers the hold-to-confirmed money movement until the
// reservation day starts and drives it to completion with bounded retries.
package settlement

import (
	"context"
	"time"

	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const jobIDPrefix = "settle:"

// JobID is deterministic so rescheduling a reservation replaces its job.
func JobID(reservationID uuid.UUID) string {
	return jobIDPrefix + reservationID.String()
}

type Scheduler struct {
	maxAttempts int32
}

func NewScheduler(cfg config.SettlementConfig) *Scheduler {
	return &Scheduler{maxAttempts: cfg.MaxAttempts}
}

func (s *Scheduler) Schedule(
	ctx context.Context,
	tx shared.Tx,
	reservationID uuid.UUID,
	runAt time.Time,
	amount decimal.Decimal,
	now time.Time,
) error {
	payload, err := EncodePayload(reservationID, amount)
	if err != nil {
		return err
	}
	return tx.SettlementJobs().Upsert(ctx, tx.DB(), shared.NewSettlementJob{
		ID:            JobID(reservationID),
		ReservationID: reservationID,
		Payload:       payload,
		RunAt:         runAt,
		MaxAttempts:   s.maxAttempts,
		CreatedAt:     now,
	})
}

// Unschedule drops a job that has not started. A running or finished job is
// left alone and false is returned.
func (s *Scheduler) Unschedule(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (bool, error) {
	removed, err := tx.SettlementJobs().Delete(ctx, tx.DB(), JobID(reservationID))
	if err != nil {
		return false, errs.Wrapf(err, "unschedule settlement of %s", reservationID)
	}
	return removed, nil
}
