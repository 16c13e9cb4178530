package settlement

import (
	"context"
	"log/slog"
	"time"

	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Settler confirms one reservation and moves its held funds.
type Settler interface {
	SettleReservation(ctx context.Context, reservationID uuid.UUID) error
}

type Outcome string

const (
	OutcomeDone    Outcome = "done"
	OutcomeNoop    Outcome = "noop"
	OutcomeRetried Outcome = "retried"
	OutcomeFailed  Outcome = "failed"
)

type BatchResult struct {
	Claimed  int
	Outcomes map[Outcome]int
}

type Worker struct {
	uow     shared.UnitOfWork
	settler Settler
	clock   clock.Clock
	logger  *slog.Logger

	interval     time.Duration
	batchSize    int32
	retryBackoff time.Duration
	leaseTimeout time.Duration
}

func NewWorker(
	uow shared.UnitOfWork,
	settler Settler,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.SettlementConfig,
) *Worker {
	w := &Worker{
		uow:          uow,
		settler:      settler,
		clock:        clk,
		logger:       logger,
		interval:     cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		retryBackoff: cfg.RetryBackoff,
		leaseTimeout: cfg.LeaseTimeout,
	}
	if w.interval <= 0 {
		w.interval = 30 * time.Second
	}
	if w.batchSize <= 0 {
		w.batchSize = 20
	}
	if w.retryBackoff <= 0 {
		w.retryBackoff = 10 * time.Minute
	}
	if w.leaseTimeout <= 0 {
		w.leaseTimeout = 5 * time.Minute
	}
	return w
}

// Run polls for due jobs until ctx is canceled. A failed tick is logged and
// the loop keeps going.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessDue(ctx); err != nil {
			w.logger.ErrorContext(ctx, "settlement tick failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ProcessDue claims one batch in its own transaction, then settles each job
// and records the outcome. A job whose worker dies mid-way stays running until
// the lease expires and is claimed again.
func (w *Worker) ProcessDue(ctx context.Context) (BatchResult, error) {
	now := w.clock.Now()

	var jobs []shared.SettlementJob
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.SettlementJobs().ClaimDue(ctx, tx.DB(), now, now.Add(-w.leaseTimeout), w.batchSize)
		return err
	})
	if err != nil {
		return BatchResult{}, errs.Wrap(err, "failed to claim settlement jobs")
	}

	result := BatchResult{Claimed: len(jobs), Outcomes: make(map[Outcome]int, 4)}
	for _, job := range jobs {
		outcome, err := w.process(ctx, job)
		if err != nil {
			w.logger.ErrorContext(ctx, "failed to record settlement outcome",
				"job_id", job.ID,
				"error", err,
			)
			continue
		}
		result.Outcomes[outcome]++
	}

	if len(jobs) > 0 {
		w.logger.InfoContext(ctx, "settlement batch processed",
			"claimed", len(jobs),
			"done", result.Outcomes[OutcomeDone],
			"noop", result.Outcomes[OutcomeNoop],
			"retried", result.Outcomes[OutcomeRetried],
			"failed", result.Outcomes[OutcomeFailed],
		)
	}
	return result, nil
}

func (w *Worker) process(ctx context.Context, job shared.SettlementJob) (Outcome, error) {
	payload, err := DecodePayload(job.Payload)
	if err != nil {
		// A body we cannot read never becomes readable; skip the retries.
		return OutcomeFailed, w.fail(ctx, job, job.Attempts+1, err)
	}

	settleErr := w.settler.SettleReservation(ctx, payload.ReservationID)
	now := w.clock.Now()

	switch {
	case settleErr == nil:
		return OutcomeDone, w.complete(ctx, job, nil, now)
	case errs.Is(settleErr, reservation.ErrNotInHold):
		w.logger.InfoContext(ctx, "settlement skipped, reservation already left hold",
			"job_id", job.ID,
			"reservation_id", payload.ReservationID,
		)
		note := "no-op: " + settleErr.Error()
		return OutcomeNoop, w.complete(ctx, job, &note, now)
	}

	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		return OutcomeFailed, w.fail(ctx, job, attempts, settleErr)
	}

	runAt := now.Add(w.retryBackoff)
	w.logger.WarnContext(ctx, "settlement failed, retry scheduled",
		"job_id", job.ID,
		"reservation_id", payload.ReservationID,
		"attempts", attempts,
		"run_at", runAt,
		"error", settleErr,
	)
	err = w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.SettlementJobs().Retry(ctx, tx.DB(), job.ID, attempts, runAt, settleErr.Error(), now)
	})
	return OutcomeRetried, err
}

func (w *Worker) complete(ctx context.Context, job shared.SettlementJob, note *string, now time.Time) error {
	return w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.SettlementJobs().Complete(ctx, tx.DB(), job.ID, note, now)
	})
}

func (w *Worker) fail(ctx context.Context, job shared.SettlementJob, attempts int32, cause error) error {
	w.logger.ErrorContext(ctx, "settlement job failed, manual intervention required",
		"job_id", job.ID,
		"reservation_id", job.ReservationID,
		"attempts", attempts,
		"error", cause,
	)
	now := w.clock.Now()
	return w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.SettlementJobs().Fail(ctx, tx.DB(), job.ID, attempts, cause.Error(), now)
	})
}
