package commands

import (
	"context"

	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"
)

var ErrJobNotFailed = errs.New("only failed settlement jobs can be requeued")

type SettlementJobCommands interface {
	// RequeueSettlementJob resets a failed job's attempts and makes it due now.
	RequeueSettlementJob(ctx context.Context, id string) (*queries.SettlementJobView, error)
}

type settlementJobCommandsImpl struct {
	uow   shared.UnitOfWork
	jobs  queries.SettlementJobQueries
	clock clock.Clock
}

func NewSettlementJobCommands(uow shared.UnitOfWork, jobs queries.SettlementJobQueries, clk clock.Clock) SettlementJobCommands {
	return &settlementJobCommandsImpl{uow: uow, jobs: jobs, clock: clk}
}

func (c *settlementJobCommandsImpl) RequeueSettlementJob(ctx context.Context, id string) (*queries.SettlementJobView, error) {
	var requeued bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		requeued, err = tx.SettlementJobs().Requeue(ctx, tx.DB(), id, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	job, err := c.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requeued {
		return nil, errs.Wrapf(ErrJobNotFailed, "job %s is %s", id, job.Status)
	}
	return job, nil
}
