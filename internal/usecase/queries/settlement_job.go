package queries

import (
	"context"

	"arena-booking/internal/infra"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/shared"
)

var (
	ErrSettlementJobNotFound = errs.New("settlement job not found")
	ErrInvalidJobStatus      = errs.New("invalid settlement job status")
)

type SettlementJobReadStore interface {
	FindByID(ctx context.Context, id string) (*SettlementJobView, error)
	ListByStatus(ctx context.Context, status string, limit int32) ([]*SettlementJobView, error)
}

type SettlementJobQueries interface {
	GetByID(ctx context.Context, id string) (*SettlementJobView, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*SettlementJobView, error)
}

type settlementJobQueriesImpl struct {
	store SettlementJobReadStore
}

func NewSettlementJobQueries(store SettlementJobReadStore) SettlementJobQueries {
	return &settlementJobQueriesImpl{store: store}
}

func (q *settlementJobQueriesImpl) GetByID(ctx context.Context, id string) (*SettlementJobView, error) {
	job, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSettlementJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListByStatus defaults to failed jobs, the ones that need an operator.
func (q *settlementJobQueriesImpl) ListByStatus(ctx context.Context, status string, limit int) ([]*SettlementJobView, error) {
	if status == "" {
		status = string(shared.JobFailed)
	}
	if !shared.SettlementJobStatus(status).IsValid() {
		return nil, errs.Wrapf(ErrInvalidJobStatus, "status %q", status)
	}
	return q.store.ListByStatus(ctx, status, int32(ValidateLimit(limit))) // #nosec G115 -- bounded by MaxListLimit
}
