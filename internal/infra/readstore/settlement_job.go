package readstore

import (
	"context"

	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"
	"arena-booking/internal/usecase/queries"
)

type SettlementJobReadQueries interface {
	GetSettlementJob(ctx context.Context, db sqlc.DBTX, id string) (sqlc.SettlementJobs, error)
	ListSettlementJobsByStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.ListSettlementJobsByStatusParams) ([]sqlc.SettlementJobs, error)
}

type SettlementJobReadStore struct {
	queries SettlementJobReadQueries
	db      sqlc.DBTX
}

func NewSettlementJobReadStore(queries SettlementJobReadQueries, db sqlc.DBTX) *SettlementJobReadStore {
	return &SettlementJobReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *SettlementJobReadStore) FindByID(ctx context.Context, id string) (*queries.SettlementJobView, error) {
	row, err := r.queries.GetSettlementJob(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("settlement job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find settlement job", err)
	}
	return toSettlementJobView(row), nil
}

func (r *SettlementJobReadStore) ListByStatus(ctx context.Context, status string, limit int32) ([]*queries.SettlementJobView, error) {
	rows, err := r.queries.ListSettlementJobsByStatus(ctx, r.db, sqlc.ListSettlementJobsByStatusParams{
		Status:   status,
		PageSize: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list settlement jobs", err)
	}

	result := make([]*queries.SettlementJobView, len(rows))
	for i, row := range rows {
		result[i] = toSettlementJobView(row)
	}
	return result, nil
}

func toSettlementJobView(row sqlc.SettlementJobs) *queries.SettlementJobView {
	return &queries.SettlementJobView{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		RunAt:         pgconv.TimeFromPgtype(row.RunAt),
		Attempts:      row.Attempts,
		MaxAttempts:   row.MaxAttempts,
		Status:        row.Status,
		LastError:     pgconv.StringPtrFromPgtype(row.LastError),
		LockedAt:      pgconv.TimePtrFromPgtype(row.LockedAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
