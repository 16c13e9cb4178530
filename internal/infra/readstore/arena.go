package readstore

import (
	"context"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ArenaReadQueries interface {
	GetArenaByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Arenas, error)
	ListCourtsByArenaID(ctx context.Context, db sqlc.DBTX, arenaID uuid.UUID) ([]sqlc.Courts, error)
	ListArenaExtrasByIDs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListArenaExtrasByIDsParams) ([]sqlc.ArenaExtras, error)
}

type ArenaReadStore struct {
	queries ArenaReadQueries
}

func NewArenaReadStore(queries ArenaReadQueries) *ArenaReadStore {
	return &ArenaReadStore{queries: queries}
}

// FindByID loads the arena with all of its courts, inactive ones included.
func (r *ArenaReadStore) FindByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*shared.ArenaSnapshot, error) {
	row, err := r.queries.GetArenaByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("arena not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find arena by ID", err)
	}

	courts, err := r.queries.ListCourtsByArenaID(ctx, db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}

	snap := &shared.ArenaSnapshot{
		ID:           row.ID,
		OperatorID:   row.OperatorID,
		Name:         row.Name,
		PricePerHour: row.PricePerHour,
		OpenHour:     int(row.OpenHour),
		CloseHour:    int(row.CloseHour),
		TimeZone:     row.TimeZone,
		IsActive:     row.IsActive,
		Courts:       make([]arena.Court, 0, len(courts)),
	}
	for _, c := range courts {
		snap.Courts = append(snap.Courts, arena.Court{ID: c.ID, Name: c.Name, IsActive: c.IsActive})
	}
	return snap, nil
}

// ExtrasByIDs returns the extras of arenaID among ids. Unknown ids are simply
// absent from the result.
func (r *ArenaReadStore) ExtrasByIDs(ctx context.Context, db sqlc.DBTX, arenaID uuid.UUID, ids []uuid.UUID) ([]shared.ExtraSnapshot, error) {
	if len(ids) == 0 {
		return []shared.ExtraSnapshot{}, nil
	}

	rows, err := r.queries.ListArenaExtrasByIDs(ctx, db, sqlc.ListArenaExtrasByIDsParams{
		ArenaID: arenaID,
		Ids:     ids,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list arena extras", err)
	}

	extras := make([]shared.ExtraSnapshot, 0, len(rows))
	for _, e := range rows {
		extras = append(extras, shared.ExtraSnapshot{
			ID:       e.ID,
			Name:     e.Name,
			Price:    e.Price,
			IsActive: e.IsActive,
		})
	}
	return extras, nil
}
