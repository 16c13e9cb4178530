package readstore

import (
	"context"
	"time"

	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	now     func() time.Time
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{queries: queries, now: time.Now}
}

// Get treats a key past its expiry as absent; TryInsert will take it over and
// the sweeper deletes it eventually.
func (r *IdempotencyReadStore) Get(ctx context.Context, db sqlc.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, db, sqlc.GetIdempotencyKeyParams{Key: key, UserID: userID})
	switch {
	case pgconv.IsNoRows(err):
		return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
	case err != nil:
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	expiresAt := pgconv.TimeFromPgtype(row.ExpiresAt)
	if !expiresAt.After(r.now()) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}
	return toIdempotencyRecord(row, expiresAt), nil
}

func toIdempotencyRecord(row sqlc.IdempotencyKeys, expiresAt time.Time) *shared.IdempotencyRecord {
	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		UserID:              row.UserID,
		Endpoint:            row.Endpoint,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResponseBodyHash:    pgconv.StringPtrFromPgtype(row.ResponseBodyHash),
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           expiresAt,
	}
}
