package repository

import (
	"context"
	"time"

	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateIdempotencyKeyCompletedParams) error
	DeleteProcessingIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteProcessingIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX) (int64, error)
}

// IdempotencyRepository writes keys inside the caller's transaction. Only
// DeleteExpired runs on the pool it was built with, outside any request.
type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	pool    sqlc.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, pool sqlc.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{queries: queries, pool: pool}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error) {
	affected, err := r.queries.TryInsertIdempotencyKey(ctx, tx, sqlc.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
		CreatedAt:   pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve idempotency key", err)
	}
	// Zero rows: a live key exists, either completed or still processing.
	return affected == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error {
	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, sqlc.UpdateIdempotencyKeyCompletedParams{
		Key:                 key,
		UserID:              userID,
		ResponseBodyHash:    pgconv.StringToPgtype(resultHash),
		ResultReservationID: pgconv.UUIDToPgtype(reservationID),
	})
	return infra.WrapRepoErrIf("failed to complete idempotency key", err)
}

// Release drops a key still in processing so the client can retry the request.
func (r *IdempotencyRepository) Release(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) error {
	err := r.queries.DeleteProcessingIdempotencyKey(ctx, tx, sqlc.DeleteProcessingIdempotencyKeyParams{Key: key, UserID: userID})
	return infra.WrapRepoErrIf("failed to release idempotency key", err)
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	n, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.pool)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return n, nil
}
