package repository

import (
	"context"
	"time"

	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"
	"arena-booking/internal/usecase/shared"
)

type SettlementJobQueries interface {
	UpsertSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertSettlementJobParams) error
	DeleteSettlementJob(ctx context.Context, db sqlc.DBTX, id string) (int64, error)
	ClaimDueSettlementJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueSettlementJobsParams) ([]sqlc.SettlementJobs, error)
	CompleteSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteSettlementJobParams) error
	RetrySettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.RetrySettlementJobParams) error
	FailSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.FailSettlementJobParams) error
	RequeueSettlementJob(ctx context.Context, db sqlc.DBTX, arg sqlc.RequeueSettlementJobParams) (int64, error)
}

type SettlementJobRepository struct {
	queries SettlementJobQueries
}

func NewSettlementJobRepository(queries SettlementJobQueries) *SettlementJobRepository {
	return &SettlementJobRepository{queries: queries}
}

// Upsert replaces any existing job with the same id and resets it to queued.
func (r *SettlementJobRepository) Upsert(ctx context.Context, tx sqlc.DBTX, job shared.NewSettlementJob) error {
	err := r.queries.UpsertSettlementJob(ctx, tx, sqlc.UpsertSettlementJobParams{
		ID:            job.ID,
		ReservationID: job.ReservationID,
		Payload:       job.Payload,
		RunAt:         pgconv.TimeToPgtype(job.RunAt),
		MaxAttempts:   job.MaxAttempts,
		CreatedAt:     pgconv.TimeToPgtype(job.CreatedAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to schedule settlement job", err)
	}
	return nil
}

// Delete removes a job that is not running or done and reports whether one was removed.
func (r *SettlementJobRepository) Delete(ctx context.Context, tx sqlc.DBTX, id string) (bool, error) {
	n, err := r.queries.DeleteSettlementJob(ctx, tx, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete settlement job", err)
	}
	return n > 0, nil
}

func (r *SettlementJobRepository) ClaimDue(ctx context.Context, tx sqlc.DBTX, now, leaseCutoff time.Time, limit int32) ([]shared.SettlementJob, error) {
	rows, err := r.queries.ClaimDueSettlementJobs(ctx, tx, sqlc.ClaimDueSettlementJobsParams{
		Now:         pgconv.TimeToPgtype(now),
		LeaseCutoff: pgconv.TimeToPgtype(leaseCutoff),
		BatchSize:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim settlement jobs", err)
	}

	jobs := make([]shared.SettlementJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, SettlementJobFromRow(row))
	}
	return jobs, nil
}

func (r *SettlementJobRepository) Complete(ctx context.Context, tx sqlc.DBTX, id string, note *string, now time.Time) error {
	err := r.queries.CompleteSettlementJob(ctx, tx, sqlc.CompleteSettlementJobParams{
		LastError: pgconv.StringPtrToPgtype(note),
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete settlement job", err)
	}
	return nil
}

func (r *SettlementJobRepository) Retry(ctx context.Context, tx sqlc.DBTX, id string, attempts int32, runAt time.Time, lastError string, now time.Time) error {
	err := r.queries.RetrySettlementJob(ctx, tx, sqlc.RetrySettlementJobParams{
		Attempts:  attempts,
		RunAt:     pgconv.TimeToPgtype(runAt),
		LastError: pgconv.StringToPgtype(lastError),
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule settlement job", err)
	}
	return nil
}

func (r *SettlementJobRepository) Fail(ctx context.Context, tx sqlc.DBTX, id string, attempts int32, lastError string, now time.Time) error {
	err := r.queries.FailSettlementJob(ctx, tx, sqlc.FailSettlementJobParams{
		Attempts:  attempts,
		LastError: pgconv.StringToPgtype(lastError),
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark settlement job failed", err)
	}
	return nil
}

// Requeue only touches failed jobs.
func (r *SettlementJobRepository) Requeue(ctx context.Context, tx sqlc.DBTX, id string, runAt time.Time) (bool, error) {
	n, err := r.queries.RequeueSettlementJob(ctx, tx, sqlc.RequeueSettlementJobParams{
		RunAt: pgconv.TimeToPgtype(runAt),
		ID:    id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to requeue settlement job", err)
	}
	return n > 0, nil
}

func SettlementJobFromRow(row sqlc.SettlementJobs) shared.SettlementJob {
	return shared.SettlementJob{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		Payload:       row.Payload,
		RunAt:         pgconv.TimeFromPgtype(row.RunAt),
		Attempts:      row.Attempts,
		MaxAttempts:   row.MaxAttempts,
		Status:        shared.SettlementJobStatus(row.Status),
		LastError:     pgconv.StringPtrFromPgtype(row.LastError),
		LockedAt:      pgconv.TimePtrFromPgtype(row.LockedAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
