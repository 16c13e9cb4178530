package repository

import (
	"context"
	"time"

	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/infra"
	"arena-booking/internal/infra/repository/converter"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	CreateReservationExtra(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationExtraParams) error
	GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	ListSlotsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationSlots, error)
	ListReservationExtras(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationExtras, error)
	UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) (int64, error)
	CancelReservationExtras(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationExtrasParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{queries: queries}
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, tx, converter.ReservationToCreateParams(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	for _, e := range res.Extras() {
		if err := r.queries.CreateReservationExtra(ctx, tx, converter.ExtraToCreateParams(res, e)); err != nil {
			return infra.WrapRepoErr("failed to create reservation extra", err)
		}
	}
	return nil
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	slots, err := r.queries.ListSlotsByReservation(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation slots", err)
	}
	extras, err := r.queries.ListReservationExtras(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation extras", err)
	}

	res, err := converter.ReservationFromRow(row, slots, extras)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is invalid", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation, from reservation.Status) error {
	n, err := r.queries.UpdateReservationStatus(ctx, tx, sqlc.UpdateReservationStatusParams{
		Status:         res.Status().String(),
		ConfirmedAt:    pgconv.TimePtrToPgtype(res.ConfirmedAt()),
		CanceledAt:     pgconv.TimePtrToPgtype(res.CanceledAt()),
		UpdatedAt:      pgconv.TimeToPgtype(res.UpdatedAt()),
		ID:             res.ID(),
		ExpectedStatus: from.String(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation status changed concurrently", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) CancelExtras(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, at time.Time) error {
	_, err := r.queries.CancelReservationExtras(ctx, tx, sqlc.CancelReservationExtrasParams{
		CanceledAt:    pgconv.TimeToPgtype(at),
		ReservationID: reservationID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation extras", err)
	}
	return nil
}
