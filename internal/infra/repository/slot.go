package repository

import (
	"context"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/infra"
	"arena-booking/internal/infra/repository/converter"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SlotQueries interface {
	FindActiveSlotConflicts(ctx context.Context, db sqlc.DBTX, arg sqlc.FindActiveSlotConflictsParams) ([]sqlc.FindActiveSlotConflictsRow, error)
	InsertReservationSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReservationSlotParams) error
	ListSlotsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationSlots, error)
	CancelSlotsByReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelSlotsByReservationParams) (int64, error)
}

type SlotRepository struct {
	queries SlotQueries
}

func NewSlotRepository(queries SlotQueries) *SlotRepository {
	return &SlotRepository{queries: queries}
}

func (r *SlotRepository) FindActiveConflicts(ctx context.Context, tx sqlc.DBTX, date calendar.Date, keys []reservation.SlotKey) ([]reservation.SlotKey, error) {
	params := sqlc.FindActiveSlotConflictsParams{
		CourtIds: make([]uuid.UUID, len(keys)),
		Hours:    make([]int32, len(keys)),
		SlotDate: converter.DateToPgtype(date),
	}
	for i, k := range keys {
		params.CourtIds[i] = k.CourtID
		params.Hours[i] = int32(k.Hour) // #nosec G115 -- hours are 0..23
	}

	rows, err := r.queries.FindActiveSlotConflicts(ctx, tx, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to check slot availability", err)
	}

	conflicts := make([]reservation.SlotKey, 0, len(rows))
	for _, row := range rows {
		conflicts = append(conflicts, reservation.SlotKey{CourtID: row.CourtID, Hour: int(row.Hour)})
	}
	return conflicts, nil
}

// Insert surfaces the active-slot unique index as KindDuplicateKey.
func (r *SlotRepository) Insert(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, date calendar.Date, key reservation.SlotKey) error {
	err := r.queries.InsertReservationSlot(ctx, tx, sqlc.InsertReservationSlotParams{
		ID:            uuid.New(),
		ReservationID: reservationID,
		CourtID:       key.CourtID,
		SlotDate:      converter.DateToPgtype(date),
		Hour:          int32(key.Hour), // #nosec G115 -- hours are 0..23
	})
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation slot", err)
	}
	return nil
}

func (r *SlotRepository) ListByReservation(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID) ([]reservation.Slot, error) {
	rows, err := r.queries.ListSlotsByReservation(ctx, tx, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation slots", err)
	}
	slots := make([]reservation.Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, converter.SlotFromRow(row))
	}
	return slots, nil
}

func (r *SlotRepository) CancelByReservation(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, at time.Time) (int64, error) {
	n, err := r.queries.CancelSlotsByReservation(ctx, tx, sqlc.CancelSlotsByReservationParams{
		CanceledAt:    pgconv.TimeToPgtype(at),
		ReservationID: reservationID,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel reservation slots", err)
	}
	return n, nil
}
