package readstore

import (
	"context"
	"time"

	"arena-booking/internal/infra"
	"arena-booking/internal/infra/repository/converter"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationViewRow, error)
	ListSlotsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationSlots, error)
	ListReservationExtras(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationExtras, error)
	ListReservationsByCustomer(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByCustomerParams) ([]sqlc.ListReservationsByCustomerRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	slots, err := r.queries.ListSlotsByReservation(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation slots", err)
	}
	extras, err := r.queries.ListReservationExtras(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation extras", err)
	}

	return rowToReservationView(row, slots, extras), nil
}

// Snapshot is the minimal projection command handlers check before locking.
func (r *ReservationReadStore) Snapshot(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	row, err := r.queries.GetReservationView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return &shared.ReservationSnapshot{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		ArenaID:     row.ArenaID,
		OperatorID:  row.ArenaOperatorID,
		Status:      row.Status,
		TotalAmount: row.TotalAmount,
	}, nil
}

func (r *ReservationReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListReservationsByCustomerParams{
		CustomerID:      customerID,
		CursorCreatedAt: pgconv.TimePtrToPgtype(afterCreatedAt),
		CursorID:        pgconv.UUIDPtrToPgtype(afterID),
		PageSize:        limit,
	}

	rows, err := r.queries.ListReservationsByCustomer(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		result[i] = &queries.ReservationListItem{
			ID:          row.ID,
			ArenaID:     row.ArenaID,
			ArenaName:   row.ArenaName,
			Date:        converter.DateFromPgtype(row.ReservationDate).String(),
			Status:      row.Status,
			TotalAmount: row.TotalAmount,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}

	return result, nil
}

func rowToReservationView(row sqlc.GetReservationViewRow, slots []sqlc.ReservationSlots, extras []sqlc.ReservationExtras) *queries.ReservationView {
	view := &queries.ReservationView{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		ArenaID:       row.ArenaID,
		ArenaName:     row.ArenaName,
		OperatorID:    row.ArenaOperatorID,
		Date:          converter.DateFromPgtype(row.ReservationDate).String(),
		Status:        row.Status,
		PaymentMethod: row.PaymentMethod,
		BaseAmount:    row.BaseAmount,
		ExtrasAmount:  row.ExtrasAmount,
		TotalAmount:   row.TotalAmount,
		Slots:         make([]queries.SlotView, 0, len(slots)),
		Extras:        make([]queries.ExtraView, 0, len(extras)),
		ConfirmedAt:   pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CanceledAt:    pgconv.TimePtrFromPgtype(row.CanceledAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	for _, s := range slots {
		view.Slots = append(view.Slots, queries.SlotView{
			CourtID:    s.CourtID,
			Hour:       int(s.Hour),
			CanceledAt: pgconv.TimePtrFromPgtype(s.CanceledAt),
		})
	}
	for _, e := range extras {
		view.Extras = append(view.Extras, queries.ExtraView{
			ExtraID:    e.ExtraID,
			Name:       e.Name,
			Quantity:   int(e.Quantity),
			UnitPrice:  e.UnitPrice,
			TotalPrice: e.TotalPrice,
			CanceledAt: pgconv.TimePtrFromPgtype(e.CanceledAt),
		})
	}
	return view
}
