package queries

import (
	"context"
	"time"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/infra"
	"arena-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

// GetByID is visible to the customer, the arena operator and admins. Others
// get not-found so ids cannot be enumerated.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error) {
	rv, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	switch {
	case actorRole == user.RoleAdmin:
	case rv.CustomerID == actorID:
	case actorRole == user.RoleOperator && rv.OperatorID == actorID:
	default:
		return nil, ErrReservationNotFound
	}
	return rv, nil
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	afterAt, afterID, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	rows, err := q.store.ListByCustomer(ctx, customerID, afterAt, afterID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}

	items, next := page(rows, limit, func(r *ReservationListItem) (time.Time, uuid.UUID) { return r.CreatedAt, r.ID })
	return items, next, nil
}
