package reservation

import (
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlots       = errs.New("invalid slots")
	ErrNotInHold          = errs.New("reservation is not in hold")
	ErrAlreadyCanceled    = errs.New("reservation is already canceled")
	ErrUnauthorized       = errs.New("requestor does not own the reservation")
	ErrNegativePrice      = errs.New("price cannot be negative")
	ErrSplitMismatch      = errs.New("revenue split does not add up to the total")
	ErrInvalidStatus      = errs.New("invalid reservation status")
	ErrUnsupportedPayment = errs.New("unsupported payment method")
)

// Reservation moves hold -> confirmed on settlement or hold -> canceled on
// customer request. Both targets are terminal.
type Reservation struct {
	id            uuid.UUID
	customerID    uuid.UUID
	arenaID       uuid.UUID
	date          calendar.Date
	slots         []SlotKey
	extras        []Extra
	price         PriceBreakdown
	status        Status
	paymentMethod PaymentMethod
	confirmedAt   *time.Time
	canceledAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type NewParams struct {
	CustomerID    uuid.UUID
	ArenaID       uuid.UUID
	Date          calendar.Date
	Slots         []SlotKey
	Extras        []Extra
	Price         PriceBreakdown
	PaymentMethod PaymentMethod
}

func NewReservation(p NewParams, now time.Time) (*Reservation, error) {
	if !p.PaymentMethod.IsValid() {
		return nil, errs.Wrapf(ErrUnsupportedPayment, "method %q", p.PaymentMethod)
	}
	if len(p.Slots) == 0 {
		return nil, errs.Wrap(ErrInvalidSlots, "reservation needs at least one slot")
	}
	if err := p.Price.validate(); err != nil {
		return nil, err
	}
	return &Reservation{
		id:            uuid.New(),
		customerID:    p.CustomerID,
		arenaID:       p.ArenaID,
		date:          p.Date,
		slots:         p.Slots,
		extras:        p.Extras,
		price:         p.Price,
		status:        StatusHold,
		paymentMethod: p.PaymentMethod,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type ReconstructParams struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	ArenaID       uuid.UUID
	Date          calendar.Date
	Slots         []SlotKey
	Extras        []Extra
	Price         PriceBreakdown
	Status        Status
	PaymentMethod PaymentMethod
	ConfirmedAt   *time.Time
	CanceledAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructReservation(p ReconstructParams) (*Reservation, error) {
	if !p.Status.IsValid() {
		return nil, errs.Wrapf(ErrInvalidStatus, "status %q", p.Status)
	}
	return &Reservation{
		id:            p.ID,
		customerID:    p.CustomerID,
		arenaID:       p.ArenaID,
		date:          p.Date,
		slots:         p.Slots,
		extras:        p.Extras,
		price:         p.Price,
		status:        p.Status,
		paymentMethod: p.PaymentMethod,
		confirmedAt:   p.ConfirmedAt,
		canceledAt:    p.CanceledAt,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.status != StatusHold {
		return errs.Wrapf(ErrNotInHold, "reservation %s is %s", r.id, r.status)
	}
	r.status = StatusConfirmed
	r.confirmedAt = &now
	r.updatedAt = now
	return nil
}

// Cancel checks ownership first so a stranger learns nothing about the state.
func (r *Reservation) Cancel(requestor uuid.UUID, now time.Time) error {
	if requestor != r.customerID {
		return ErrUnauthorized
	}
	switch r.status {
	case StatusCanceled:
		return errs.Wrapf(ErrAlreadyCanceled, "reservation %s", r.id)
	case StatusConfirmed:
		return errs.Wrapf(ErrNotInHold, "reservation %s is %s", r.id, r.status)
	}
	r.status = StatusCanceled
	r.canceledAt = &now
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsHold() bool { return r.status == StatusHold }

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) CustomerID() uuid.UUID        { return r.customerID }
func (r *Reservation) ArenaID() uuid.UUID           { return r.arenaID }
func (r *Reservation) Date() calendar.Date          { return r.date }
func (r *Reservation) Slots() []SlotKey             { return r.slots }
func (r *Reservation) Extras() []Extra              { return r.extras }
func (r *Reservation) Price() PriceBreakdown        { return r.price }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentMethod() PaymentMethod { return r.paymentMethod }
func (r *Reservation) ConfirmedAt() *time.Time      { return r.confirmedAt }
func (r *Reservation) CanceledAt() *time.Time       { return r.canceledAt }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
