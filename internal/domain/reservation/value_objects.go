package reservation

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/revenue"
	"arena-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxSlotsPerReservation = 24

// SlotKey identifies one bookable hour on one court for a given date.
type SlotKey struct {
	CourtID uuid.UUID
	Hour    int
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s@%02d", k.CourtID, k.Hour)
}

func compareSlotKeys(a, b SlotKey) int {
	if c := cmp.Compare(a.Hour, b.Hour); c != 0 {
		return c
	}
	return cmp.Compare(a.CourtID.String(), b.CourtID.String())
}

// NewSlotKeys validates the shape of a request: non-empty, hours within a day,
// no duplicates. The result is ordered by hour, then court.
func NewSlotKeys(keys []SlotKey) ([]SlotKey, error) {
	if len(keys) == 0 {
		return nil, errs.Wrap(ErrInvalidSlots, "at least one slot is required")
	}
	if len(keys) > MaxSlotsPerReservation {
		return nil, errs.Wrapf(ErrInvalidSlots, "at most %d slots per reservation", MaxSlotsPerReservation)
	}
	seen := make(map[SlotKey]struct{}, len(keys))
	for _, k := range keys {
		if k.CourtID == uuid.Nil {
			return nil, errs.Wrap(ErrInvalidSlots, "court id is required")
		}
		if k.Hour < 0 || k.Hour > 23 {
			return nil, errs.Wrapf(ErrInvalidSlots, "hour %d out of range", k.Hour)
		}
		if _, dup := seen[k]; dup {
			return nil, errs.Wrapf(ErrInvalidSlots, "slot %s requested twice", k)
		}
		seen[k] = struct{}{}
	}
	out := slices.Clone(keys)
	slices.SortFunc(out, compareSlotKeys)
	return out, nil
}

// Slot is the persisted claim on one (court, date, hour).
type Slot struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	CourtID       uuid.UUID
	Date          calendar.Date
	Hour          int
	CanceledAt    *time.Time
}

func (s Slot) Key() SlotKey { return SlotKey{CourtID: s.CourtID, Hour: s.Hour} }

func (s Slot) IsActive() bool { return s.CanceledAt == nil }

// ExtraRequest is a customer's ask for an add-on before it is priced.
type ExtraRequest struct {
	ExtraID  uuid.UUID
	Quantity int
}

// Extra is a priced add-on attached to a reservation.
type Extra struct {
	ID         uuid.UUID
	ExtraID    uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	CanceledAt *time.Time
}

// PriceBreakdown also carries the split fixed at creation. Settle and cancel
// move exactly these shares, whatever the fee rate is by then.
type PriceBreakdown struct {
	Base          decimal.Decimal
	Extras        decimal.Decimal
	Total         decimal.Decimal
	OperatorShare decimal.Decimal
	PlatformFee   decimal.Decimal
}

func (p PriceBreakdown) WithSplit(s revenue.Shares) PriceBreakdown {
	p.OperatorShare = s.Operator
	p.PlatformFee = s.Platform
	return p
}

func (p PriceBreakdown) Shares() revenue.Shares {
	return revenue.Shares{Player: p.Total, Operator: p.OperatorShare, Platform: p.PlatformFee}
}

func (p PriceBreakdown) validate() error {
	for _, v := range []decimal.Decimal{p.Base, p.Extras, p.Total, p.OperatorShare, p.PlatformFee} {
		if v.IsNegative() {
			return ErrNegativePrice
		}
	}
	if !p.OperatorShare.Add(p.PlatformFee).Equal(p.Total) {
		return errs.Wrapf(ErrSplitMismatch, "operator %s + platform %s != total %s", p.OperatorShare, p.PlatformFee, p.Total)
	}
	return nil
}
