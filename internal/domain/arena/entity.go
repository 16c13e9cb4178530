package arena

import (
	"strings"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyArenaName    = errs.New("arena name cannot be empty")
	ErrArenaNameTooLong  = errs.New("arena name is too long (max 255 characters)")
	ErrInvalidHours      = errs.New("operating hours must satisfy 0 <= open < close <= 24")
	ErrInvalidPrice      = errs.New("price per hour must be a positive amount")
	ErrArenaNotActive    = errs.New("arena is not active")
	ErrInvalidSlot       = errs.New("invalid slot")
	ErrUnknownTimeZone   = errs.New("unknown time zone")
	ErrExtraNotAvailable = errs.New("extra is not available")
)

const (
	MaxArenaNameLength = 255
)

type Court struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
}

type Extra struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	IsActive bool
}

// Arena is a bookable venue. Hours are whole hours in the arena's own zone;
// a slot at hour h covers [h, h+1).
type Arena struct {
	id           uuid.UUID
	operatorID   uuid.UUID
	name         string
	pricePerHour decimal.Decimal
	openHour     int
	closeHour    int
	location     *time.Location
	isActive     bool
	courts       map[uuid.UUID]Court
}

type Params struct {
	ID           uuid.UUID
	OperatorID   uuid.UUID
	Name         string
	PricePerHour decimal.Decimal
	OpenHour     int
	CloseHour    int
	TimeZone     string
	IsActive     bool
	Courts       []Court
}

func New(p Params) (*Arena, error) {
	if err := validateArenaName(p.Name); err != nil {
		return nil, err
	}
	if p.OpenHour < 0 || p.CloseHour > 24 || p.OpenHour >= p.CloseHour {
		return nil, errs.Wrapf(ErrInvalidHours, "open=%d close=%d", p.OpenHour, p.CloseHour)
	}
	// bookings lock the price up front, and ledger amounts are positive
	if !p.PricePerHour.IsPositive() || !money.HasScale(p.PricePerHour) {
		return nil, errs.Wrapf(ErrInvalidPrice, "price=%s", p.PricePerHour)
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownTimeZone)
	}

	courts := make(map[uuid.UUID]Court, len(p.Courts))
	for _, c := range p.Courts {
		courts[c.ID] = c
	}

	return &Arena{
		id:           p.ID,
		operatorID:   p.OperatorID,
		name:         strings.TrimSpace(p.Name),
		pricePerHour: p.PricePerHour,
		openHour:     p.OpenHour,
		closeHour:    p.CloseHour,
		location:     loc,
		isActive:     p.IsActive,
		courts:       courts,
	}, nil
}

func (a *Arena) EnsureActive() error {
	if !a.isActive {
		return errs.Wrapf(ErrArenaNotActive, "arena %s", a.id)
	}
	return nil
}

func (a *Arena) IsOpenAt(hour int) bool {
	return hour >= a.openHour && hour < a.closeHour
}

// ValidateSlot checks one requested (court, hour) on date against the court
// list, the operating hours and the current time in the arena's zone.
func (a *Arena) ValidateSlot(courtID uuid.UUID, date calendar.Date, hour int, now time.Time) error {
	court, ok := a.courts[courtID]
	if !ok {
		return errs.Wrapf(ErrInvalidSlot, "court %s does not belong to arena %s", courtID, a.id)
	}
	if !court.IsActive {
		return errs.Wrapf(ErrInvalidSlot, "court %s is not active", courtID)
	}
	if !a.IsOpenAt(hour) {
		return errs.Wrapf(ErrInvalidSlot, "hour %d outside operating hours [%d, %d)", hour, a.openHour, a.closeHour)
	}
	if !date.HourIn(hour, a.location).After(now) {
		return errs.Wrapf(ErrInvalidSlot, "slot %s %02d:00 is in the past", date, hour)
	}
	return nil
}

// SettlementTime is the moment the reserved day begins locally; the
// cancellation window closes then.
func (a *Arena) SettlementTime(date calendar.Date) time.Time {
	return date.StartIn(a.location)
}

func (a *Arena) Court(id uuid.UUID) (Court, bool) {
	c, ok := a.courts[id]
	return c, ok
}

func validateArenaName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyArenaName
	}
	if len(name) > MaxArenaNameLength {
		return ErrArenaNameTooLong
	}
	return nil
}

func (a *Arena) ID() uuid.UUID                 { return a.id }
func (a *Arena) OperatorID() uuid.UUID         { return a.operatorID }
func (a *Arena) Name() string                  { return a.name }
func (a *Arena) PricePerHour() decimal.Decimal { return a.pricePerHour }
func (a *Arena) OpenHour() int                 { return a.openHour }
func (a *Arena) CloseHour() int                { return a.closeHour }
func (a *Arena) Location() *time.Location      { return a.location }
func (a *Arena) IsActive() bool                { return a.isActive }
