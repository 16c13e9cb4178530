//go:build unit || e2e

package builder

import (
	"time"

	reqdto "arena-booking/internal/handler/dto/request"
	"arena-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ArenaID       uuid.UUID
	Date          string
	Slots         []reqdto.SlotRequest
	Extras        []reqdto.ExtraRequest
	PaymentMethod string
	PricePerHour  decimal.Decimal
}

// NewReservationBuilder starts with two consecutive hours on one court.
func NewReservationBuilder() *ReservationBuilder {
	court := uuid.New()
	return &ReservationBuilder{
		ArenaID: uuid.New(),
		Date:    "2026-03-02",
		Slots: []reqdto.SlotRequest{
			{CourtID: court, Hour: hour(10)},
			{CourtID: court, Hour: hour(11)},
		},
		PaymentMethod: "wallet",
		PricePerHour:  decimal.NewFromInt(100),
	}
}

func hour(h int) *int {
	return &h
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithArena(id uuid.UUID) *ReservationBuilder {
	b.ArenaID = id
	return b
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.Date = date
	return b
}

// WithSlots replaces the slots with the given hours on court.
func (b *ReservationBuilder) WithSlots(court uuid.UUID, hours ...int) *ReservationBuilder {
	b.Slots = make([]reqdto.SlotRequest, len(hours))
	for i, h := range hours {
		b.Slots[i] = reqdto.SlotRequest{CourtID: court, Hour: hour(h)}
	}
	return b
}

func (b *ReservationBuilder) WithExtra(id uuid.UUID, quantity int) *ReservationBuilder {
	b.Extras = append(b.Extras, reqdto.ExtraRequest{ExtraID: id, Quantity: quantity})
	return b
}

// Build methods
func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ArenaID:       b.ArenaID,
		Date:          b.Date,
		Slots:         b.Slots,
		Extras:        b.Extras,
		PaymentMethod: b.PaymentMethod,
	}
}

// BuildView is the hold a successful create would return. Extras are not priced.
func (b *ReservationBuilder) BuildView(customerID uuid.UUID) *queries.ReservationView {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	slots := make([]queries.SlotView, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = queries.SlotView{CourtID: s.CourtID, Hour: *s.Hour}
	}
	base := b.PricePerHour.Mul(decimal.NewFromInt(int64(len(b.Slots))))
	return &queries.ReservationView{
		ID:            uuid.New(),
		CustomerID:    customerID,
		ArenaID:       b.ArenaID,
		ArenaName:     "Riverside Padel",
		OperatorID:    uuid.New(),
		Date:          b.Date,
		Status:        "hold",
		PaymentMethod: b.PaymentMethod,
		BaseAmount:    base,
		ExtrasAmount:  decimal.Zero,
		TotalAmount:   base,
		Slots:         slots,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}
