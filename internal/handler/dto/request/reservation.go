package request

import (
	"strings"

	"arena-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type SlotRequest struct {
	CourtID uuid.UUID `json:"courtId" binding:"required"`
	Hour    *int      `json:"hour" binding:"required,min=0,max=23"`
}

type ExtraRequest struct {
	ExtraID  uuid.UUID `json:"extraId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type CreateReservationRequest struct {
	ArenaID       uuid.UUID      `json:"arenaId" binding:"required"`
	Date          string         `json:"date" binding:"required"`
	Slots         []SlotRequest  `json:"slots" binding:"required,min=1,dive"`
	Extras        []ExtraRequest `json:"extras" binding:"omitempty,dive"`
	PaymentMethod string         `json:"paymentMethod"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	slots := make([]commands.SlotInput, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = commands.SlotInput{CourtID: s.CourtID, Hour: *s.Hour}
	}
	extras := make([]commands.ExtraInput, len(r.Extras))
	for i, e := range r.Extras {
		extras[i] = commands.ExtraInput{ExtraID: e.ExtraID, Quantity: e.Quantity}
	}
	return commands.CreateReservationInput{
		ArenaID:       r.ArenaID,
		Date:          strings.TrimSpace(r.Date),
		Slots:         slots,
		Extras:        extras,
		PaymentMethod: strings.TrimSpace(r.PaymentMethod),
	}
}

type ListQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
