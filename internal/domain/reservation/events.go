package reservation

import (
	"time"

	"arena-booking/internal/pkg/money"

	"github.com/google/uuid"
)

const (
	TopicCreated   = "reservation.created"
	TopicConfirmed = "reservation.confirmed"
	TopicCanceled  = "reservation.canceled"
)

// Event is the outbound notification body published after commit.
type Event struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	ArenaID       uuid.UUID `json:"arena_id"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	TotalAmount   string    `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(r *Reservation, at time.Time) Event {
	return Event{
		ReservationID: r.id,
		CustomerID:    r.customerID,
		ArenaID:       r.arenaID,
		Date:          r.date.String(),
		Status:        r.status.String(),
		TotalAmount:   money.String(r.price.Total),
		OccurredAt:    at,
	}
}

func (r *Reservation) EventTopic() string {
	switch r.status {
	case StatusConfirmed:
		return TopicConfirmed
	case StatusCanceled:
		return TopicCanceled
	default:
		return TopicCreated
	}
}
