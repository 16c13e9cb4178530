package response

import (
	"time"

	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customerId"`
	ArenaID       uuid.UUID       `json:"arenaId"`
	ArenaName     string          `json:"arenaName"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	Price         PriceResponse   `json:"price"`
	Slots         []SlotResponse  `json:"slots"`
	Extras        []ExtraResponse `json:"extras"`
	ConfirmedAt   *time.Time      `json:"confirmedAt,omitempty"`
	CanceledAt    *time.Time      `json:"canceledAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type PriceResponse struct {
	BaseAmount   string `json:"baseAmount"`
	ExtrasAmount string `json:"extrasAmount"`
	TotalAmount  string `json:"totalAmount"`
}

type SlotResponse struct {
	CourtID    uuid.UUID  `json:"courtId"`
	Hour       int        `json:"hour"`
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
}

type ExtraResponse struct {
	ExtraID    uuid.UUID  `json:"extraId"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	UnitPrice  string     `json:"unitPrice"`
	TotalPrice string     `json:"totalPrice"`
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
}

type ReservationListResponse struct {
	ID          uuid.UUID `json:"id"`
	ArenaID     uuid.UUID `json:"arenaId"`
	ArenaName   string    `json:"arenaName"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationListResponse `json:"items"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{CourtID: s.CourtID, Hour: s.Hour, CanceledAt: s.CanceledAt}
	}
	extras := make([]ExtraResponse, len(v.Extras))
	for i, e := range v.Extras {
		extras[i] = ExtraResponse{
			ExtraID:    e.ExtraID,
			Name:       e.Name,
			Quantity:   e.Quantity,
			UnitPrice:  money.String(e.UnitPrice),
			TotalPrice: money.String(e.TotalPrice),
			CanceledAt: e.CanceledAt,
		}
	}
	return &ReservationResponse{
		ID:            v.ID,
		CustomerID:    v.CustomerID,
		ArenaID:       v.ArenaID,
		ArenaName:     v.ArenaName,
		Date:          v.Date,
		Status:        v.Status,
		PaymentMethod: v.PaymentMethod,
		Price: PriceResponse{
			BaseAmount:   money.String(v.BaseAmount),
			ExtrasAmount: money.String(v.ExtrasAmount),
			TotalAmount:  money.String(v.TotalAmount),
		},
		Slots:       slots,
		Extras:      extras,
		ConfirmedAt: v.ConfirmedAt,
		CanceledAt:  v.CanceledAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromReservationListItem(v *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:          v.ID,
		ArenaID:     v.ArenaID,
		ArenaName:   v.ArenaName,
		Date:        v.Date,
		Status:      v.Status,
		TotalAmount: money.String(v.TotalAmount),
		CreatedAt:   v.CreatedAt,
	}
}

func FromReservationPage(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationPageResponse {
	res := &ReservationPageResponse{Items: make([]*ReservationListResponse, len(items))}
	for i, it := range items {
		res.Items[i] = FromReservationListItem(it)
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}
