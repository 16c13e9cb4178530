package queries

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock . ReservationQueries,WalletQueries,SettlementJobQueries,ReservationReadStore,WalletReadStore,SettlementJobReadStore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationView struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	ArenaID       uuid.UUID       `json:"arena_id"`
	ArenaName     string          `json:"arena_name"`
	OperatorID    uuid.UUID       `json:"operator_id"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	ExtrasAmount  decimal.Decimal `json:"extras_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Slots         []SlotView      `json:"slots"`
	Extras        []ExtraView     `json:"extras"`
	ConfirmedAt   *time.Time      `json:"confirmed_at,omitempty"`
	CanceledAt    *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type SlotView struct {
	CourtID    uuid.UUID  `json:"court_id"`
	Hour       int        `json:"hour"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
}

type ExtraView struct {
	ExtraID    uuid.UUID       `json:"extra_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CanceledAt *time.Time      `json:"canceled_at,omitempty"`
}

type ReservationListItem struct {
	ID          uuid.UUID       `json:"id"`
	ArenaID     uuid.UUID       `json:"arena_id"`
	ArenaName   string          `json:"arena_name"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

type WalletView struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	HeldAmount       decimal.Decimal `json:"held_amount"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type WalletTransactionView struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Stage       string          `json:"stage"`
	ReferenceID *uuid.UUID      `json:"reference_id,omitempty"`
	ExternalRef *string         `json:"external_ref,omitempty"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SettlementJobView struct {
	ID            string     `json:"id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	RunAt         time.Time  `json:"run_at"`
	Attempts      int32      `json:"attempts"`
	MaxAttempts   int32      `json:"max_attempts"`
	Status        string     `json:"status"`
	LastError     *string    `json:"last_error,omitempty"`
	LockedAt      *time.Time `json:"locked_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type IdempotencyKeyView struct {
	Key                 uuid.UUID  `json:"key"`
	UserID              uuid.UUID  `json:"user_id"`
	Endpoint            string     `json:"endpoint"`
	RequestHash         string     `json:"request_hash"`
	ResponseBodyHash    *string    `json:"response_body_hash,omitempty"`
	Status              string     `json:"status"`
	ResultReservationID *uuid.UUID `json:"result_reservation_id,omitempty"`
	ExpiresAt           time.Time  `json:"expires_at"`
	CreatedAt           time.Time  `json:"created_at"`
}
