package shared

import (
	"time"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ArenaSnapshot struct {
	ID           uuid.UUID
	OperatorID   uuid.UUID
	Name         string
	PricePerHour decimal.Decimal
	OpenHour     int
	CloseHour    int
	TimeZone     string
	IsActive     bool
	Courts       []arena.Court
}

func (s *ArenaSnapshot) ToDomain() (*arena.Arena, error) {
	return arena.New(arena.Params{
		ID:           s.ID,
		OperatorID:   s.OperatorID,
		Name:         s.Name,
		PricePerHour: s.PricePerHour,
		OpenHour:     s.OpenHour,
		CloseHour:    s.CloseHour,
		TimeZone:     s.TimeZone,
		IsActive:     s.IsActive,
		Courts:       s.Courts,
	})
}

type ExtraSnapshot = arena.Extra

// Minimal snapshot for command read operations
type ReservationSnapshot struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ArenaID     uuid.UUID
	OperatorID  uuid.UUID
	Status      string
	TotalAmount decimal.Decimal
}

type UserSnapshot struct {
	ID   uuid.UUID
	Role user.Role
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	Status              string
	RequestHash         string
	ResponseBodyHash    *string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type SettlementJobStatus string

const (
	JobQueued  SettlementJobStatus = "queued"
	JobRunning SettlementJobStatus = "running"
	JobDone    SettlementJobStatus = "done"
	JobFailed  SettlementJobStatus = "failed"
)

func (s SettlementJobStatus) IsValid() bool {
	switch s {
	case JobQueued, JobRunning, JobDone, JobFailed:
		return true
	default:
		return false
	}
}

type NewSettlementJob struct {
	ID            string
	ReservationID uuid.UUID
	Payload       []byte
	RunAt         time.Time
	MaxAttempts   int32
	CreatedAt     time.Time
}

type SettlementJob struct {
	ID            string
	ReservationID uuid.UUID
	Payload       []byte
	RunAt         time.Time
	Attempts      int32
	MaxAttempts   int32
	Status        SettlementJobStatus
	LastError     *string
	LockedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	Attempts    int32
	CreatedAt   time.Time
}

// StaticPlatformAccount serves a fixed platform wallet owner, normally read
// from configuration.
type StaticPlatformAccount uuid.UUID

func (a StaticPlatformAccount) PlatformAccountID() uuid.UUID { return uuid.UUID(a) }
