package shared

import (
	"context"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/wallet"
	sqlc "arena-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Slots() SlotRepository
	Wallets() WalletRepository
	WalletTransactions() WalletTransactionRepository
	SettlementJobs() SettlementJobRepository
	Outbox() OutboxRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	ArenaByID(ctx context.Context, id uuid.UUID) (*ArenaSnapshot, error)
	ExtrasByIDs(ctx context.Context, arenaID uuid.UUID, ids []uuid.UUID) ([]ExtraSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

// PlatformAccountProvider names the wallet owner that collects platform fees.
type PlatformAccountProvider interface {
	PlatformAccountID() uuid.UUID
}

type ReservationRepository interface {
	// Create inserts the reservation row and its priced extras.
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	// FindForUpdate locks the reservation row and loads its slots and extras.
	FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// UpdateStatus persists a transition; it fails with KindNotFound when the
	// stored status no longer equals from.
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation, from reservation.Status) error
	CancelExtras(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, at time.Time) error
}

type SlotRepository interface {
	FindActiveConflicts(ctx context.Context, tx sqlc.DBTX, date calendar.Date, keys []reservation.SlotKey) ([]reservation.SlotKey, error)
	Insert(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, date calendar.Date, key reservation.SlotKey) error
	ListByReservation(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID) ([]reservation.Slot, error)
	CancelByReservation(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, at time.Time) (int64, error)
}

type WalletRepository interface {
	EnsureExists(ctx context.Context, tx sqlc.DBTX, ownerID uuid.UUID, now time.Time) error
	FindByOwnerForUpdate(ctx context.Context, tx sqlc.DBTX, ownerID uuid.UUID) (*wallet.Wallet, error)
	Save(ctx context.Context, tx sqlc.DBTX, w *wallet.Wallet) error
}

type WalletTransactionRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, t *wallet.Transaction) error
	FindOpenByReferenceForUpdate(ctx context.Context, tx sqlc.DBTX, referenceID uuid.UUID) (*wallet.Transaction, error)
	// FindForUpdate also returns the owner of the wallet the entry belongs to.
	FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*wallet.Transaction, uuid.UUID, error)
	FindByExternalRef(ctx context.Context, tx sqlc.DBTX, externalRef string) (*wallet.Transaction, error)
	// Close stamps an open entry with a closing stage.
	Close(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, stage wallet.Stage) error
}

type SettlementJobRepository interface {
	Upsert(ctx context.Context, tx sqlc.DBTX, job NewSettlementJob) error
	Delete(ctx context.Context, tx sqlc.DBTX, id string) (bool, error)
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now, leaseCutoff time.Time, limit int32) ([]SettlementJob, error)
	Complete(ctx context.Context, tx sqlc.DBTX, id string, note *string, now time.Time) error
	Retry(ctx context.Context, tx sqlc.DBTX, id string, attempts int32, runAt time.Time, lastError string, now time.Time) error
	Fail(ctx context.Context, tx sqlc.DBTX, id string, attempts int32, lastError string, now time.Time) error
	Requeue(ctx context.Context, tx sqlc.DBTX, id string, runAt time.Time) (bool, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx sqlc.DBTX, topic string, aggregateID uuid.UUID, payload []byte, now time.Time) error
	ClaimPending(ctx context.Context, tx sqlc.DBTX, maxAttempts, limit int32) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, lastError string) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether the key was reserved for this request. A key
	// whose previous reservation has expired is taken over.
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error
	Release(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) error
}
