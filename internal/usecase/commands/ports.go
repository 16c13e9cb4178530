package commands

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock . ReservationCommands,WalletCommands,SettlementJobCommands

import (
	"context"
	"encoding/json"
	"time"

	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationReader is the read side used for read-after-write responses.
type ReservationReader interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*queries.ReservationView, error)
}

// SettlementScheduler keeps one deferred settlement job per reservation.
type SettlementScheduler interface {
	Schedule(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, runAt time.Time, amount decimal.Decimal, now time.Time) error
	Unschedule(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (bool, error)
}

func enqueueReservationEvent(ctx context.Context, tx shared.Tx, res *reservation.Reservation, now time.Time) error {
	payload, err := json.Marshal(reservation.NewEvent(res, now))
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation event")
	}
	return tx.Outbox().Enqueue(ctx, tx.DB(), res.EventTopic(), res.ID(), payload, now)
}
