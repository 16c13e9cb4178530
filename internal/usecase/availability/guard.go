// Package availability keeps each (court, date, hour) sold at most once.
package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/infra"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrSlotsAlreadyBooked = errs.New("slots already booked")

// SlotsAlreadyBookedError lists the requested slots another reservation holds.
type SlotsAlreadyBookedError struct {
	Date      calendar.Date
	Conflicts []reservation.SlotKey
}

func (e *SlotsAlreadyBookedError) Error() string {
	if len(e.Conflicts) == 0 {
		return fmt.Sprintf("slots already booked on %s", e.Date)
	}
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return fmt.Sprintf("slots already booked on %s: %s", e.Date, strings.Join(parts, ", "))
}

func (e *SlotsAlreadyBookedError) Is(target error) bool {
	return target == ErrSlotsAlreadyBooked
}

// ReserveSlots claims every key for reservationID inside tx. The pre-check
// reports which slots are taken; the partial unique index settles the race
// between two transactions that both passed it.
func ReserveSlots(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, date calendar.Date, keys []reservation.SlotKey) error {
	conflicts, err := tx.Slots().FindActiveConflicts(ctx, tx.DB(), date, keys)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &SlotsAlreadyBookedError{Date: date, Conflicts: conflicts}
	}

	for _, k := range keys {
		if err := tx.Slots().Insert(ctx, tx.DB(), reservationID, date, k); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return &SlotsAlreadyBookedError{Date: date, Conflicts: []reservation.SlotKey{k}}
			}
			return err
		}
	}
	return nil
}

// CancelSlots frees the reservation's slots. Slots already freed stay as they are.
func CancelSlots(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, at time.Time) error {
	_, err := tx.Slots().CancelByReservation(ctx, tx.DB(), reservationID, at)
	return err
}
