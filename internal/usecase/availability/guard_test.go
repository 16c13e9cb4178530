//go:build unit

package availability_test

import (
	"context"
	"testing"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/availability"
	"arena-booking/internal/usecase/shared"
	"arena-booking/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserve(store *memuow.Store, reservationID uuid.UUID, date calendar.Date, keys ...reservation.SlotKey) error {
	return store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return availability.ReserveSlots(ctx, tx, reservationID, date, keys)
	})
}

func TestReserveSlots(t *testing.T) {
	date, err := calendar.Parse("2026-03-02")
	require.NoError(t, err)
	nextDay, err := calendar.Parse("2026-03-03")
	require.NoError(t, err)
	court, otherCourt := uuid.New(), uuid.New()

	t.Run("free slots are claimed", func(t *testing.T) {
		store := memuow.New()
		id := uuid.New()

		require.NoError(t, reserve(store, id, date,
			reservation.SlotKey{CourtID: court, Hour: 10},
			reservation.SlotKey{CourtID: court, Hour: 11}))

		assert.Len(t, store.Slots(id), 2)
		assert.Equal(t, 2, store.ActiveSlotCount())
	})

	t.Run("overlap reports every taken slot and claims nothing", func(t *testing.T) {
		store := memuow.New()
		require.NoError(t, reserve(store, uuid.New(), date,
			reservation.SlotKey{CourtID: court, Hour: 10},
			reservation.SlotKey{CourtID: court, Hour: 11}))

		second := uuid.New()
		err := reserve(store, second, date,
			reservation.SlotKey{CourtID: court, Hour: 9},
			reservation.SlotKey{CourtID: court, Hour: 10},
			reservation.SlotKey{CourtID: court, Hour: 11})

		var booked *availability.SlotsAlreadyBookedError
		require.True(t, errs.As(err, &booked), "got %v", err)
		assert.True(t, errs.Is(err, availability.ErrSlotsAlreadyBooked))
		assert.Equal(t, date, booked.Date)
		assert.Equal(t, []reservation.SlotKey{
			{CourtID: court, Hour: 10},
			{CourtID: court, Hour: 11},
		}, booked.Conflicts)
		assert.Empty(t, store.Slots(second))
		assert.Equal(t, 2, store.ActiveSlotCount())
	})

	t.Run("same hour on another court or day is free", func(t *testing.T) {
		store := memuow.New()
		require.NoError(t, reserve(store, uuid.New(), date, reservation.SlotKey{CourtID: court, Hour: 10}))

		require.NoError(t, reserve(store, uuid.New(), date, reservation.SlotKey{CourtID: otherCourt, Hour: 10}))
		require.NoError(t, reserve(store, uuid.New(), nextDay, reservation.SlotKey{CourtID: court, Hour: 10}))
		assert.Equal(t, 3, store.ActiveSlotCount())
	})

	t.Run("canceled slots can be booked again", func(t *testing.T) {
		store := memuow.New()
		first := uuid.New()
		key := reservation.SlotKey{CourtID: court, Hour: 10}
		require.NoError(t, reserve(store, first, date, key))

		err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return availability.CancelSlots(ctx, tx, first, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
		})
		require.NoError(t, err)
		assert.Zero(t, store.ActiveSlotCount())

		require.NoError(t, reserve(store, uuid.New(), date, key))
		assert.Equal(t, 1, store.ActiveSlotCount())
	})

	t.Run("cancel twice is a no-op", func(t *testing.T) {
		store := memuow.New()
		id := uuid.New()
		require.NoError(t, reserve(store, id, date, reservation.SlotKey{CourtID: court, Hour: 10}))

		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 2; i++ {
			err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
				return availability.CancelSlots(ctx, tx, id, at.Add(time.Duration(i)*time.Hour))
			})
			require.NoError(t, err)
		}

		slots := store.Slots(id)
		require.Len(t, slots, 1)
		require.NotNil(t, slots[0].CanceledAt)
		assert.Equal(t, at, *slots[0].CanceledAt)
	})
}

func TestSlotsAlreadyBookedError_Message(t *testing.T) {
	date, err := calendar.Parse("2026-03-02")
	require.NoError(t, err)

	e := &availability.SlotsAlreadyBookedError{Date: date}
	assert.Equal(t, "slots already booked on 2026-03-02", e.Error())
}
