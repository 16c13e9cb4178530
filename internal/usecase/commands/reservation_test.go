//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/revenue"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/availability"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/settlement"
	"arena-booking/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func createHold(t *testing.T, f *fixture, customer uuid.UUID, hours ...int) uuid.UUID {
	t.Helper()
	res, err := f.cmds.CreateReservation(context.Background(), f.input(hours...), customer, uuid.New())
	require.NoError(t, err)
	require.False(t, res.IsReplayed)
	return res.Reservation.ID
}

type ledgerRow struct {
	Type   wallet.Type
	Stage  wallet.Stage
	Amount string
}

func ledgerRows(txs []*wallet.Transaction) []ledgerRow {
	rows := make([]ledgerRow, len(txs))
	for i, t := range txs {
		rows[i] = ledgerRow{Type: t.Type(), Stage: t.Stage(), Amount: money.String(t.Amount())}
	}
	return rows
}

func TestCreateReservation_HoldsFundsAcrossParties(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))

	res, err := f.cmds.CreateReservation(context.Background(), f.input(10, 11), f.customer, uuid.New())
	require.NoError(t, err)

	view := res.Reservation
	assert.False(t, res.IsReplayed)
	assert.Equal(t, "hold", view.Status)
	assert.Equal(t, fixtureDate, view.Date)
	assert.Equal(t, f.operator, view.OperatorID)
	assertDecimal(t, "200", view.BaseAmount)
	assertDecimal(t, "0", view.ExtrasAmount)
	assertDecimal(t, "200", view.TotalAmount)
	assert.Len(t, view.Slots, 2)

	assertBalances(t, f, f.customer, "300", "200")
	assertBalances(t, f, f.operator, "0", "180")
	assertBalances(t, f, f.platform, "0", "20")

	want := []ledgerRow{{Type: wallet.TypePayment, Stage: wallet.StageHold, Amount: "200.00"}}
	if diff := cmp.Diff(want, ledgerRows(f.store.Transactions(f.customer))); diff != "" {
		t.Errorf("customer ledger mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, f.store.Transactions(f.operator))
	assert.Empty(t, f.store.Transactions(f.platform))

	job, ok := f.store.Job(settlement.JobID(view.ID))
	require.True(t, ok, "settlement job scheduled")
	assert.Equal(t, shared.JobQueued, job.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), job.RunAt)
	assert.Equal(t, f.cfg.Settlement.MaxAttempts, job.MaxAttempts)
	payload, err := settlement.DecodePayload(job.Payload)
	require.NoError(t, err)
	assert.Equal(t, view.ID, payload.ReservationID)
	assertDecimal(t, "200", payload.Amount)

	events := f.store.OutboxRecords()
	require.Len(t, events, 1)
	assert.Equal(t, reservation.TopicCreated, events[0].Event.Topic)
	assert.Equal(t, view.ID, events[0].Event.AggregateID)
	var body reservation.Event
	require.NoError(t, json.Unmarshal(events[0].Event.Payload, &body))
	assert.Equal(t, "hold", body.Status)
	assert.Equal(t, "200.00", body.TotalAmount)
}

func TestCreateReservation_PricesExtras(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	racket := arena.Extra{ID: uuid.New(), Name: "Racket", Price: decimal.RequireFromString("15"), IsActive: true}
	f.store.AddExtra(f.arena.ID, racket)

	in := f.input(10, 11)
	in.Extras = []commands.ExtraInput{{ExtraID: racket.ID, Quantity: 2}}
	res, err := f.cmds.CreateReservation(context.Background(), in, f.customer, uuid.New())
	require.NoError(t, err)

	assertDecimal(t, "200", res.Reservation.BaseAmount)
	assertDecimal(t, "30", res.Reservation.ExtrasAmount)
	assertDecimal(t, "230", res.Reservation.TotalAmount)
	require.Len(t, res.Reservation.Extras, 1)
	assert.Equal(t, "Racket", res.Reservation.Extras[0].Name)
	assert.Equal(t, 2, res.Reservation.Extras[0].Quantity)

	assertBalances(t, f, f.customer, "270", "230")
	assertBalances(t, f, f.operator, "0", "207")
	assertBalances(t, f, f.platform, "0", "23")
}

func TestCreateReservation_InsufficientFundsLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(50))
	key := uuid.New()

	_, err := f.cmds.CreateReservation(context.Background(), f.input(10, 11), f.customer, key)
	require.Error(t, err)
	assert.True(t, errs.Is(err, wallet.ErrInsufficientFunds))

	assert.Zero(t, f.store.ReservationCount())
	assert.Zero(t, f.store.ActiveSlotCount())
	assert.Empty(t, f.store.Transactions(f.customer))
	assert.Empty(t, f.store.OutboxRecords())
	assertBalances(t, f, f.customer, "50", "0")
	assertBalances(t, f, f.operator, "0", "0")
	assertBalances(t, f, f.platform, "0", "0")

	_, ok := f.store.IdempotencyRecord(key, f.customer)
	assert.False(t, ok, "failed request releases its idempotency key")
}

func TestCreateReservation_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture) commands.CreateReservationInput
		wantErr error
	}{
		{
			name:    "no slots",
			prepare: func(f *fixture) commands.CreateReservationInput { return f.input() },
			wantErr: reservation.ErrInvalidSlots,
		},
		{
			name:    "duplicate slot",
			prepare: func(f *fixture) commands.CreateReservationInput { return f.input(10, 10) },
			wantErr: reservation.ErrInvalidSlots,
		},
		{
			name:    "outside operating hours",
			prepare: func(f *fixture) commands.CreateReservationInput { return f.input(22) },
			wantErr: reservation.ErrInvalidSlots,
		},
		{
			name: "slot already started",
			prepare: func(f *fixture) commands.CreateReservationInput {
				in := f.input(9)
				in.Date = "2026-03-01"
				return in
			},
			wantErr: reservation.ErrInvalidSlots,
		},
		{
			name: "court of another arena",
			prepare: func(f *fixture) commands.CreateReservationInput {
				in := f.input(10)
				in.Slots[0].CourtID = uuid.New()
				return in
			},
			wantErr: reservation.ErrInvalidSlots,
		},
		{
			name: "malformed date",
			prepare: func(f *fixture) commands.CreateReservationInput {
				in := f.input(10)
				in.Date = "02/03/2026"
				return in
			},
			wantErr: reservation.ErrInvalidSlots,
		},
		{
			name: "unknown arena",
			prepare: func(f *fixture) commands.CreateReservationInput {
				in := f.input(10)
				in.ArenaID = uuid.New()
				return in
			},
			wantErr: arena.ErrArenaNotActive,
		},
		{
			name: "inactive arena",
			prepare: func(f *fixture) commands.CreateReservationInput {
				closed := f.arena
				closed.ID = uuid.New()
				closed.IsActive = false
				f.store.AddArena(closed)
				in := f.input(10)
				in.ArenaID = closed.ID
				return in
			},
			wantErr: arena.ErrArenaNotActive,
		},
		{
			name: "unknown extra",
			prepare: func(f *fixture) commands.CreateReservationInput {
				in := f.input(10)
				in.Extras = []commands.ExtraInput{{ExtraID: uuid.New(), Quantity: 1}}
				return in
			},
			wantErr: arena.ErrExtraNotAvailable,
		},
		{
			name: "unsupported payment method",
			prepare: func(f *fixture) commands.CreateReservationInput {
				in := f.input(10)
				in.PaymentMethod = "cash"
				return in
			},
			wantErr: reservation.ErrUnsupportedPayment,
		},
		{
			name: "free arena",
			prepare: func(f *fixture) commands.CreateReservationInput {
				free := f.arena
				free.ID = uuid.New()
				free.PricePerHour = decimal.Zero
				f.store.AddArena(free)
				in := f.input(10)
				in.ArenaID = free.ID
				return in
			},
			wantErr: arena.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Fund(f.customer, decimal.NewFromInt(1000))

			_, err := f.cmds.CreateReservation(context.Background(), tt.prepare(f), f.customer, uuid.New())
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
			assert.Zero(t, f.store.ReservationCount())
			assertBalances(t, f, f.customer, "1000", "0")
		})
	}
}

func TestCreateReservation_SlotAlreadyBooked(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	createHold(t, f, f.customer, 10)

	other := f.newCustomer("500")
	_, err := f.cmds.CreateReservation(context.Background(), f.input(10, 11), other, uuid.New())
	require.Error(t, err)
	assert.True(t, errs.Is(err, availability.ErrSlotsAlreadyBooked))

	var booked *availability.SlotsAlreadyBookedError
	require.True(t, errs.As(err, &booked))
	assert.Equal(t, []reservation.SlotKey{{CourtID: f.court, Hour: 10}}, booked.Conflicts)
	assertBalances(t, f, other, "500", "0")
}

func TestCreateReservation_CanceledSlotIsBookableAgain(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	id := createHold(t, f, f.customer, 10)
	_, err := f.cmds.CancelReservation(context.Background(), id, f.customer)
	require.NoError(t, err)

	other := f.newCustomer("500")
	createHold(t, f, other, 10)
	assert.Equal(t, 1, f.store.ActiveSlotCount())
}

func TestCreateReservation_ConcurrentRequestsForSameSlot(t *testing.T) {
	f := newFixture(t)

	const n = 8
	customers := make([]uuid.UUID, n)
	for i := range customers {
		customers[i] = f.newCustomer("500")
	}

	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		errsCh    = make(chan error, n)
		successes = make(chan uuid.UUID, n)
	)
	for _, c := range customers {
		wg.Add(1)
		go func(customer uuid.UUID) {
			defer wg.Done()
			<-start
			if _, err := f.cmds.CreateReservation(context.Background(), f.input(10), customer, uuid.New()); err != nil {
				errsCh <- err
				return
			}
			successes <- customer
		}(c)
	}
	close(start)
	wg.Wait()
	close(errsCh)
	close(successes)

	var winners []uuid.UUID
	for c := range successes {
		winners = append(winners, c)
	}
	require.Len(t, winners, 1)
	for err := range errsCh {
		assert.True(t, errs.Is(err, availability.ErrSlotsAlreadyBooked), "got %v", err)
	}

	assert.Equal(t, 1, f.store.ActiveSlotCount())
	for _, c := range customers {
		if c == winners[0] {
			assertBalances(t, f, c, "400", "100")
			continue
		}
		assertBalances(t, f, c, "500", "0")
	}
}

func TestCreateReservation_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	key := uuid.New()

	first, err := f.cmds.CreateReservation(context.Background(), f.input(10, 11), f.customer, key)
	require.NoError(t, err)
	require.False(t, first.IsReplayed)

	second, err := f.cmds.CreateReservation(context.Background(), f.input(10, 11), f.customer, key)
	require.NoError(t, err)
	assert.True(t, second.IsReplayed)
	assert.Equal(t, first.Reservation.ID, second.Reservation.ID)

	t.Run("completed key replays even for a different body", func(t *testing.T) {
		third, err := f.cmds.CreateReservation(context.Background(), f.input(14), f.customer, key)
		require.NoError(t, err)
		assert.True(t, third.IsReplayed)
		assert.Equal(t, first.Reservation.ID, third.Reservation.ID)
	})

	assert.Equal(t, 1, f.store.ReservationCount())
	assertBalances(t, f, f.customer, "300", "200")

	rec, ok := f.store.IdempotencyRecord(key, f.customer)
	require.True(t, ok)
	assert.Equal(t, shared.IdempotencyStatusCompleted, rec.Status)
	require.NotNil(t, rec.ResultReservationID)
	assert.Equal(t, first.Reservation.ID, *rec.ResultReservationID)
}

func TestCreateReservation_SameKeyIsScopedPerUser(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	other := f.newCustomer("500")
	key := uuid.New()

	a, err := f.cmds.CreateReservation(context.Background(), f.input(10), f.customer, key)
	require.NoError(t, err)
	b, err := f.cmds.CreateReservation(context.Background(), f.input(11), other, key)
	require.NoError(t, err)

	assert.False(t, b.IsReplayed)
	assert.NotEqual(t, a.Reservation.ID, b.Reservation.ID)
}

func TestCreateReservation_CommitFailureReleasesKey(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	key := uuid.New()

	calls := 0
	f.store.BeforeCommit = func() error {
		calls++
		// first commit reserves the key, second is the reservation itself
		if calls == 2 {
			return errs.New("connection reset")
		}
		return nil
	}

	_, err := f.cmds.CreateReservation(context.Background(), f.input(10), f.customer, key)
	require.Error(t, err)
	f.store.BeforeCommit = nil

	_, ok := f.store.IdempotencyRecord(key, f.customer)
	assert.False(t, ok)
	assert.Zero(t, f.store.ReservationCount())

	res, err := f.cmds.CreateReservation(context.Background(), f.input(10), f.customer, key)
	require.NoError(t, err)
	assert.False(t, res.IsReplayed)
}

func TestSettleReservation_MovesHeldFunds(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	id := createHold(t, f, f.customer, 10, 11)

	f.clock.Set(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.cmds.SettleReservation(context.Background(), id))

	status, _ := f.store.ReservationStatus(id)
	assert.Equal(t, reservation.StatusConfirmed, status)

	assertBalances(t, f, f.customer, "300", "0")
	assertBalances(t, f, f.operator, "180", "0")
	assertBalances(t, f, f.platform, "20", "0")

	wantCustomer := []ledgerRow{
		{Type: wallet.TypePayment, Stage: wallet.StageProcessed, Amount: "200.00"},
		{Type: wallet.TypePayment, Stage: wallet.StageSettled, Amount: "200.00"},
	}
	if diff := cmp.Diff(wantCustomer, ledgerRows(f.store.Transactions(f.customer))); diff != "" {
		t.Errorf("customer ledger mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(
		[]ledgerRow{{Type: wallet.TypeDeposit, Stage: wallet.StageSettled, Amount: "180.00"}},
		ledgerRows(f.store.Transactions(f.operator)),
	); diff != "" {
		t.Errorf("operator ledger mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(
		[]ledgerRow{{Type: wallet.TypeFee, Stage: wallet.StageSettled, Amount: "20.00"}},
		ledgerRows(f.store.Transactions(f.platform)),
	); diff != "" {
		t.Errorf("platform ledger mismatch (-want +got):\n%s", diff)
	}

	events := f.store.OutboxRecords()
	require.Len(t, events, 2)
	assert.Equal(t, reservation.TopicConfirmed, events[1].Event.Topic)
}

func TestSettleReservation_SecondCallIsNotInHold(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	id := createHold(t, f, f.customer, 10, 11)

	require.NoError(t, f.cmds.SettleReservation(context.Background(), id))
	err := f.cmds.SettleReservation(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errs.Is(err, reservation.ErrNotInHold))

	assertBalances(t, f, f.operator, "180", "0")
	assertBalances(t, f, f.platform, "20", "0")
	assert.Len(t, f.store.Transactions(f.operator), 1)
}

func TestSettleReservation_UnknownReservation(t *testing.T) {
	f := newFixture(t)
	err := f.cmds.SettleReservation(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrReservationNotFound))
}

func TestSettleReservation_ZeroFeeSkipsPlatformLeg(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Ledger.FeeRate = revenue.MustFeeRate("0")
	f := newFixtureWithConfig(t, cfg)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	id := createHold(t, f, f.customer, 10, 11)

	assertBalances(t, f, f.platform, "0", "0")
	require.NoError(t, f.cmds.SettleReservation(context.Background(), id))

	assertBalances(t, f, f.operator, "200", "0")
	assertBalances(t, f, f.platform, "0", "0")
	assert.Empty(t, f.store.Transactions(f.platform))
}

// withFeeRate rebuilds the commands as a restarted process would after
// ADMIN_FEE_RATE changed.
func TestSettleReservation_OperatorBooksOwnArena(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.operator, decimal.NewFromInt(500))
	id := createHold(t, f, f.operator, 10, 11)

	assertBalances(t, f, f.operator, "300", "380")

	require.NoError(t, f.cmds.SettleReservation(context.Background(), id))

	status, _ := f.store.ReservationStatus(id)
	assert.Equal(t, reservation.StatusConfirmed, status)
	assertBalances(t, f, f.operator, "480", "0")
	assertBalances(t, f, f.platform, "20", "0")

	want := []ledgerRow{
		{Type: wallet.TypePayment, Stage: wallet.StageProcessed, Amount: "200.00"},
		{Type: wallet.TypePayment, Stage: wallet.StageSettled, Amount: "200.00"},
		{Type: wallet.TypeDeposit, Stage: wallet.StageSettled, Amount: "180.00"},
	}
	if diff := cmp.Diff(want, ledgerRows(f.store.Transactions(f.operator))); diff != "" {
		t.Errorf("operator ledger mismatch (-want +got):\n%s", diff)
	}
}

func TestCancelReservation_OperatorBooksOwnArena(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.operator, decimal.NewFromInt(500))
	id := createHold(t, f, f.operator, 10, 11)

	_, err := f.cmds.CancelReservation(context.Background(), id, f.operator)
	require.NoError(t, err)

	assertBalances(t, f, f.operator, "500", "0")
	assertBalances(t, f, f.platform, "0", "0")
	assert.Len(t, f.store.Transactions(f.operator), 3)
}

func withFeeRate(f *fixture, rate string) commands.ReservationCommands {
	ledgerCfg := f.cfg.Ledger
	ledgerCfg.FeeRate = revenue.MustFeeRate(rate)
	return commands.NewReservationCommands(
		f.store,
		settlement.NewScheduler(f.cfg.Settlement),
		f.reader,
		shared.StaticPlatformAccount(f.platform),
		ledgerCfg,
		reservation.NewHourlyPriceCalculator(),
		f.clock,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestFeeRateChangedDuringHold_MovesCreationShares(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	settled := createHold(t, f, f.customer, 10, 11)
	canceled := createHold(t, f, f.customer, 12, 13)
	assertBalances(t, f, f.operator, "0", "360")
	assertBalances(t, f, f.platform, "0", "40")
	before := f.total(f.customer)

	repriced := withFeeRate(f, "0.2")

	require.NoError(t, repriced.SettleReservation(context.Background(), settled))
	_, err := repriced.CancelReservation(context.Background(), canceled, f.customer)
	require.NoError(t, err)

	for _, id := range []uuid.UUID{settled, canceled} {
		status, _ := f.store.ReservationStatus(id)
		assert.NotEqual(t, reservation.StatusHold, status)
	}
	assertBalances(t, f, f.customer, "300", "0")
	assertBalances(t, f, f.operator, "180", "0")
	assertBalances(t, f, f.platform, "20", "0")
	assertDecimal(t, before.String(), f.total(f.customer))
}

func TestFeeRateChange_AppliesToNewHolds(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))

	repriced := withFeeRate(f, "0.2")
	res, err := repriced.CreateReservation(context.Background(), f.input(10, 11), f.customer, uuid.New())
	require.NoError(t, err)
	require.NoError(t, repriced.SettleReservation(context.Background(), res.Reservation.ID))

	assertBalances(t, f, f.operator, "160", "0")
	assertBalances(t, f, f.platform, "40", "0")
}

func TestCancelReservation_RefundsEveryParty(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	id := createHold(t, f, f.customer, 10, 11)

	f.clock.Add(time.Hour)
	view, err := f.cmds.CancelReservation(context.Background(), id, f.customer)
	require.NoError(t, err)
	assert.Equal(t, "canceled", view.Status)
	require.NotNil(t, view.CanceledAt)
	assert.Equal(t, fixtureNow.Add(time.Hour), *view.CanceledAt)

	assertBalances(t, f, f.customer, "500", "0")
	assertBalances(t, f, f.operator, "0", "0")
	assertBalances(t, f, f.platform, "0", "0")

	wantCustomer := []ledgerRow{
		{Type: wallet.TypePayment, Stage: wallet.StageProcessed, Amount: "200.00"},
		{Type: wallet.TypeRefund, Stage: wallet.StageRefund, Amount: "200.00"},
	}
	if diff := cmp.Diff(wantCustomer, ledgerRows(f.store.Transactions(f.customer))); diff != "" {
		t.Errorf("customer ledger mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []ledgerRow{{Type: wallet.TypeRefund, Stage: wallet.StageRefund, Amount: "180.00"}}, ledgerRows(f.store.Transactions(f.operator)))
	assert.Equal(t, []ledgerRow{{Type: wallet.TypeFee, Stage: wallet.StageRefund, Amount: "20.00"}}, ledgerRows(f.store.Transactions(f.platform)))

	assert.Zero(t, f.store.ActiveSlotCount())
	for _, s := range f.store.Slots(id) {
		assert.NotNil(t, s.CanceledAt)
	}

	_, scheduled := f.store.Job(settlement.JobID(id))
	assert.False(t, scheduled, "pending settlement job removed")

	events := f.store.OutboxRecords()
	require.Len(t, events, 2)
	assert.Equal(t, reservation.TopicCanceled, events[1].Event.Topic)
}

func TestCancelReservation_CancelsExtras(t *testing.T) {
	f := newFixture(t)
	f.store.Fund(f.customer, decimal.NewFromInt(500))
	towel := arena.Extra{ID: uuid.New(), Name: "Towel", Price: decimal.RequireFromString("2.50"), IsActive: true}
	f.store.AddExtra(f.arena.ID, towel)

	in := f.input(10)
	in.Extras = []commands.ExtraInput{{ExtraID: towel.ID, Quantity: 1}}
	res, err := f.cmds.CreateReservation(context.Background(), in, f.customer, uuid.New())
	require.NoError(t, err)

	_, err = f.cmds.CancelReservation(context.Background(), res.Reservation.ID, f.customer)
	require.NoError(t, err)

	extras := f.store.ReservationExtras(res.Reservation.ID)
	require.Len(t, extras, 1)
	assert.NotNil(t, extras[0].CanceledAt)
	assertBalances(t, f, f.customer, "500", "0")
}

func TestCancelReservation_Rejections(t *testing.T) {
	t.Run("stranger", func(t *testing.T) {
		f := newFixture(t)
		f.store.Fund(f.customer, decimal.NewFromInt(500))
		id := createHold(t, f, f.customer, 10)

		_, err := f.cmds.CancelReservation(context.Background(), id, uuid.New())
		require.Error(t, err)
		assert.True(t, errs.Is(err, reservation.ErrUnauthorized))
		assertBalances(t, f, f.customer, "400", "100")
	})

	t.Run("operator cannot cancel on behalf of the customer", func(t *testing.T) {
		f := newFixture(t)
		f.store.Fund(f.customer, decimal.NewFromInt(500))
		id := createHold(t, f, f.customer, 10)

		_, err := f.cmds.CancelReservation(context.Background(), id, f.operator)
		assert.True(t, errs.Is(err, reservation.ErrUnauthorized))
	})

	t.Run("already confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.store.Fund(f.customer, decimal.NewFromInt(500))
		id := createHold(t, f, f.customer, 10)
		require.NoError(t, f.cmds.SettleReservation(context.Background(), id))

		_, err := f.cmds.CancelReservation(context.Background(), id, f.customer)
		assert.True(t, errs.Is(err, reservation.ErrNotInHold))
		assertBalances(t, f, f.customer, "400", "0")
	})

	t.Run("already canceled", func(t *testing.T) {
		f := newFixture(t)
		f.store.Fund(f.customer, decimal.NewFromInt(500))
		id := createHold(t, f, f.customer, 10)
		_, err := f.cmds.CancelReservation(context.Background(), id, f.customer)
		require.NoError(t, err)

		_, err = f.cmds.CancelReservation(context.Background(), id, f.customer)
		assert.True(t, errs.Is(err, reservation.ErrAlreadyCanceled))
		assertBalances(t, f, f.customer, "500", "0")
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.cmds.CancelReservation(context.Background(), uuid.New(), f.customer)
		assert.True(t, errs.Is(err, commands.ErrReservationNotFound))
	})
}

func TestSettleAndCancel_Race(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newFixture(t)
		f.store.Fund(f.customer, decimal.NewFromInt(500))
		before := f.total(f.customer)
		id := createHold(t, f, f.customer, 10, 11)

		var (
			wg                   sync.WaitGroup
			start                = make(chan struct{})
			settleErr, cancelErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			settleErr = f.cmds.SettleReservation(context.Background(), id)
		}()
		go func() {
			defer wg.Done()
			<-start
			_, cancelErr = f.cmds.CancelReservation(context.Background(), id, f.customer)
		}()
		close(start)
		wg.Wait()

		status, _ := f.store.ReservationStatus(id)
		switch {
		case settleErr == nil:
			require.Error(t, cancelErr)
			assert.True(t, errs.Is(cancelErr, reservation.ErrNotInHold))
			assert.Equal(t, reservation.StatusConfirmed, status)
			assertBalances(t, f, f.operator, "180", "0")
		case cancelErr == nil:
			require.Error(t, settleErr)
			assert.True(t, errs.Is(settleErr, reservation.ErrNotInHold))
			assert.Equal(t, reservation.StatusCanceled, status)
			assertBalances(t, f, f.customer, "500", "0")
		default:
			t.Fatalf("both lost: settle=%v cancel=%v", settleErr, cancelErr)
		}
		assert.True(t, before.Equal(f.total(f.customer)), "money created or destroyed")
	}
}

func TestReservationLifecycle_ConservesMoney(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := config.NewTestConfig()
		cfg.Ledger.FeeRate = revenue.MustFeeRate(decimal.New(rapid.Int64Range(0, 10_000).Draw(rt, "rateBps"), -4).String())
		f := newFixtureWithConfig(t, cfg)

		price := decimal.New(rapid.Int64Range(1, 50_000).Draw(rt, "priceCents"), -2)
		priced := f.arena
		priced.ID = uuid.New()
		priced.PricePerHour = price
		f.store.AddArena(priced)

		hourCount := rapid.IntRange(1, 4).Draw(rt, "hours")
		hours := make([]int, hourCount)
		for i := range hours {
			hours[i] = 10 + i
		}
		in := f.input(hours...)
		in.ArenaID = priced.ID

		balance := decimal.New(rapid.Int64Range(0, 500_000).Draw(rt, "balanceCents"), -2)
		f.store.Fund(f.customer, balance)
		before := f.total(f.customer)

		res, err := f.cmds.CreateReservation(context.Background(), in, f.customer, uuid.New())
		cost := price.Mul(decimal.NewFromInt(int64(hourCount)))
		if balance.LessThan(cost) {
			if !errs.Is(err, wallet.ErrInsufficientFunds) {
				rt.Fatalf("balance %s cost %s: want insufficient funds, got %v", balance, cost, err)
			}
			if !before.Equal(f.total(f.customer)) {
				rt.Fatalf("failed create moved money")
			}
			return
		}
		if err != nil {
			rt.Fatalf("create: %v", err)
		}

		_, payerHeld := f.store.Balances(f.customer)
		_, opHeld := f.store.Balances(f.operator)
		_, platHeld := f.store.Balances(f.platform)
		if !opHeld.Add(platHeld).Equal(payerHeld) {
			rt.Fatalf("held split %s + %s != payer held %s", opHeld, platHeld, payerHeld)
		}

		if rapid.Bool().Draw(rt, "settle") {
			err = f.cmds.SettleReservation(context.Background(), res.Reservation.ID)
		} else {
			_, err = f.cmds.CancelReservation(context.Background(), res.Reservation.ID, f.customer)
		}
		if err != nil {
			rt.Fatalf("finish: %v", err)
		}
		if after := f.total(f.customer); !before.Equal(after) {
			rt.Fatalf("total before %s != after %s", before, after)
		}
		for _, owner := range []uuid.UUID{f.customer, f.operator, f.platform} {
			if _, held := f.store.Balances(owner); !held.IsZero() {
				rt.Fatalf("held left on %s: %s", owner, held)
			}
		}
	})
}
