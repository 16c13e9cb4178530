//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/settlement"
	"arena-booking/internal/usecase/shared"
	"arena-booking/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	fixtureNow  = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fixtureDate = "2026-03-02"
)

type fixture struct {
	cfg      config.Config
	store    *memuow.Store
	clock    *clock.MockClock
	cmds     commands.ReservationCommands
	wallets  commands.WalletCommands
	reader   queries.ReservationQueries
	arena    shared.ArenaSnapshot
	court    uuid.UUID
	customer uuid.UUID
	operator uuid.UUID
	platform uuid.UUID
}

// newFixture seeds one active UTC arena at 100 per hour, open 8 to 22 with a
// single court, plus zero-balance operator and platform wallets.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, config.NewTestConfig())
}

func newFixtureWithConfig(t *testing.T, cfg config.Config) *fixture {
	t.Helper()

	f := &fixture{
		cfg:      cfg,
		store:    memuow.New(),
		clock:    clock.NewMockClock(fixtureNow),
		court:    uuid.New(),
		customer: uuid.New(),
		operator: uuid.New(),
		platform: cfg.Ledger.PlatformAccountID,
	}
	f.arena = shared.ArenaSnapshot{
		ID:           uuid.New(),
		OperatorID:   f.operator,
		Name:         "Centre Court Arena",
		PricePerHour: decimal.NewFromInt(100),
		OpenHour:     8,
		CloseHour:    22,
		TimeZone:     "UTC",
		IsActive:     true,
		Courts:       []arena.Court{{ID: f.court, Name: "Court 1", IsActive: true}},
	}

	f.store.AddUser(f.customer, user.RoleCustomer)
	f.store.AddUser(f.operator, user.RoleOperator)
	f.store.AddUser(f.platform, user.RoleAdmin)
	f.store.AddArena(f.arena)
	f.store.Fund(f.operator, decimal.Zero)
	f.store.Fund(f.platform, decimal.Zero)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.reader = queries.NewReservationQueries(f.store.ReservationReadStore())
	f.cmds = commands.NewReservationCommands(
		f.store,
		settlement.NewScheduler(cfg.Settlement),
		f.reader,
		shared.StaticPlatformAccount(f.platform),
		cfg.Ledger,
		reservation.NewHourlyPriceCalculator(),
		f.clock,
		logger,
	)
	f.wallets = commands.NewWalletCommands(f.store, f.clock)
	return f
}

func (f *fixture) newCustomer(balance string) uuid.UUID {
	id := uuid.New()
	f.store.AddUser(id, user.RoleCustomer)
	f.store.Fund(id, decimal.RequireFromString(balance))
	return id
}

func (f *fixture) input(hours ...int) commands.CreateReservationInput {
	slots := make([]commands.SlotInput, len(hours))
	for i, h := range hours {
		slots[i] = commands.SlotInput{CourtID: f.court, Hour: h}
	}
	return commands.CreateReservationInput{
		ArenaID:       f.arena.ID,
		Date:          fixtureDate,
		Slots:         slots,
		PaymentMethod: string(reservation.PaymentMethodWallet),
	}
}

// total is balance plus held across the three parties of a reservation.
func (f *fixture) total(payer uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, owner := range []uuid.UUID{payer, f.operator, f.platform} {
		b, h := f.store.Balances(owner)
		sum = sum.Add(b).Add(h)
	}
	return sum
}

func assertBalances(t *testing.T, f *fixture, owner uuid.UUID, balance, held string) {
	t.Helper()
	b, h := f.store.Balances(owner)
	assert.True(t, decimal.RequireFromString(balance).Equal(b), "balance: want %s, got %s", balance, b)
	assert.True(t, decimal.RequireFromString(held).Equal(h), "held: want %s, got %s", held, h)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
