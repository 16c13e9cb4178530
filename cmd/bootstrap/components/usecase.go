package components

import (
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/usecase"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/queries"
	"arena-booking/internal/usecase/settlement"
	"arena-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewHourlyPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	func(cfg config.LedgerConfig) shared.PlatformAccountProvider {
		return shared.StaticPlatformAccount(cfg.PlatformAccountID)
	},
	fx.Annotate(
		settlement.NewScheduler,
		fx.As(new(commands.SettlementScheduler)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewWalletCommands,
		commands.NewSettlementJobCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewWalletQueries,
		queries.NewSettlementJobQueries,
		// read-after-write responses of the reservation commands
		func(q queries.ReservationQueries) commands.ReservationReader { return q },
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
