package components

import (
	"arena-booking/internal/infra/readstore"
	"arena-booking/internal/infra/repository"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/infra/uow"
	"arena-booking/internal/usecase/idempotency"
	"arena-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Request-path repositories are built per transaction inside the unit of
// work. Only the read side and the pool-bound key purger are provided here.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	maintenanceModule,
	fx.Provide(uow.NewPostgresUoW),
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Wallet
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.WalletReadQueries)),
		),
		fx.Annotate(
			readstore.NewWalletReadStore,
			fx.As(new(queries.WalletReadStore)),
		),
		// Settlement jobs
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.SettlementJobReadQueries)),
		),
		fx.Annotate(
			readstore.NewSettlementJobReadStore,
			fx.As(new(queries.SettlementJobReadStore)),
		),
	),
)

var maintenanceModule = fx.Module("persistence/maintenance",
	fx.Provide(
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.IdempotencyWriteQueries)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(idempotency.ExpiredKeyPurger)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
