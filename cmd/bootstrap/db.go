package bootstrap

import (
	"context"
	"log/slog"

	"arena-booking/internal/infra/db"
	"arena-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB closes the pool after the HTTP server and background workers have
// stopped, since fx runs OnStop hooks in reverse order of registration.
func NewDB(lc fx.Lifecycle, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Connect(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "host", cfg.Host, "db", cfg.DBName, "max_conns", pool.Config().MaxConns)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}
