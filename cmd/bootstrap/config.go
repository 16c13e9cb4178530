package bootstrap

import (
	"arena-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule also exposes each section so constructors can ask for just
// the part they read.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.DBConfig { return cfg.DB },
		func(cfg config.Config) config.LedgerConfig { return cfg.Ledger },
		func(cfg config.Config) config.SettlementConfig { return cfg.Settlement },
		func(cfg config.Config) config.OutboxConfig { return cfg.Outbox },
		func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
		func(cfg config.Config) config.AMQPConfig { return cfg.AMQP },
		func(cfg config.Config) config.IdempotencyConfig { return cfg.Idempotency },
	),
)
