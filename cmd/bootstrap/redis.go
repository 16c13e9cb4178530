package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"arena-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewRedisScripter,
	),
)

// NewRedisClient does not fail startup when Redis is down: the rate limiter
// lets requests through until it comes back.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Warn("redis unreachable, rate limiting disabled until it recovers", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

// NewRedisScripter returns a nil interface when limiting is off so the
// limiter short-circuits without touching Redis.
func NewRedisScripter(cfg config.RateLimitConfig, client *redis.Client) redis.Scripter {
	if !cfg.Enabled {
		return nil
	}
	return client
}
