package bootstrap

import (
	"context"
	"log/slog"

	"arena-booking/internal/infra/messaging"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/usecase/outbox"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublisher,
	),
)

// NewPublisher picks RabbitMQ when AMQP_URL is set and logs events otherwise.
func NewPublisher(lc fx.Lifecycle, cfg config.AMQPConfig, logger *slog.Logger) (outbox.Publisher, error) {
	if cfg.URL == "" {
		logger.Warn("AMQP_URL not set, outbox events are only logged")
		return messaging.NewLogPublisher(logger), nil
	}

	pub, err := messaging.NewRabbitPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
