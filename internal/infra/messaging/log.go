// Package messaging holds the broker adapters behind outbox.Publisher.
package messaging

import (
	"context"
	"log/slog"

	"arena-booking/internal/usecase/outbox"
)

// LogPublisher writes events to the log instead of a broker. It is used when
// no AMQP URL is configured, e.g. in local development.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	p.logger.InfoContext(ctx, "event published",
		"event_id", msg.ID,
		"topic", msg.Topic,
		"aggregate_id", msg.AggregateID,
		"payload", string(msg.Payload),
	)
	return nil
}
