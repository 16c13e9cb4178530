package messaging

import (
	"context"
	"log/slog"
	"sync"

	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrPublishNacked      = errs.New("rabbitmq: broker nacked the publish")
	ErrConfirmUnavailable = errs.New("rabbitmq: channel is not in confirm mode")
)

// confirmation is the broker's answer to one publish.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// session is an open connection and channel in confirm mode, publishing to
// one exchange.
type session interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) (confirmation, error)
	IsClosed() bool
	Close() error
}

type dialFunc func() (session, error)

// RabbitPublisher sends outbox messages to a durable topic exchange with the
// event topic as routing key. A publish returns only after the broker acks
// it. The connection is reopened on the next publish after the broker drops it.
type RabbitPublisher struct {
	dial   dialFunc
	logger *slog.Logger

	mu   sync.Mutex
	sess session
}

func NewRabbitPublisher(cfg config.AMQPConfig, logger *slog.Logger) (*RabbitPublisher, error) {
	return newRabbitPublisher(func() (session, error) { return dialAMQP(cfg) }, logger)
}

func newRabbitPublisher(dial dialFunc, logger *slog.Logger) (*RabbitPublisher, error) {
	p := &RabbitPublisher{dial: dial, logger: logger}
	sess, err := dial()
	if err != nil {
		return nil, err
	}
	p.sess = sess
	return p, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil || p.sess.IsClosed() {
		p.logger.WarnContext(ctx, "rabbitmq: reconnecting")
		_ = p.closeLocked()
		sess, err := p.dial()
		if err != nil {
			return err
		}
		p.sess = sess
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID.String(),
		Timestamp:    msg.CreatedAt.UTC(),
		Type:         msg.Topic,
		Body:         msg.Payload,
	}
	conf, err := p.sess.Publish(ctx, msg.Topic, pub)
	if err != nil {
		return errs.Wrapf(err, "rabbitmq: publish %s failed", msg.Topic)
	}
	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return errs.Wrapf(err, "rabbitmq: confirm %s failed", msg.Topic)
	}
	if !acked {
		return errs.Wrapf(ErrPublishNacked, "message %s", msg.ID)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *RabbitPublisher) closeLocked() error {
	if p.sess == nil {
		return nil
	}
	err := p.sess.Close()
	p.sess = nil
	return err
}

type amqpSession struct {
	exchange string
	conn     *amqp.Connection
	ch       *amqp.Channel
}

func dialAMQP(cfg config.AMQPConfig) (session, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq: dial failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq: channel open failed")
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq: confirm mode failed")
	}
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "rabbitmq: exchange %q declare failed", cfg.Exchange)
	}
	return &amqpSession{exchange: cfg.Exchange, conn: conn, ch: ch}, nil
}

func (s *amqpSession) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) (confirmation, error) {
	dc, err := s.ch.PublishWithDeferredConfirmWithContext(ctx,
		s.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, ErrConfirmUnavailable
	}
	return dc, nil
}

func (s *amqpSession) IsClosed() bool {
	return s.conn.IsClosed() || s.ch.IsClosed()
}

func (s *amqpSession) Close() error {
	var err error
	if !s.ch.IsClosed() {
		err = s.ch.Close()
	}
	if !s.conn.IsClosed() {
		if cerr := s.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
