//go:build unit

package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/outbox"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfirmation struct {
	acked bool
	err   error
}

func (c fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.acked, nil
}

type fakeSession struct {
	conf       fakeConfirmation
	publishErr error
	closed     bool
	sent       []amqp.Publishing
	keys       []string
}

func (s *fakeSession) Publish(_ context.Context, routingKey string, msg amqp.Publishing) (confirmation, error) {
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	s.keys = append(s.keys, routingKey)
	s.sent = append(s.sent, msg)
	return s.conf, nil
}

func (s *fakeSession) IsClosed() bool { return s.closed }

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func newTestRabbitPublisher(t *testing.T, sessions ...*fakeSession) (*RabbitPublisher, *int) {
	t.Helper()
	dials := 0
	p, err := newRabbitPublisher(func() (session, error) {
		if dials >= len(sessions) {
			return nil, errors.New("broker unreachable")
		}
		s := sessions[dials]
		dials++
		return s, nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return p, &dials
}

func confirmedMessage() outbox.Message {
	return outbox.Message{
		ID:          uuid.New(),
		Topic:       "reservation.confirmed",
		AggregateID: uuid.New(),
		Payload:     []byte(`{"status":"confirmed"}`),
		CreatedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestRabbitPublisher_Publish(t *testing.T) {
	t.Run("ack returns nil", func(t *testing.T) {
		sess := &fakeSession{conf: fakeConfirmation{acked: true}}
		p, _ := newTestRabbitPublisher(t, sess)
		msg := confirmedMessage()

		require.NoError(t, p.Publish(context.Background(), msg))

		require.Len(t, sess.sent, 1)
		assert.Equal(t, []string{"reservation.confirmed"}, sess.keys)
		assert.Equal(t, msg.ID.String(), sess.sent[0].MessageId)
		assert.Equal(t, amqp.Persistent, sess.sent[0].DeliveryMode)
		assert.Equal(t, msg.Payload, sess.sent[0].Body)
	})

	t.Run("nack is an error", func(t *testing.T) {
		sess := &fakeSession{conf: fakeConfirmation{acked: false}}
		p, _ := newTestRabbitPublisher(t, sess)

		err := p.Publish(context.Background(), confirmedMessage())
		require.Error(t, err)
		assert.True(t, errs.Is(err, ErrPublishNacked))
	})

	t.Run("confirm wait failure is an error", func(t *testing.T) {
		sess := &fakeSession{conf: fakeConfirmation{err: context.DeadlineExceeded}}
		p, _ := newTestRabbitPublisher(t, sess)

		err := p.Publish(context.Background(), confirmedMessage())
		require.Error(t, err)
		assert.True(t, errs.Is(err, context.DeadlineExceeded))
	})

	t.Run("publish failure is an error", func(t *testing.T) {
		sess := &fakeSession{publishErr: amqp.ErrClosed}
		p, _ := newTestRabbitPublisher(t, sess)

		err := p.Publish(context.Background(), confirmedMessage())
		require.Error(t, err)
		assert.True(t, errs.Is(err, amqp.ErrClosed))
	})

	t.Run("closed session is redialed", func(t *testing.T) {
		first := &fakeSession{closed: true}
		second := &fakeSession{conf: fakeConfirmation{acked: true}}
		p, dials := newTestRabbitPublisher(t, first, second)

		require.NoError(t, p.Publish(context.Background(), confirmedMessage()))
		assert.Equal(t, 2, *dials)
		assert.Empty(t, first.sent)
		assert.Len(t, second.sent, 1)
	})

	t.Run("redial failure is returned", func(t *testing.T) {
		first := &fakeSession{closed: true}
		p, _ := newTestRabbitPublisher(t, first)

		err := p.Publish(context.Background(), confirmedMessage())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker unreachable")
	})
}

func TestRabbitPublisher_Close(t *testing.T) {
	sess := &fakeSession{}
	p, _ := newTestRabbitPublisher(t, sess)

	require.NoError(t, p.Close())
	assert.True(t, sess.closed)
	require.NoError(t, p.Close())
}
