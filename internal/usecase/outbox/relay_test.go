//go:build unit

package outbox_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"arena-booking/internal/pkg/clock"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/outbox"
	"arena-booking/internal/usecase/shared"
	"arena-booking/tests/common/memuow"
	outboxmock "arena-booking/tests/mock/outbox"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var relayNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type RelayTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	publisher *outboxmock.MockPublisher
	store     *memuow.Store
	clock     *clock.MockClock
	cfg       config.OutboxConfig
	relay     *outbox.Relay
}

func (s *RelayTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.publisher = outboxmock.NewMockPublisher(s.ctrl)
	s.store = memuow.New()
	s.clock = clock.NewMockClock(relayNow)
	s.cfg = config.NewTestConfig().Outbox
	s.relay = outbox.NewRelay(s.store, s.publisher, s.clock, slog.New(slog.NewTextHandler(io.Discard, nil)), s.cfg)
}

func (s *RelayTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRelayTestSuite(t *testing.T) {
	suite.Run(t, new(RelayTestSuite))
}

func (s *RelayTestSuite) enqueue(topic string) uuid.UUID {
	aggregateID := uuid.New()
	err := s.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Enqueue(ctx, tx.DB(), topic, aggregateID, []byte(`{"status":"hold"}`), s.clock.Now())
	})
	s.Require().NoError(err)
	return aggregateID
}

func (s *RelayTestSuite) TestPublishesInOrderAndMarksPublished() {
	first := s.enqueue("reservation.created")
	second := s.enqueue("reservation.confirmed")

	gomock.InOrder(
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Cond(func(m outbox.Message) bool {
			return m.AggregateID == first && m.Topic == "reservation.created" && string(m.Payload) == `{"status":"hold"}`
		})).Return(nil),
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Cond(func(m outbox.Message) bool {
			return m.AggregateID == second && m.Topic == "reservation.confirmed"
		})).Return(nil),
	)

	s.clock.Add(time.Second)
	n, err := s.relay.PublishPending(context.Background())
	s.Require().NoError(err)
	s.Equal(2, n)

	for _, rec := range s.store.OutboxRecords() {
		s.Require().NotNil(rec.PublishedAt)
		s.Equal(relayNow.Add(time.Second), *rec.PublishedAt)
	}

	n, err = s.relay.PublishPending(context.Background())
	s.Require().NoError(err)
	s.Zero(n, "published events are not sent again")
}

func (s *RelayTestSuite) TestFailedPublishIsRetriedUntilMaxAttempts() {
	s.enqueue("reservation.created")
	s.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(errs.New("channel closed")).
		Times(int(s.cfg.MaxAttempts))

	for i := int32(1); i <= s.cfg.MaxAttempts; i++ {
		n, err := s.relay.PublishPending(context.Background())
		s.Require().NoError(err)
		s.Zero(n)

		recs := s.store.OutboxRecords()
		s.Require().Len(recs, 1)
		s.Equal(i, recs[0].Event.Attempts)
		s.Equal("channel closed", recs[0].LastError)
		s.Nil(recs[0].PublishedAt)
	}

	n, err := s.relay.PublishPending(context.Background())
	s.Require().NoError(err)
	s.Zero(n, "exhausted events are no longer claimed")
}

func (s *RelayTestSuite) TestOneFailureDoesNotBlockTheBatch() {
	broken := s.enqueue("reservation.created")
	healthy := s.enqueue("reservation.canceled")

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m outbox.Message) error {
		if m.AggregateID == broken {
			return errs.New("nack")
		}
		return nil
	}).Times(2)

	n, err := s.relay.PublishPending(context.Background())
	s.Require().NoError(err)
	s.Equal(1, n)

	for _, rec := range s.store.OutboxRecords() {
		switch rec.Event.AggregateID {
		case broken:
			s.Nil(rec.PublishedAt)
			s.Equal(int32(1), rec.Event.Attempts)
		case healthy:
			s.NotNil(rec.PublishedAt)
		}
	}
}

func (s *RelayTestSuite) TestStoreFailureRollsBackMarks() {
	s.enqueue("reservation.created")
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	s.store.BeforeCommit = func() error { return errs.New("commit failed") }
	_, err := s.relay.PublishPending(context.Background())
	s.Require().Error(err)
	s.store.BeforeCommit = nil

	recs := s.store.OutboxRecords()
	s.Require().Len(recs, 1)
	s.Nil(recs[0].PublishedAt, "mark rolled back, event is delivered again")

	n, err := s.relay.PublishPending(context.Background())
	s.Require().NoError(err)
	s.Equal(1, n)
}

func TestRelay_BatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := outboxmock.NewMockPublisher(ctrl)
	store := memuow.New()
	clk := clock.NewMockClock(relayNow)
	cfg := config.OutboxConfig{BatchSize: 2, MaxAttempts: 5}
	relay := outbox.NewRelay(store, publisher, clk, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)

	require.NoError(t, store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for i := 0; i < 3; i++ {
			if err := tx.Outbox().Enqueue(ctx, tx.DB(), "reservation.created", uuid.New(), []byte(`{}`), clk.Now()); err != nil {
				return err
			}
		}
		return nil
	}))
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	n, err := relay.PublishPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = relay.PublishPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
