//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockReservationWriteQueries) CreateReservationExtra(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationExtraParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockReservationWriteQueries) GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Reservations), args.Error(1)
}

func (m *MockReservationWriteQueries) ListSlotsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationSlots, error) {
	args := m.Called(ctx, db, reservationID)
	return args.Get(0).([]sqlc.ReservationSlots), args.Error(1)
}

func (m *MockReservationWriteQueries) ListReservationExtras(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationExtras, error) {
	args := m.Called(ctx, db, reservationID)
	return args.Get(0).([]sqlc.ReservationExtras), args.Error(1)
}

func (m *MockReservationWriteQueries) UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) CancelReservationExtras(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationExtrasParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestReservationRepository_FindForUpdate(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		setupMock func(m *MockReservationWriteQueries)
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name: "not found",
			setupMock: func(m *MockReservationWriteQueries) {
				m.On("GetReservationForUpdate", mock.Anything, mock.Anything, id).Return(sqlc.Reservations{}, pgx.ErrNoRows)
			},
			wantKind: infra.KindNotFound,
		},
		{
			name: "lock failure",
			setupMock: func(m *MockReservationWriteQueries) {
				m.On("GetReservationForUpdate", mock.Anything, mock.Anything, id).Return(sqlc.Reservations{}, assert.AnError)
			},
			wantKind: infra.KindDBFailure,
		},
		{
			name: "slot load failure",
			setupMock: func(m *MockReservationWriteQueries) {
				m.On("GetReservationForUpdate", mock.Anything, mock.Anything, id).Return(sqlc.Reservations{ID: id}, nil)
				m.On("ListSlotsByReservation", mock.Anything, mock.Anything, id).Return([]sqlc.ReservationSlots(nil), assert.AnError)
			},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockReservationWriteQueries)
			tt.setupMock(m)

			repo := NewReservationRepository(m)
			res, err := repo.FindForUpdate(context.Background(), nopDBTX{}, id)

			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, infra.IsKind(err, tt.wantKind))
			m.AssertExpectations(t)
		})
	}
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	res := newConfirmedReservation(t)

	tests := []struct {
		name      string
		rows      int64
		mockError error
		wantErr   bool
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", rows: 1},
		{name: "status changed concurrently", rows: 0, wantErr: true, wantKind: infra.KindNotFound},
		{name: "database error", mockError: &pgconn.PgError{Code: "40001"}, wantErr: true, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockReservationWriteQueries)
			m.On("UpdateReservationStatus", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateReservationStatusParams) bool {
				return p.ID == res.ID() &&
					p.Status == reservation.StatusConfirmed.String() &&
					p.ExpectedStatus == reservation.StatusHold.String() &&
					p.ConfirmedAt.Valid && !p.CanceledAt.Valid
			})).Return(tt.rows, tt.mockError)

			repo := NewReservationRepository(m)
			err := repo.UpdateStatus(context.Background(), nopDBTX{}, res, reservation.StatusHold)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestReservationRepository_Create_WritesExtras(t *testing.T) {
	res := newConfirmedReservation(t)

	m := new(MockReservationWriteQueries)
	m.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateReservationParams) bool {
		return p.ID == res.ID() && p.TotalAmount.Equal(res.Price().Total)
	})).Return(nil)
	m.On("CreateReservationExtra", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(len(res.Extras()))

	repo := NewReservationRepository(m)
	require.NoError(t, repo.Create(context.Background(), nopDBTX{}, res))
	m.AssertExpectations(t)
}

func TestReservationRepository_Create_ForeignKey(t *testing.T) {
	res := newConfirmedReservation(t)

	m := new(MockReservationWriteQueries)
	m.On("CreateReservation", mock.Anything, mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23503"})

	repo := NewReservationRepository(m)
	err := repo.Create(context.Background(), nopDBTX{}, res)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	m.AssertNotCalled(t, "CreateReservationExtra", mock.Anything, mock.Anything, mock.Anything)
}

func newConfirmedReservation(t *testing.T) *reservation.Reservation {
	t.Helper()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	date, err := calendar.Parse("2026-03-02")
	require.NoError(t, err)

	res, err := reservation.NewReservation(reservation.NewParams{
		CustomerID: uuid.New(),
		ArenaID:    uuid.New(),
		Date:       date,
		Slots:      []reservation.SlotKey{{CourtID: uuid.New(), Hour: 10}},
		Extras: []reservation.Extra{{
			ID:         uuid.New(),
			ExtraID:    uuid.New(),
			Name:       "racket",
			Quantity:   2,
			UnitPrice:  decimal.RequireFromString("12.50"),
			TotalPrice: decimal.RequireFromString("25.00"),
		}},
		Price: reservation.PriceBreakdown{
			Base:          decimal.NewFromInt(100),
			Extras:        decimal.NewFromInt(25),
			Total:         decimal.NewFromInt(125),
			OperatorShare: decimal.RequireFromString("112.50"),
			PlatformFee:   decimal.RequireFromString("12.50"),
		},
		PaymentMethod: reservation.PaymentMethodWallet,
	}, now)
	require.NoError(t, err)
	require.NoError(t, res.Confirm(now.Add(time.Minute)))
	return res
}
