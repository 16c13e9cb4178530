//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/user"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/handler/api"
	resdto "arena-booking/internal/handler/dto/response"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/ledger"
	"arena-booking/internal/usecase/queries"
	"arena-booking/tests/common/httptest"
	"arena-booking/tests/common/testutil"
	commandsmock "arena-booking/tests/mock/commands"
	queriesmock "arena-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WalletHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWalletCommands
	mockQueries  *queriesmock.MockWalletQueries
	userID       uuid.UUID
	role         user.Role
}

func (s *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWalletCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockWalletQueries(s.mockCtrl)
	h := api.NewWalletHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.role = user.RoleCustomer
	auth := stubAuth(&s.userID, &s.role)

	s.router.GET("/wallet", auth, h.Balance)
	s.router.GET("/wallet/transactions", auth, h.ListTransactions)
	s.router.POST("/wallet/withdrawals", auth, h.RequestWithdrawal)
	s.router.POST("/operator/transactions", auth, h.RecordManualTransaction)
}

func (s *WalletHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWalletHandlerSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}

func sampleTransaction(typ, stage, amount string) *queries.WalletTransactionView {
	return &queries.WalletTransactionView{
		ID:        uuid.New(),
		Amount:    decimal.RequireFromString(amount),
		Type:      typ,
		Stage:     stage,
		Note:      "",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *WalletHandlerTestSuite) TestBalance() {
	s.Run("success: amounts render at two decimals", func() {
		s.mockQueries.EXPECT().Balance(gomock.Any(), s.userID).Return(&queries.WalletView{
			ID:               uuid.New(),
			OwnerID:          s.userID,
			AvailableBalance: decimal.RequireFromString("299.5"),
			HeldAmount:       decimal.NewFromInt(200),
			UpdatedAt:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet", nil, "bearer-token")
		var res resdto.WalletResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(s.userID, res.OwnerID)
		s.Equal("299.50", res.AvailableBalance)
		s.Equal("200.00", res.HeldAmount)
	})

	s.Run("error: 404 without a wallet", func() {
		s.mockQueries.EXPECT().Balance(gomock.Any(), s.userID).Return(nil, ledger.ErrWalletNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NotFound")
	})
}

func (s *WalletHandlerTestSuite) TestListTransactions() {
	ref := uuid.New()
	tx := sampleTransaction("payment", "settled", "200")
	tx.ReferenceID = &ref

	s.mockQueries.EXPECT().
		ListTransactions(gomock.Any(), s.userID, &queries.Cursor{After: ""}, 0).
		Return([]*queries.WalletTransactionView{tx}, nil, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet/transactions", nil, "bearer-token")
	var res resdto.WalletTransactionPageResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Require().Len(res.Items, 1)
	s.Equal("200.00", res.Items[0].Amount)
	s.Equal("payment", res.Items[0].Type)
	s.Require().NotNil(res.Items[0].ReferenceID)
	s.Equal(ref, *res.Items[0].ReferenceID)
	s.Empty(res.NextCursor)
}

func (s *WalletHandlerTestSuite) TestRequestWithdrawal() {
	url := "/wallet/withdrawals"
	body := map[string]any{"amount": "40", "note": "payout"}

	s.Run("success: 201 with the pending entry", func() {
		s.mockCommands.EXPECT().
			RequestWithdrawal(gomock.Any(), s.userID, commands.WithdrawalInput{Amount: "40", Note: "payout"}).
			Return(sampleTransaction("withdrawal", "pending", "40"), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		var res resdto.WalletTransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("pending", res.Stage)
		s.Equal("40.00", res.Amount)
	})

	s.Run("error: 400 without amount", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), body, testutil.Field("amount", nil)), "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "InvalidRequest")
	})

	s.Run("error: maps ledger errors", func() {
		testCases := []struct {
			name         string
			err          error
			expectStatus int
			expectCode   string
		}{
			{"insufficient funds", wallet.ErrInsufficientFunds, http.StatusUnprocessableEntity, "InsufficientFunds"},
			{"bad amount", money.ErrInvalidAmount, http.StatusBadRequest, "InvalidAmount"},
			{"no wallet", errs.Wrap(ledger.ErrWalletNotFound, "lock wallet"), http.StatusNotFound, "NotFound"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RequestWithdrawal(gomock.Any(), s.userID, gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectStatus, tc.expectCode)
			})
		}
	})
}

func (s *WalletHandlerTestSuite) TestRecordManualTransaction() {
	url := "/operator/transactions"
	resID := uuid.New()
	body := map[string]any{"reservationId": resID.String(), "amount": "15", "stage": "processed", "note": "paid on site"}

	s.Run("success: 201 for the reservation operator", func() {
		s.role = user.RoleOperator
		defer func() { s.role = user.RoleCustomer }()

		tx := sampleTransaction("manual", "processed", "15")
		tx.ReferenceID = &resID
		s.mockCommands.EXPECT().
			RecordManualTransaction(gomock.Any(), s.userID, commands.ManualTransactionInput{
				ReservationID: resID, Amount: "15", Stage: "processed", Note: "paid on site",
			}).
			Return(tx, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		var res resdto.WalletTransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("manual", res.Type)
	})

	s.Run("error: 400 on an open stage", func() {
		for _, stage := range []string{"pending", "settled", "instant", ""} {
			s.Run("stage="+stage, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), body, testutil.Field("stage", stage)), "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "InvalidRequest")
			})
		}
	})

	s.Run("error: 403 for another operator's reservation", func() {
		s.mockCommands.EXPECT().RecordManualTransaction(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.Mark(commands.ErrNotReservationOperator, reservation.ErrUnauthorized))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "Unauthorized")
	})
}
