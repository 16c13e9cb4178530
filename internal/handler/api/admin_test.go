//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/handler/api"
	resdto "arena-booking/internal/handler/dto/response"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/queries"
	"arena-booking/tests/common/httptest"
	"arena-booking/tests/common/testutil"
	commandsmock "arena-booking/tests/mock/commands"
	queriesmock "arena-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockWallet *commandsmock.MockWalletCommands
	mockJobCmd *commandsmock.MockSettlementJobCommands
	mockJobs   *queriesmock.MockSettlementJobQueries
	userID     uuid.UUID
	role       user.Role
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockWallet = commandsmock.NewMockWalletCommands(s.mockCtrl)
	s.mockJobCmd = commandsmock.NewMockSettlementJobCommands(s.mockCtrl)
	s.mockJobs = queriesmock.NewMockSettlementJobQueries(s.mockCtrl)
	h := api.NewAdminHandler(s.mockWallet, s.mockJobCmd, s.mockJobs)

	s.userID = uuid.New()
	s.role = user.RoleAdmin
	auth := stubAuth(&s.userID, &s.role)

	s.router.POST("/admin/deposits", auth, h.RecordDeposit)
	s.router.POST("/admin/withdrawals/:id/approve", auth, h.ApproveWithdrawal)
	s.router.POST("/admin/withdrawals/:id/reject", auth, h.RejectWithdrawal)
	s.router.GET("/admin/settlement-jobs", auth, h.ListSettlementJobs)
	s.router.POST("/admin/settlement-jobs/:id/retry", auth, h.RetrySettlementJob)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestRecordDeposit() {
	url := "/admin/deposits"
	customer := uuid.New()
	body := map[string]any{"userId": customer.String(), "amount": "250.50", "externalRef": "psp-001"}
	want := commands.DepositInput{UserID: customer, Amount: "250.50", ExternalRef: "psp-001"}

	s.Run("success: 201 for a new reference", func() {
		s.mockWallet.EXPECT().CreditExternalFunds(gomock.Any(), want).
			Return(&commands.DepositResult{Transaction: sampleTransaction("deposit", "instant", "250.50")}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		var res resdto.WalletTransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("250.50", res.Amount)
		s.Equal("instant", res.Stage)
	})

	s.Run("success: 200 for a replayed reference", func() {
		s.mockWallet.EXPECT().CreditExternalFunds(gomock.Any(), want).
			Return(&commands.DepositResult{Transaction: sampleTransaction("deposit", "instant", "250.50"), IsReplayed: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on missing fields", func() {
		for _, field := range []string{"userId", "amount", "externalRef"} {
			s.Run(field, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), body, testutil.Field(field, nil)), "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "InvalidRequest")
			})
		}
	})

	s.Run("error: maps deposit errors", func() {
		testCases := []struct {
			name         string
			err          error
			expectStatus int
			expectCode   string
		}{
			{"reference reused", commands.ErrExternalRefConflict, http.StatusConflict, "ExternalRefConflict"},
			{"unknown user", commands.ErrUserNotFound, http.StatusNotFound, "NotFound"},
			{"blank reference", commands.ErrExternalRefRequired, http.StatusBadRequest, "ExternalRefRequired"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockWallet.EXPECT().CreditExternalFunds(gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectStatus, tc.expectCode)
			})
		}
	})
}

func (s *AdminHandlerTestSuite) TestCloseWithdrawal() {
	id := uuid.New()

	s.Run("approve: 204", func() {
		s.mockWallet.EXPECT().ApproveWithdrawal(gomock.Any(), id).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/withdrawals/"+id.String()+"/approve", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("reject: 204", func() {
		s.mockWallet.EXPECT().RejectWithdrawal(gomock.Any(), id).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/withdrawals/"+id.String()+"/reject", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when already closed", func() {
		s.mockWallet.EXPECT().ApproveWithdrawal(gomock.Any(), id).Return(commands.ErrWithdrawalNotPending)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/withdrawals/"+id.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "WithdrawalNotPending")
	})

	s.Run("error: 404 for an unknown withdrawal", func() {
		s.mockWallet.EXPECT().RejectWithdrawal(gomock.Any(), id).Return(commands.ErrWithdrawalNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/withdrawals/"+id.String()+"/reject", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NotFound")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/withdrawals/42/approve", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "InvalidRequest")
	})
}

func (s *AdminHandlerTestSuite) TestSettlementJobs() {
	lastError := "wallet of platform: insufficient held amount"
	job := &queries.SettlementJobView{
		ID:            "settle:" + uuid.NewString(),
		ReservationID: uuid.New(),
		RunAt:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Attempts:      3,
		MaxAttempts:   3,
		Status:        "failed",
		LastError:     &lastError,
		CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 2, 0, 20, 0, 0, time.UTC),
	}

	s.Run("list: status and limit pass through", func() {
		s.mockJobs.EXPECT().ListByStatus(gomock.Any(), "failed", 20).Return([]*queries.SettlementJobView{job}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/settlement-jobs?status=failed&limit=20", nil, "bearer-token")
		var res []resdto.SettlementJobResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal(job.ID, res[0].ID)
		s.Equal(int32(3), res[0].Attempts)
		s.Require().NotNil(res[0].LastError)
		s.Equal(lastError, *res[0].LastError)
	})

	s.Run("list: 400 on unknown status", func() {
		s.mockJobs.EXPECT().ListByStatus(gomock.Any(), "stuck", 0).Return(nil, queries.ErrInvalidJobStatus)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/settlement-jobs?status=stuck", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "InvalidStatus")
	})

	s.Run("retry: returns the requeued job", func() {
		requeued := *job
		requeued.Status = "queued"
		requeued.Attempts = 0
		requeued.LastError = nil
		s.mockJobCmd.EXPECT().RequeueSettlementJob(gomock.Any(), job.ID).Return(&requeued, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/settlement-jobs/"+job.ID+"/retry", nil, "bearer-token")
		var res resdto.SettlementJobResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("queued", res.Status)
		s.Nil(res.LastError)
	})

	s.Run("retry: 409 unless failed", func() {
		s.mockJobCmd.EXPECT().RequeueSettlementJob(gomock.Any(), job.ID).Return(nil, commands.ErrJobNotFailed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/settlement-jobs/"+job.ID+"/retry", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "JobNotFailed")
	})

	s.Run("retry: 404 for an unknown job", func() {
		s.mockJobCmd.EXPECT().RequeueSettlementJob(gomock.Any(), "settle:missing").Return(nil, queries.ErrSettlementJobNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/settlement-jobs/settle:missing/retry", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NotFound")
	})
}
