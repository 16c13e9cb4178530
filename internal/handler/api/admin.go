package api

import (
	"context"
	"net/http"

	reqdto "arena-booking/internal/handler/dto/request"
	resdto "arena-booking/internal/handler/dto/response"
	"arena-booking/internal/handler/httperr"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	wallets commands.WalletCommands
	jobCmds commands.SettlementJobCommands
	jobs    queries.SettlementJobQueries
}

func NewAdminHandler(wallets commands.WalletCommands, jobCmds commands.SettlementJobCommands, jobs queries.SettlementJobQueries) *AdminHandler {
	return &AdminHandler{wallets: wallets, jobCmds: jobCmds, jobs: jobs}
}

// @Summary Record deposit
// @Description Credit funds received by the payment gateway. Idempotent on externalRef.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DepositRequest true "Deposit"
// @Success 201 {object} resdto.WalletTransactionResponse
// @Success 200 {object} resdto.WalletTransactionResponse "Deposit already recorded"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/deposits [post]
func (h *AdminHandler) RecordDeposit(c *gin.Context) {
	var req reqdto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.wallets.CreditExternalFunds(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err, "Deposit failed")
		return
	}
	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	respondTransaction(c, status, result.Transaction)
}

// @Summary Approve withdrawal
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Withdrawal transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	h.closeWithdrawal(c, h.wallets.ApproveWithdrawal)
}

// @Summary Reject withdrawal
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Withdrawal transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	h.closeWithdrawal(c, h.wallets.RejectWithdrawal)
}

func (h *AdminHandler) closeWithdrawal(c *gin.Context, apply func(context.Context, uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid withdrawal ID format")
		return
	}
	if err := apply(c.Request.Context(), id); err != nil {
		abortWithUseCaseError(c, err, "Withdrawal update failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List settlement jobs
// @Description Jobs by status; defaults to failed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "queued, running, done or failed"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {array} resdto.SettlementJobResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/settlement-jobs [get]
func (h *AdminHandler) ListSettlementJobs(c *gin.Context) {
	var q reqdto.SettlementJobQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	jobs, err := h.jobs.ListByStatus(c.Request.Context(), q.Status, q.Limit)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list settlement jobs")
		return
	}
	res, err := resdto.FromSettlementJobViews(jobs)
	if err != nil {
		httperr.AbortInternal(c, errs.Wrap(err, "render settlement jobs"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Retry settlement job
// @Description Requeue a failed job with its attempts reset
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Settlement job ID"
// @Success 200 {object} resdto.SettlementJobResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/settlement-jobs/{id}/retry [post]
func (h *AdminHandler) RetrySettlementJob(c *gin.Context) {
	job, err := h.jobCmds.RequeueSettlementJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to retry settlement job")
		return
	}
	res, err := resdto.FromSettlementJobView(job)
	if err != nil {
		httperr.AbortInternal(c, errs.Wrap(err, "render settlement job"))
		return
	}
	c.JSON(http.StatusOK, res)
}
