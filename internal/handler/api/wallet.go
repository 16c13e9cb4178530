package api

import (
	"net/http"

	reqdto "arena-booking/internal/handler/dto/request"
	resdto "arena-booking/internal/handler/dto/response"
	"arena-booking/internal/handler/httperr"
	"arena-booking/internal/handler/middleware"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	cmds commands.WalletCommands
	q    queries.WalletQueries
}

func NewWalletHandler(cmds commands.WalletCommands, q queries.WalletQueries) *WalletHandler {
	return &WalletHandler{cmds: cmds, q: q}
}

// @Summary Wallet balance
// @Description Available balance and held amount of the caller's wallet
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WalletResponse
// @Failure 401 {object} httperr.Response
// @Router /wallet [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}
	view, err := h.q.Balance(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load wallet")
		return
	}
	res, err := resdto.FromWalletView(view)
	if err != nil {
		httperr.AbortInternal(c, errs.Wrap(err, "render wallet"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Wallet transactions
// @Description Ledger history of the caller's wallet, newest first
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.WalletTransactionPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /wallet/transactions [get]
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}
	var q reqdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}

	items, next, err := h.q.ListTransactions(c.Request.Context(), userID, &queries.Cursor{After: q.Cursor}, q.Limit)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list transactions")
		return
	}
	res, err := resdto.FromWalletTransactionPage(items, next)
	if err != nil {
		httperr.AbortInternal(c, errs.Wrap(err, "render transactions"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Request withdrawal
// @Description Hold funds for a payout that an admin approves or rejects
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.WithdrawalRequest true "Withdrawal request"
// @Success 201 {object} resdto.WalletTransactionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /wallet/withdrawals [post]
func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}
	var req reqdto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	view, err := h.cmds.RequestWithdrawal(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err, "Withdrawal request failed")
		return
	}
	respondTransaction(c, http.StatusCreated, view)
}

// @Summary Record manual transaction
// @Description Append a manual audit entry to the operator wallet for a reservation in one of the operator's arenas
// @Tags operator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ManualTransactionRequest true "Manual transaction"
// @Success 201 {object} resdto.WalletTransactionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /operator/transactions [post]
func (h *WalletHandler) RecordManualTransaction(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}
	var req reqdto.ManualTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	view, err := h.cmds.RecordManualTransaction(c.Request.Context(), operatorID, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err, "Manual transaction failed")
		return
	}
	respondTransaction(c, http.StatusCreated, view)
}

func respondTransaction(c *gin.Context, status int, view *queries.WalletTransactionView) {
	res, err := resdto.FromWalletTransactionView(view)
	if err != nil {
		httperr.AbortInternal(c, errs.Wrap(err, "render transaction"))
		return
	}
	c.JSON(status, res)
}
