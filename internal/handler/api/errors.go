package api

import (
	"net/http"

	"arena-booking/internal/domain/arena"
	"arena-booking/internal/domain/calendar"
	"arena-booking/internal/domain/reservation"
	"arena-booking/internal/domain/wallet"
	"arena-booking/internal/handler/httperr"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"
	"arena-booking/internal/usecase/availability"
	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/ledger"
	"arena-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	// validation
	{reservation.ErrInvalidSlots, http.StatusBadRequest, "InvalidSlots", "Invalid slots"},
	{calendar.ErrInvalidDate, http.StatusBadRequest, "InvalidSlots", "Invalid date"},
	{reservation.ErrUnsupportedPayment, http.StatusBadRequest, "UnsupportedPayment", "Unsupported payment method"},
	{money.ErrInvalidAmount, http.StatusBadRequest, "InvalidAmount", "Invalid amount"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "InvalidCursor", "Invalid cursor"},
	{queries.ErrInvalidJobStatus, http.StatusBadRequest, "InvalidStatus", "Invalid settlement job status"},
	{commands.ErrExternalRefRequired, http.StatusBadRequest, "ExternalRefRequired", "External reference is required"},
	{commands.ErrInvalidManualStage, http.StatusBadRequest, "InvalidStage", "Invalid manual transaction stage"},

	// conflict
	{commands.ErrDuplicateSettlement, http.StatusConflict, "DuplicateSettlement", "Reservation was already settled"},
	{commands.ErrDuplicateReservation, http.StatusConflict, "DuplicateReservation", "Idempotency key was used for a different request"},
	{commands.ErrIdempotencyInProgress, http.StatusConflict, "IdempotencyInProgress", "Request with this idempotency key is being processed"},
	{commands.ErrExternalRefConflict, http.StatusConflict, "ExternalRefConflict", "External reference already used"},
	{commands.ErrJobNotFailed, http.StatusConflict, "JobNotFailed", "Only failed settlement jobs can be retried"},
	{commands.ErrWithdrawalNotPending, http.StatusConflict, "WithdrawalNotPending", "Withdrawal is not pending"},

	// insufficient
	{wallet.ErrInsufficientFunds, http.StatusUnprocessableEntity, "InsufficientFunds", "Insufficient funds"},
	{wallet.ErrInsufficientHeld, http.StatusUnprocessableEntity, "InsufficientHeld", "Insufficient held amount"},
	{arena.ErrArenaNotActive, http.StatusUnprocessableEntity, "ArenaNotActive", "Arena is not active"},

	// state mismatch
	{reservation.ErrAlreadyCanceled, http.StatusConflict, "AlreadyCanceled", "Reservation is already canceled"},
	{reservation.ErrNotInHold, http.StatusConflict, "NotInHold", "Reservation is not in hold"},
	{commands.ErrNoHeldTransaction, http.StatusConflict, "NoHeldTransaction", "Reservation has no held transaction"},
	{commands.ErrAlreadyProcessed, http.StatusConflict, "AlreadyProcessed", "Reservation funds were already processed"},

	// authorization
	{reservation.ErrUnauthorized, http.StatusForbidden, "Unauthorized", "Not allowed to act on this reservation"},

	// not found
	{commands.ErrReservationNotFound, http.StatusNotFound, "NotFound", "Reservation not found"},
	{queries.ErrReservationNotFound, http.StatusNotFound, "NotFound", "Reservation not found"},
	{queries.ErrSettlementJobNotFound, http.StatusNotFound, "NotFound", "Settlement job not found"},
	{commands.ErrUserNotFound, http.StatusNotFound, "NotFound", "User not found"},
	{commands.ErrWithdrawalNotFound, http.StatusNotFound, "NotFound", "Withdrawal not found"},
	{ledger.ErrWalletNotFound, http.StatusNotFound, "NotFound", "Wallet not found"},
}

// abortWithUseCaseError maps use case errors to the response taxonomy.
// Anything unrecognised is a 500 with the fallback message.
func abortWithUseCaseError(c *gin.Context, err error, fallback string) {
	var booked *availability.SlotsAlreadyBookedError
	if errs.As(err, &booked) {
		httperr.AbortWithCode(c, http.StatusConflict, err, "SlotsAlreadyBooked", "Slots already booked", gin.H{
			"date":      booked.Date.String(),
			"conflicts": slotConflicts(booked),
		})
		return
	}
	if errs.Is(err, availability.ErrSlotsAlreadyBooked) {
		httperr.AbortWithCode(c, http.StatusConflict, err, "SlotsAlreadyBooked", "Slots already booked", nil)
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithCode(c, m.status, err, m.code, m.message, nil)
			return
		}
	}
	httperr.AbortWithCode(c, http.StatusInternalServerError, err, "Internal", fallback, nil)
}

func slotConflicts(e *availability.SlotsAlreadyBookedError) []gin.H {
	out := make([]gin.H, len(e.Conflicts))
	for i, k := range e.Conflicts {
		out[i] = gin.H{"courtId": k.CourtID.String(), "hour": k.Hour}
	}
	return out
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithCode(c, http.StatusBadRequest, err, "InvalidRequest", msg, nil)
}
