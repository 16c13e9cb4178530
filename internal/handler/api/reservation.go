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
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var (
	errIdempotencyKeyRequired = errs.New("idempotency-key header required")
	errMissingActor           = errs.New("authenticated actor missing from context")
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Hold slots and funds for a new reservation. Settlement runs after the delay window.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed response for a completed idempotency key"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}

	key, err := idempotencyKey(c)
	if err != nil {
		abortBadRequest(c, err, "Valid Idempotency-Key header required")
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithCode(c, http.StatusBadRequest, err, "InvalidSlots", "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req.ToInput(), userID, key)
	if err != nil {
		abortWithUseCaseError(c, err, "Create reservation failed")
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get a reservation. Visible to its customer, the arena operator and admins.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation ID format")
		return
	}
	userID, uok := middleware.GetUserID(c)
	role, rok := middleware.GetUserRole(c)
	if !uok || !rok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List the current customer's reservations, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
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

	items, next, err := h.q.ListByCustomer(c.Request.Context(), userID, &queries.Cursor{After: q.Cursor}, q.Limit)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(items, next))
}

// @Summary Cancel reservation
// @Description Cancel a reservation in hold and refund the held funds
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation ID format")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortInternal(c, errMissingActor)
		return
	}

	view, err := h.cmds.CancelReservation(c.Request.Context(), id, userID)
	if err != nil {
		abortWithUseCaseError(c, err, "Cancel reservation failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "invalid idempotency key format")
	}
	return key, nil
}
