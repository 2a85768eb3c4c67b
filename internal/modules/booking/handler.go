package booking

import (
	"errors"
	"net/http"
	"strconv"

	"homeserve/internal/middleware"
	"homeserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookingGroup := protected.Group("/bookings")
	{
		bookingGroup.POST("", h.Create)
		bookingGroup.GET("", h.List)
		bookingGroup.GET("/:id", h.Get)
		bookingGroup.PUT("/:id", h.Update)
		bookingGroup.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide service, scheduled date, time and address")
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	b, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch booking")
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update booking")
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	// Body is optional on the cancel path.
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.Cancel(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Not allowed for this booking")
	case errors.Is(err, ErrServiceUnavailable):
		response.Error(c, http.StatusBadRequest, "Service is not available")
	case errors.Is(err, ErrProviderNotFound):
		response.Error(c, http.StatusBadRequest, "Service provider not found")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "Provider is already booked for this slot")
	case errors.Is(err, ErrTerminalState):
		response.Error(c, http.StatusConflict, "Booking is already completed or cancelled")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "Scheduled date must be a valid future date (YYYY-MM-DD)")
	case errors.Is(err, ErrInvalidTime):
		response.Error(c, http.StatusBadRequest, "Scheduled time must be in HH:MM format")
	case errors.Is(err, ErrInvalidAddress):
		response.Error(c, http.StatusBadRequest, "Please provide a complete address with a 6-digit pincode")
	case errors.Is(err, ErrInvalidClient):
		response.Error(c, http.StatusBadRequest, "Please provide client name and a 10-digit phone")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "Invalid booking status")
	case errors.Is(err, ErrInvalidPayment):
		response.Error(c, http.StatusBadRequest, "Invalid payment details")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
