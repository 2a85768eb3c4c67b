package review

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

// RegisterPublicRoutes exposes the read side: anyone can browse the
// reviews of a service.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/services/:id/reviews", h.ListByService)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/reviews")
	{
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide a booking and a rating from 1 to 5")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "You can only review your own bookings")
		case errors.Is(err, ErrNotCompleted):
			response.Error(c, http.StatusBadRequest, "You can only review completed bookings")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusConflict, "This booking has already been reviewed")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) ListByService(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	list, err := h.service.ListByService(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rv, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update review")
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.writeError(c, err, "Failed to delete review")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Review not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Not allowed for this review")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
