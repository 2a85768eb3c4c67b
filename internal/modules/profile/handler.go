package profile

import (
	"errors"
	"net/http"
	"strconv"

	"homeserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the public profile card of any user.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/profile/user/:id", h.GetByUserID)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/profile")
	{
		group.GET("/me", h.GetMine)
		group.PUT("/me", h.UpdateMine)
	}
}

func (h *Handler) GetMine(c *gin.Context) {
	p, err := h.service.GetByUserID(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateMine(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrInvalidField):
			response.Error(c, http.StatusBadRequest, "Invalid profile field")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetByUserID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	p, err := h.service.GetByUserID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	// Public card: contact details are not exposed to strangers.
	p.Email = ""
	p.Phone = ""
	response.Success(c, http.StatusOK, p)
}
