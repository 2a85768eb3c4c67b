package notification

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

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/notifications")
	{
		group.GET("", h.List)
		group.GET("/unread-count", h.UnreadCount)
		group.PUT("/:id/read", h.MarkAsRead)
		group.PUT("/mark-all-read", h.MarkAllAsRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	response.List(c, http.StatusOK, len(list), list)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
