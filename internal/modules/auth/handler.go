package auth

import (
	"errors"
	"net/http"

	"homeserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/send-otp", h.SendOTP)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.PUT("/update", h.UpdateDetails)
		authGroup.PUT("/updatepassword", h.UpdatePassword)
	}
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide name, email and password")
		return
	}

	user, err := h.service.RequestOTP(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyVerified):
			response.Error(c, http.StatusConflict, "This email is already registered")
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "Role must be customer or provider")
		default:
			response.Error(c, http.StatusInternalServerError, "Could not send verification code")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"email":   user.Email,
		"message": "Verification code sent",
	})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide email and the 6-digit code")
		return
	}

	user, token, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNoPendingOTP):
			response.Error(c, http.StatusBadRequest, "No verification pending for this email")
		case errors.Is(err, ErrEmailAlreadyVerified):
			response.Error(c, http.StatusConflict, "This email is already verified")
		case errors.Is(err, ErrExpiredOTP):
			response.Error(c, http.StatusBadRequest, "Verification code has expired")
		case errors.Is(err, ErrInvalidOTP):
			response.Error(c, http.StatusBadRequest, "Invalid verification code")
		default:
			response.Error(c, http.StatusInternalServerError, "Could not verify code")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  toPublic(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "Account is disabled")
		case errors.Is(err, ErrNotVerified):
			response.Error(c, http.StatusForbidden, "Please verify your email first")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  toPublic(user),
		"token": token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "User not found")
		return
	}
	response.Success(c, http.StatusOK, toPublic(user))
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.UpdateDetails(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(c, http.StatusOK, toPublic(user))
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please provide current and new password")
		return
	}

	token, err := h.service.UpdatePassword(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Could not update password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}
