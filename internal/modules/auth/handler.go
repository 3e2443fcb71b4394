package auth

import (
	"errors"
	"net/http"

	"podstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/verify", h.Verify)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserPublic{
			ID:    user.ID,
			Role:  string(user.Role),
			Name:  user.Name,
			Email: user.Email,
		},
		"message": "Verification code sent",
	})
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Verify(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrInvalidOTP):
			response.Error(c, http.StatusBadRequest, "INVALID_CODE", "Invalid or expired code")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Verification failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Email verified"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrNotVerified):
			response.Error(c, http.StatusForbidden, "NOT_VERIFIED", "Email not verified")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:    res.User.ID,
			Role:  string(res.User.Role),
			Name:  res.User.Name,
			Email: res.User.Email,
		},
		"token": res.Token,
	})
}
