package review

import (
	"errors"
	"net/http"
	"strconv"

	"podstudio/internal/middleware"
	"podstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/studios/:id/reviews", h.ListReviews)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/studios/:id/reviews", middleware.CustomerOnly(), h.CreateReview)
}

func (h *Handler) ListReviews(c *gin.Context) {
	studioID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), studioID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) CreateReview(c *gin.Context) {
	studioID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rev, err := h.service.CreateReview(c.Request.Context(), c.GetInt64("user_id"), studioID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
		case errors.Is(err, ErrNotBooked):
			response.Error(c, http.StatusForbidden, "NOT_BOOKED", "Only customers who booked this studio can review it")
		case errors.Is(err, ErrAlreadyExists):
			response.Error(c, http.StatusConflict, "REVIEW_EXISTS", "You already reviewed this studio")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rev})
}
