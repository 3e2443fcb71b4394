package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"podstudio/internal/middleware"
	"podstudio/internal/pkg/response"
	"podstudio/internal/pkg/validator"
	"podstudio/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/studios", h.ListStudios)
	rg.GET("/studios/:id", h.GetStudio)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/studios/:id/slots", h.GetAvailableSlots)
	rg.GET("/studios/mine", middleware.OwnerOnly(), h.ListOwnStudios)
	rg.POST("/studios", middleware.OwnerOnly(), h.CreateStudio)
	rg.PUT("/studios/:id", middleware.OwnerOnly(), h.UpdateStudio)
	rg.DELETE("/studios/:id", middleware.OwnerOnly(), h.DeleteStudio)
	rg.PUT("/studios/:id/availability", middleware.OwnerOnly(), h.SetAvailability)
}

func (h *Handler) ListStudios(c *gin.Context) {
	var f repository.StudioFilters
	f.City = c.Query("city")

	f.Limit = 20
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	f.Offset = 0
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	studios, total, err := h.service.ListStudios(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list studios")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"studios": studios,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (h *Handler) GetStudio(c *gin.Context) {
	studioID, ok := parseID(c)
	if !ok {
		return
	}

	studio, err := h.service.GetStudio(c.Request.Context(), studioID, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load studio")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"studio": studio})
}

func (h *Handler) ListOwnStudios(c *gin.Context) {
	studios, err := h.service.ListOwnStudios(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list studios")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"studios": studios})
}

func (h *Handler) CreateStudio(c *gin.Context) {
	var req StudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	studio, err := h.service.CreateStudio(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.serviceError(c, err, "Failed to create studio")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"studio": studio})
}

func (h *Handler) UpdateStudio(c *gin.Context) {
	studioID, ok := parseID(c)
	if !ok {
		return
	}

	var req StudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	studio, err := h.service.UpdateStudio(c.Request.Context(), c.GetInt64("user_id"), studioID, req)
	if err != nil {
		h.serviceError(c, err, "Failed to update studio")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"studio": studio})
}

func (h *Handler) DeleteStudio(c *gin.Context) {
	studioID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteStudio(c.Request.Context(), c.GetInt64("user_id"), studioID); err != nil {
		h.serviceError(c, err, "Failed to delete studio")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Studio deleted"})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	studioID, ok := parseID(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability payload", errs)
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), c.GetInt64("user_id"), studioID, req); err != nil {
		h.serviceError(c, err, "Failed to set availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Availability updated"})
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	studioID, ok := parseID(c)
	if !ok {
		return
	}

	days, err := h.service.GetAvailableSlots(c.Request.Context(), studioID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availability": days})
}

func (h *Handler) serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this studio")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid studio payload")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return 0, false
	}
	return id, true
}
