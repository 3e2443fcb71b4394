package admin

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

// RegisterRoutes expects rg to already carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin", middleware.AdminOnly())
	{
		adminGroup.GET("/studios/pending", h.ListPendingStudios)
		adminGroup.PUT("/studios/:id/approve", h.ApproveStudio)
		adminGroup.PUT("/studios/:id/reject", h.RejectStudio)
		adminGroup.GET("/bookings", h.ListBookings)
		adminGroup.DELETE("/bookings/:id", h.DeleteBooking)
	}
}

func (h *Handler) ListPendingStudios(c *gin.Context) {
	studios, err := h.service.ListPendingStudios(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pending studios")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"studios": studios})
}

func (h *Handler) ApproveStudio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.ApproveStudio(c.Request.Context(), id); err != nil {
		h.studioError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Studio approved"})
}

func (h *Handler) RejectStudio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.RejectStudio(c.Request.Context(), id); err != nil {
		h.studioError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Studio rejected"})
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking deleted, hours restored"})
}

func (h *Handler) studioError(c *gin.Context, err error) {
	if errors.Is(err, ErrStudioNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Moderation action failed")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
