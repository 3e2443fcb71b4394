package booking

import (
	"errors"
	"net/http"

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
	rg.POST("/bookings", middleware.CustomerOnly(), h.CreateBooking)
	rg.GET("/bookings/my", middleware.CustomerOnly(), h.GetMyBookings)
	rg.GET("/bookings/owner", middleware.OwnerOnly(), h.GetOwnerBookings)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.CustomerID = c.GetInt64("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStudioNotFound):
			response.Error(c, http.StatusNotFound, "STUDIO_NOT_FOUND", "Studio not found or not approved")
		case errors.Is(err, ErrInvalidPackage):
			response.Error(c, http.StatusBadRequest, "INVALID_PACKAGE", "Invalid package selection")
		case errors.Is(err, ErrInvalidAddon):
			response.Error(c, http.StatusBadRequest, "INVALID_ADDON", err.Error())
		case errors.Is(err, ErrNoAvailability):
			response.Error(c, http.StatusBadRequest, "NO_AVAILABILITY", "No availability for this date")
		case errors.Is(err, ErrSlotsUnavailable):
			response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "One or more of the selected hours are not available")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Booking created",
		"booking": b,
	})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	rows, err := h.service.GetMyBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) GetOwnerBookings(c *gin.Context) {
	rows, err := h.service.GetOwnerBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}
