package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facedesk/booking-api/internal/dto"
	"github.com/facedesk/booking-api/internal/middleware"
	"github.com/facedesk/booking-api/internal/service"
)

// BookingsHandler exposes interview room booking endpoints.
type BookingsHandler struct {
	service *service.BookingsService
}

// NewBookingsHandler creates a new handler instance.
func NewBookingsHandler(service *service.BookingsService) *BookingsHandler {
	return &BookingsHandler{service: service}
}

// Create handles POST /bookings requests.
func (h *BookingsHandler) Create(c echo.Context) error {
	var req dto.BookingRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.CreateBooking(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return ServiceError(c, err, "failed to create booking")
	}
	return Success(c, http.StatusCreated, "booking created", booking)
}

// List handles GET /bookings requests.
func (h *BookingsHandler) List(c echo.Context) error {
	bookings, err := h.service.ListBookings(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return ServiceError(c, err, "failed to list bookings")
	}
	return Success(c, http.StatusOK, "", bookings)
}
