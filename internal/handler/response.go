package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facedesk/booking-api/internal/repository"
	"github.com/facedesk/booking-api/internal/supabase"
	"github.com/facedesk/booking-api/internal/validation"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
	}
	return c.JSON(status, payload)
}

// ValidationFailed sends a 400 response listing the message of every invalid field.
func ValidationFailed(c echo.Context, errs validation.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Message: "validation failed",
		Errors:  errs,
	})
}

// ServiceError maps service and data-access errors to an HTTP response.
// fallback is used as the message for unexpected failures.
func ServiceError(c echo.Context, err error, fallback string) error {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return ValidationFailed(c, fieldErrs)
	case errors.Is(err, supabase.ErrNoSession):
		return Error(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, supabase.ErrTokenUnavailable):
		return Error(c, http.StatusBadGateway, "database session unavailable")
	case errors.Is(err, repository.ErrForbidden):
		return Error(c, http.StatusForbidden, "not allowed to access this resource")
	case errors.Is(err, repository.ErrConflict):
		return Error(c, http.StatusConflict, "record already exists")
	default:
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
