package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facedesk/booking-api/internal/dto"
	"github.com/facedesk/booking-api/internal/middleware"
	"github.com/facedesk/booking-api/internal/service"
)

// CompanyProfileHandler exposes the customer's company profile.
type CompanyProfileHandler struct {
	service *service.CompanyProfileService
}

// NewCompanyProfileHandler creates a new handler instance.
func NewCompanyProfileHandler(service *service.CompanyProfileService) *CompanyProfileHandler {
	return &CompanyProfileHandler{service: service}
}

// Get handles GET /company-profile requests.
func (h *CompanyProfileHandler) Get(c echo.Context) error {
	profile, err := h.service.GetProfile(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return ServiceError(c, err, "failed to load company profile")
	}
	return Success(c, http.StatusOK, "", profile)
}

// Update handles PUT /company-profile requests.
func (h *CompanyProfileHandler) Update(c echo.Context) error {
	var req dto.CompanyProfileRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.SaveProfile(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return ServiceError(c, err, "failed to save company profile")
	}
	return Success(c, http.StatusOK, "company profile saved", profile)
}
