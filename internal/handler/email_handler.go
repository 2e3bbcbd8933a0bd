package handler

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/facedesk/booking-api/internal/dto"
	"github.com/facedesk/booking-api/internal/email"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowMethods = "POST, OPTIONS"
)

// EmailSender delivers a single message and returns the provider id.
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) (string, error)
}

// EmailHandler exposes the transactional email endpoint used by the web client.
type EmailHandler struct {
	sender     EmailSender
	fromDomain string
}

// NewEmailHandler creates a new handler instance. A caller supplied from
// address is only honoured when its domain matches defaultFrom's domain.
func NewEmailHandler(sender EmailSender, defaultFrom string) *EmailHandler {
	return &EmailHandler{sender: sender, fromDomain: addressDomain(defaultFrom)}
}

// Preflight handles OPTIONS /send-email requests.
func (h *EmailHandler) Preflight(c echo.Context) error {
	setCORSHeaders(c)
	return c.String(http.StatusOK, "ok")
}

// Send handles POST /send-email requests.
func (h *EmailHandler) Send(c echo.Context) error {
	setCORSHeaders(c)

	var req dto.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(req.To) == 0 || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTML) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields: to, subject, html"})
	}
	if strings.TrimSpace(req.From) != "" && !h.allowedFrom(req.From) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "from address must use the " + h.fromDomain + " domain"})
	}

	id, err := h.sender.Send(c.Request().Context(), email.Message{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		From:    req.From,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.SendEmailResponse{Success: false, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.SendEmailResponse{
		Success:  true,
		Response: &dto.EmailReceipt{ID: id},
	})
}

func (h *EmailHandler) allowedFrom(from string) bool {
	if h.fromDomain == "" {
		return false
	}
	return addressDomain(from) == h.fromDomain
}

// addressDomain returns the lowercased domain of an RFC 5322 address, or "".
func addressDomain(raw string) string {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(addr.Address[at+1:])
}

func setCORSHeaders(c echo.Context) {
	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, corsAllowOrigin)
	header.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
	header.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
}
