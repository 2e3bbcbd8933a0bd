package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/repository"
	"github.com/facedesk/booking-api/internal/service"
)

const janeDoeBody = `{"candidateName":"Jane Doe","candidateEmail":"jane@example.com","idType":"passport","idNumber":"X1234567","date":"2025-06-01","time":"10:00","duration":"2","termsAccepted":true}`

func newBookingsHandler(repo repository.BookingsRepository) *BookingsHandler {
	svc := service.NewBookingsService(stubConnector{}, nil, zap.NewNop(),
		service.WithBookingsRepository(func(*postgrest.Client) repository.BookingsRepository { return repo }))
	return NewBookingsHandler(svc)
}

func TestBookingsHandler_Create_Success(t *testing.T) {
	repo := &capturingBookingsRepo{}
	handler := newBookingsHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(janeDoeBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withSession(c, auth.RoleCustomer)

	if err := handler.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.created == nil || repo.created.UserID != "user_1" {
		t.Fatalf("expected booking stored for session user, got %+v", repo.created)
	}
}

func TestBookingsHandler_Create_ValidationErrors(t *testing.T) {
	handler := newBookingsHandler(&capturingBookingsRepo{})

	e := echo.New()
	body := strings.Replace(janeDoeBody, `"termsAccepted":true`, `"termsAccepted":false`, 1)
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withSession(c, auth.RoleCustomer)

	if err := handler.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Errors["termsAccepted"] != "You must accept the terms and conditions" {
		t.Fatalf("unexpected errors: %#v", payload.Errors)
	}
}

func TestBookingsHandler_Create_InvalidBody(t *testing.T) {
	handler := newBookingsHandler(&capturingBookingsRepo{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withSession(c, auth.RoleCustomer)

	if err := handler.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBookingsHandler_Create_Forbidden(t *testing.T) {
	handler := newBookingsHandler(&capturingBookingsRepo{err: repository.ErrForbidden})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(janeDoeBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withSession(c, auth.RoleCustomer)

	if err := handler.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestBookingsHandler_List(t *testing.T) {
	handler := newBookingsHandler(&capturingBookingsRepo{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/bookings", nil), rec)
	withSession(c, auth.RoleCustomer)

	if err := handler.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Jane Doe") {
		t.Fatalf("expected booking in body, got %s", rec.Body.String())
	}
}

func TestBookingsHandler_List_NoSession(t *testing.T) {
	handler := newBookingsHandler(&capturingBookingsRepo{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/bookings", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
