package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/supabase-community/postgrest-go"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/entity"
	"github.com/facedesk/booking-api/internal/middleware"
	"github.com/facedesk/booking-api/internal/supabase"
)

type stubConnector struct{}

func (stubConnector) Connect(_ context.Context, session *auth.Session) *supabase.Connection {
	if session == nil {
		return &supabase.Connection{State: supabase.StateNoSession, Err: supabase.ErrNoSession}
	}
	return &supabase.Connection{
		State:  supabase.StateReady,
		Client: postgrest.NewClient("http://localhost:54321/rest/v1", "public", nil),
	}
}

type capturingBookingsRepo struct {
	created *entity.Booking
	err     error
}

func (r *capturingBookingsRepo) Create(_ context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = booking
	return booking, nil
}

func (r *capturingBookingsRepo) ListByUser(_ context.Context, userID string) ([]entity.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []entity.Booking{{UserID: userID, CandidateName: "Jane Doe"}}, nil
}

type capturingProfilesRepo struct {
	saved *entity.CompanyProfile
}

func (r *capturingProfilesRepo) Get(_ context.Context, userID string) (*entity.CompanyProfile, error) {
	if r.saved == nil {
		return nil, errors.New("not seeded")
	}
	return r.saved, nil
}

func (r *capturingProfilesRepo) Upsert(_ context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error) {
	r.saved = profile
	return profile, nil
}

func withSession(c echo.Context, role string) {
	session := &auth.Session{ID: "sess_1", UserID: "user_1", Role: role, Token: "token"}
	c.Set(middleware.ContextKeySession, session)
	c.Set(middleware.ContextKeyUserID, session.UserID)
	c.Set(middleware.ContextKeyUserRole, session.Role)
}
