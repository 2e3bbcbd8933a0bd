package service

import (
	"context"
	"errors"

	"github.com/supabase-community/postgrest-go"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/email"
	"github.com/facedesk/booking-api/internal/entity"
	"github.com/facedesk/booking-api/internal/supabase"
)

type stubConnector struct {
	conn  *supabase.Connection
	calls int
}

func readyConnector() *stubConnector {
	return &stubConnector{conn: &supabase.Connection{
		State:  supabase.StateReady,
		Client: postgrest.NewClient("http://localhost:54321/rest/v1", "public", nil),
	}}
}

func (s *stubConnector) Connect(_ context.Context, session *auth.Session) *supabase.Connection {
	s.calls++
	if session == nil {
		return &supabase.Connection{State: supabase.StateNoSession, Err: supabase.ErrNoSession}
	}
	return s.conn
}

type mockBookingsRepository struct {
	create func(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	list   func(ctx context.Context, userID string) ([]entity.Booking, error)
}

func (m *mockBookingsRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if m.create != nil {
		return m.create(ctx, booking)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockBookingsRepository) ListByUser(ctx context.Context, userID string) ([]entity.Booking, error) {
	if m.list != nil {
		return m.list(ctx, userID)
	}
	return nil, errors.New("list not implemented")
}

type mockCompanyProfilesRepository struct {
	get    func(ctx context.Context, userID string) (*entity.CompanyProfile, error)
	upsert func(ctx context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error)
}

func (m *mockCompanyProfilesRepository) Get(ctx context.Context, userID string) (*entity.CompanyProfile, error) {
	if m.get != nil {
		return m.get(ctx, userID)
	}
	return nil, errors.New("get not implemented")
}

func (m *mockCompanyProfilesRepository) Upsert(ctx context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error) {
	if m.upsert != nil {
		return m.upsert(ctx, profile)
	}
	return nil, errors.New("upsert not implemented")
}

type stubMailer struct {
	sent []email.Message
	err  error
}

func (s *stubMailer) Send(_ context.Context, msg email.Message) (string, error) {
	s.sent = append(s.sent, msg)
	if s.err != nil {
		return "", s.err
	}
	return "re_123", nil
}

func customerSession() *auth.Session {
	return &auth.Session{ID: "sess_1", UserID: "user_1", Role: auth.RoleCustomer, Token: "token"}
}
