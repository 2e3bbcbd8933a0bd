package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/dto"
	"github.com/facedesk/booking-api/internal/email"
	"github.com/facedesk/booking-api/internal/entity"
	"github.com/facedesk/booking-api/internal/repository"
	"github.com/facedesk/booking-api/internal/validation"
)

const confirmationSubject = "Your FaceDesk interview is booked"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<h1>Your interview room is booked</h1>
<p>Hi {{.CandidateName}},</p>
<p>Your interview is scheduled on <strong>{{.BookingDate}}</strong> at <strong>{{.StartTime}}</strong> for {{.DurationHours}} hour(s).</p>
<p>Please bring your {{.IDType}} for verification at the front desk.</p>
<p>FaceDesk</p>`))

// Mailer sends a single email and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, msg email.Message) (string, error)
}

// BookingsRepositoryFactory builds a bookings repository on a session-scoped client.
type BookingsRepositoryFactory func(client *postgrest.Client) repository.BookingsRepository

// BookingsService creates and lists interview room bookings.
type BookingsService struct {
	connector Connector
	newRepo   BookingsRepositoryFactory
	mailer    Mailer
	logger    *zap.Logger
}

// BookingsOption configures optional dependencies.
type BookingsOption func(*BookingsService)

// WithBookingsRepository overrides how the repository is built from a client.
func WithBookingsRepository(factory BookingsRepositoryFactory) BookingsOption {
	return func(s *BookingsService) {
		if factory != nil {
			s.newRepo = factory
		}
	}
}

// NewBookingsService wires the booking workflow. mailer may be nil, in which
// case no confirmation email is sent.
func NewBookingsService(connector Connector, mailer Mailer, logger *zap.Logger, opts ...BookingsOption) *BookingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BookingsService{
		connector: connector,
		newRepo: func(client *postgrest.Client) repository.BookingsRepository {
			return repository.NewPostgrestBookingsRepository(client)
		},
		mailer: mailer,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking validates req and stores a pending booking owned by the
// session user. Validation failures are returned as validation.FieldErrors.
func (s *BookingsService) CreateBooking(ctx context.Context, session *auth.Session, req dto.BookingRequest) (*entity.Booking, error) {
	req = validation.NormalizeBooking(req)
	if errs := validation.ValidateBooking(req); errs != nil {
		return nil, errs
	}

	client, err := connect(ctx, s.connector, session)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.Atoi(req.Duration)
	if err != nil {
		return nil, validation.FieldErrors{"duration": "Duration must be 1, 2, 3 or 4 hours"}
	}

	booking := &entity.Booking{
		ID:             uuid.New(),
		UserID:         session.UserID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		IDType:         req.IDType,
		IDNumber:       req.IDNumber,
		BookingDate:    req.Date,
		StartTime:      req.Time,
		DurationHours:  duration,
		TermsAccepted:  req.TermsAccepted,
		Status:         entity.BookingStatusPending,
	}

	stored, err := s.newRepo(client).Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, stored)
	return stored, nil
}

// ListBookings returns the bookings visible to the session.
func (s *BookingsService) ListBookings(ctx context.Context, session *auth.Session) ([]entity.Booking, error) {
	client, err := connect(ctx, s.connector, session)
	if err != nil {
		return nil, err
	}
	bookings, err := s.newRepo(client).ListByUser(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingsService) sendConfirmation(ctx context.Context, booking *entity.Booking) {
	if s.mailer == nil || booking == nil {
		return
	}

	html, err := renderConfirmation(booking)
	if err != nil {
		s.logger.Error("render booking confirmation", zap.String("booking_id", booking.ID.String()), zap.Error(err))
		return
	}

	_, err = s.mailer.Send(ctx, email.Message{
		To:      []string{booking.CandidateEmail},
		Subject: confirmationSubject,
		HTML:    html,
	})
	if err != nil {
		s.logger.Warn("booking confirmation email not sent",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
	}
}

func renderConfirmation(booking *entity.Booking) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, booking); err != nil {
		return "", err
	}
	return buf.String(), nil
}
