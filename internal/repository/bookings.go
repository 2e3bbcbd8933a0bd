package repository

import (
	"context"
	"errors"

	"github.com/supabase-community/postgrest-go"

	"github.com/facedesk/booking-api/internal/entity"
)

const bookingsTable = "bookings"

// BookingsRepository persists interview room bookings.
type BookingsRepository interface {
	Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Booking, error)
}

// PostgrestBookingsRepository talks to the bookings table through a
// session-scoped PostgREST client, so row-level security applies.
type PostgrestBookingsRepository struct {
	client *postgrest.Client
}

// NewPostgrestBookingsRepository wraps a session-scoped client.
func NewPostgrestBookingsRepository(client *postgrest.Client) *PostgrestBookingsRepository {
	return &PostgrestBookingsRepository{client: client}
}

// Create inserts booking and returns the stored row.
func (r *PostgrestBookingsRepository) Create(_ context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if booking == nil {
		return nil, errors.New("booking payload is nil")
	}
	if err := clientError(r.client); err != nil {
		return nil, err
	}

	var rows []entity.Booking
	if _, err := r.client.From(bookingsTable).Insert(booking, false, "", "representation", "").ExecuteTo(&rows); err != nil {
		return nil, mapPostgrestError("insert booking", err)
	}
	if len(rows) == 0 {
		return booking, nil
	}
	return &rows[0], nil
}

// ListByUser returns the bookings created by userID, newest first.
func (r *PostgrestBookingsRepository) ListByUser(_ context.Context, userID string) ([]entity.Booking, error) {
	if err := clientError(r.client); err != nil {
		return nil, err
	}

	var rows []entity.Booking
	_, err := r.client.From(bookingsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, mapPostgrestError("list bookings", err)
	}
	if rows == nil {
		rows = []entity.Booking{}
	}
	return rows, nil
}
