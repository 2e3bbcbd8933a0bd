package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus tracks where a booking is in its lifecycle.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is an interview room reservation as stored in the bookings table.
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	UserID         string        `json:"user_id"`
	CandidateName  string        `json:"candidate_name"`
	CandidateEmail string        `json:"candidate_email"`
	IDType         string        `json:"id_type"`
	IDNumber       string        `json:"id_number"`
	BookingDate    string        `json:"booking_date"`
	StartTime      string        `json:"start_time"`
	DurationHours  int           `json:"duration_hours"`
	TermsAccepted  bool          `json:"terms_accepted"`
	Status         BookingStatus `json:"status"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
}
