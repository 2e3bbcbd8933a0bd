package validation

import (
	"strings"

	"github.com/facedesk/booking-api/internal/dto"
)

// AllowedDurations lists the bookable slot lengths in hours.
var AllowedDurations = []string{"1", "2", "3", "4"}

var bookingMessages = messages{
	"candidateName":  {"required": "Candidate name is required"},
	"candidateEmail": {"required": "Candidate email is required", "email": "Please enter a valid email address"},
	"idType":         {"required": "ID type is required"},
	"idNumber":       {"required": "ID number is required"},
	"date":           {"required": "Date is required", "datetime": "Date must be in YYYY-MM-DD format"},
	"time":           {"required": "Time is required", "datetime": "Time must be in HH:MM format"},
	"duration":       {"required": "Please select a duration", "oneof": "Duration must be 1, 2, 3 or 4 hours"},
	"termsAccepted":  {"required": "You must accept the terms and conditions"},
}

// NormalizeBooking trims surrounding whitespace from every text field.
func NormalizeBooking(req dto.BookingRequest) dto.BookingRequest {
	req.CandidateName = strings.TrimSpace(req.CandidateName)
	req.CandidateEmail = strings.TrimSpace(req.CandidateEmail)
	req.IDType = strings.TrimSpace(req.IDType)
	req.IDNumber = strings.TrimSpace(req.IDNumber)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Duration = strings.TrimSpace(req.Duration)
	return req
}

// ValidateBooking returns one message per invalid field, or nil when the
// request may be submitted.
func ValidateBooking(req dto.BookingRequest) FieldErrors {
	req = NormalizeBooking(req)
	return check(&req, bookingMessages)
}
