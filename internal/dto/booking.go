package dto

// BookingRequest is the payload submitted when a customer books an interview room.
type BookingRequest struct {
	CandidateName  string `json:"candidateName" validate:"required"`
	CandidateEmail string `json:"candidateEmail" validate:"required,email"`
	IDType         string `json:"idType" validate:"required"`
	IDNumber       string `json:"idNumber" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	Duration       string `json:"duration" validate:"required,oneof=1 2 3 4"`
	TermsAccepted  bool   `json:"termsAccepted" validate:"required"`
}
