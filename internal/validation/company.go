package validation

import (
	"strings"

	"github.com/facedesk/booking-api/internal/dto"
)

var companyMessages = messages{
	"companyName":    {"max": "Company name must be at most 200 characters"},
	"companyEmail":   {"email": "Please enter a valid email address"},
	"companyPhone":   {"phone": "Please enter a valid phone number"},
	"companyWebsite": {"website": "Please enter a valid URL"},
}

// NormalizeCompanyProfile turns blank fields into absent ones so that optional
// fields are never reported as empty.
func NormalizeCompanyProfile(req dto.CompanyProfileRequest) dto.CompanyProfileRequest {
	req.CompanyName = blankToNil(req.CompanyName)
	req.CompanyEmail = blankToNil(req.CompanyEmail)
	req.CompanyPhone = blankToNil(req.CompanyPhone)
	req.CompanyWebsite = blankToNil(req.CompanyWebsite)
	return req
}

// ValidateCompanyProfile normalizes the request and checks the format of every
// field that is present.
func ValidateCompanyProfile(req dto.CompanyProfileRequest) FieldErrors {
	req = NormalizeCompanyProfile(req)
	return check(&req, companyMessages)
}

func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
