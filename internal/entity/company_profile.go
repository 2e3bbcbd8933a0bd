package entity

import "time"

// CompanyProfile stores the optional company details of a customer account.
type CompanyProfile struct {
	UserID         string     `json:"user_id"`
	CompanyName    *string    `json:"company_name"`
	CompanyEmail   *string    `json:"company_email"`
	CompanyPhone   *string    `json:"company_phone"`
	CompanyWebsite *string    `json:"company_website"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
