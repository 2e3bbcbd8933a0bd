package dto

// CompanyProfileRequest carries the optional company details of a customer.
// Empty strings are treated as absent, see validation.NormalizeCompanyProfile.
type CompanyProfileRequest struct {
	CompanyName    *string `json:"companyName,omitempty" validate:"omitempty,max=200"`
	CompanyEmail   *string `json:"companyEmail,omitempty" validate:"omitempty,email"`
	CompanyPhone   *string `json:"companyPhone,omitempty" validate:"omitempty,phone"`
	CompanyWebsite *string `json:"companyWebsite,omitempty" validate:"omitempty,website"`
}
