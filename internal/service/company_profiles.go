package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/dto"
	"github.com/facedesk/booking-api/internal/entity"
	"github.com/facedesk/booking-api/internal/repository"
	"github.com/facedesk/booking-api/internal/validation"
)

// CompanyProfilesRepositoryFactory builds a profile repository on a session-scoped client.
type CompanyProfilesRepositoryFactory func(client *postgrest.Client) repository.CompanyProfilesRepository

// CompanyProfileService reads and saves the company details of a customer.
type CompanyProfileService struct {
	connector Connector
	newRepo   CompanyProfilesRepositoryFactory
	region    string
	logger    *zap.Logger
	now       func() time.Time
}

// CompanyProfileOption configures optional dependencies.
type CompanyProfileOption func(*CompanyProfileService)

// WithCompanyProfilesRepository overrides how the repository is built from a client.
func WithCompanyProfilesRepository(factory CompanyProfilesRepositoryFactory) CompanyProfileOption {
	return func(s *CompanyProfileService) {
		if factory != nil {
			s.newRepo = factory
		}
	}
}

// NewCompanyProfileService creates a service that formats phone numbers for
// the given default region.
func NewCompanyProfileService(connector Connector, region string, logger *zap.Logger, opts ...CompanyProfileOption) *CompanyProfileService {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CompanyProfileService{
		connector: connector,
		newRepo: func(client *postgrest.Client) repository.CompanyProfilesRepository {
			return repository.NewPostgrestCompanyProfilesRepository(client)
		},
		region: region,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProfile returns the caller's profile. A user without a saved profile
// gets an empty one.
func (s *CompanyProfileService) GetProfile(ctx context.Context, session *auth.Session) (*entity.CompanyProfile, error) {
	client, err := connect(ctx, s.connector, session)
	if err != nil {
		return nil, err
	}
	profile, err := s.newRepo(client).Get(ctx, session.UserID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return &entity.CompanyProfile{UserID: session.UserID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company profile: %w", err)
	}
	return profile, nil
}

// SaveProfile validates req, normalizes the values that passed and upserts
// the profile. Validation failures are returned as validation.FieldErrors.
func (s *CompanyProfileService) SaveProfile(ctx context.Context, session *auth.Session, req dto.CompanyProfileRequest) (*entity.CompanyProfile, error) {
	req = validation.NormalizeCompanyProfile(req)
	if errs := validation.ValidateCompanyProfile(req); errs != nil {
		return nil, errs
	}

	site, err := website(req.CompanyWebsite)
	if err != nil {
		s.logger.Debug("website failed normalization", zap.String("website", *req.CompanyWebsite), zap.Error(err))
		return nil, validation.FieldErrors{"companyWebsite": "Please enter a valid URL"}
	}

	client, err := connect(ctx, s.connector, session)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	profile := &entity.CompanyProfile{
		UserID:         session.UserID,
		CompanyName:    req.CompanyName,
		CompanyEmail:   lowerPtr(req.CompanyEmail),
		CompanyPhone:   s.phone(req.CompanyPhone),
		CompanyWebsite: site,
		UpdatedAt:      &now,
	}

	saved, err := s.newRepo(client).Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("save company profile: %w", err)
	}
	return saved, nil
}

func (s *CompanyProfileService) phone(value *string) *string {
	if value == nil {
		return nil
	}
	if formatted := normalizePhone(*value, s.region); formatted != "" {
		return &formatted
	}
	return value
}

func website(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	normalized, err := normalizeWebsite(*value)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}

func lowerPtr(value *string) *string {
	if value == nil {
		return nil
	}
	lowered := strings.ToLower(*value)
	return &lowered
}
