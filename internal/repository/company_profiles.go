package repository

import (
	"context"
	"errors"

	"github.com/supabase-community/postgrest-go"

	"github.com/facedesk/booking-api/internal/entity"
)

const companyProfilesTable = "company_profiles"

// ErrProfileNotFound indicates the user has not saved a company profile yet.
var ErrProfileNotFound = errors.New("company profile not found")

// CompanyProfilesRepository reads and writes a customer's company profile.
type CompanyProfilesRepository interface {
	Get(ctx context.Context, userID string) (*entity.CompanyProfile, error)
	Upsert(ctx context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error)
}

// PostgrestCompanyProfilesRepository implements CompanyProfilesRepository over PostgREST.
type PostgrestCompanyProfilesRepository struct {
	client *postgrest.Client
}

// NewPostgrestCompanyProfilesRepository wraps a session-scoped client.
func NewPostgrestCompanyProfilesRepository(client *postgrest.Client) *PostgrestCompanyProfilesRepository {
	return &PostgrestCompanyProfilesRepository{client: client}
}

// Get fetches the profile owned by userID.
func (r *PostgrestCompanyProfilesRepository) Get(_ context.Context, userID string) (*entity.CompanyProfile, error) {
	if err := clientError(r.client); err != nil {
		return nil, err
	}

	var rows []entity.CompanyProfile
	if _, err := r.client.From(companyProfilesTable).Select("*", "", false).Eq("user_id", userID).ExecuteTo(&rows); err != nil {
		return nil, mapPostgrestError("get company profile", err)
	}
	if len(rows) == 0 {
		return nil, ErrProfileNotFound
	}
	return &rows[0], nil
}

// Upsert inserts or replaces the profile keyed by user_id.
func (r *PostgrestCompanyProfilesRepository) Upsert(_ context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error) {
	if profile == nil {
		return nil, errors.New("company profile payload is nil")
	}
	if err := clientError(r.client); err != nil {
		return nil, err
	}

	var rows []entity.CompanyProfile
	if _, err := r.client.From(companyProfilesTable).Insert(profile, true, "user_id", "representation", "").ExecuteTo(&rows); err != nil {
		return nil, mapPostgrestError("upsert company profile", err)
	}
	if len(rows) == 0 {
		return profile, nil
	}
	return &rows[0], nil
}
