package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/dto"
	"github.com/facedesk/booking-api/internal/entity"
	"github.com/facedesk/booking-api/internal/repository"
	"github.com/facedesk/booking-api/internal/validation"
)

func strPtr(v string) *string { return &v }

func profilesWith(repo repository.CompanyProfilesRepository) CompanyProfileOption {
	return WithCompanyProfilesRepository(func(*postgrest.Client) repository.CompanyProfilesRepository { return repo })
}

func TestCompanyProfileService_SaveProfileNormalizes(t *testing.T) {
	var saved *entity.CompanyProfile
	repo := &mockCompanyProfilesRepository{
		upsert: func(ctx context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error) {
			saved = profile
			return profile, nil
		},
	}
	svc := NewCompanyProfileService(readyConnector(), "us", zap.NewNop(), profilesWith(repo))
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	req := dto.CompanyProfileRequest{
		CompanyName:    strPtr(" Acme Corp "),
		CompanyEmail:   strPtr("HR@Acme.com"),
		CompanyPhone:   strPtr("(415) 555-1234"),
		CompanyWebsite: strPtr("https://Bücher.example/jobs?utm_source=ads&ref=home"),
	}
	if _, err := svc.SaveProfile(context.Background(), customerSession(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.UserID != "user_1" || *saved.CompanyName != "Acme Corp" {
		t.Fatalf("unexpected profile: %+v", saved)
	}
	if *saved.CompanyEmail != "hr@acme.com" {
		t.Fatalf("expected lower-cased email, got %s", *saved.CompanyEmail)
	}
	if *saved.CompanyPhone != "+14155551234" {
		t.Fatalf("expected E.164 phone, got %s", *saved.CompanyPhone)
	}
	if *saved.CompanyWebsite != "https://xn--bcher-kva.example/jobs?ref=home" {
		t.Fatalf("unexpected website: %s", *saved.CompanyWebsite)
	}
	if saved.UpdatedAt == nil || !saved.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected updated_at: %v", saved.UpdatedAt)
	}
}

func TestCompanyProfileService_SaveProfileBlankFields(t *testing.T) {
	var saved *entity.CompanyProfile
	repo := &mockCompanyProfilesRepository{
		upsert: func(ctx context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error) {
			saved = profile
			return profile, nil
		},
	}
	svc := NewCompanyProfileService(readyConnector(), "", zap.NewNop(), profilesWith(repo))

	req := dto.CompanyProfileRequest{CompanyName: strPtr(""), CompanyEmail: strPtr("  "), CompanyPhone: strPtr(""), CompanyWebsite: strPtr("")}
	if _, err := svc.SaveProfile(context.Background(), customerSession(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.CompanyName != nil || saved.CompanyEmail != nil || saved.CompanyPhone != nil || saved.CompanyWebsite != nil {
		t.Fatalf("expected blank fields stored as null, got %+v", saved)
	}
}

func TestCompanyProfileService_SaveProfileInvalid(t *testing.T) {
	connector := readyConnector()
	svc := NewCompanyProfileService(connector, "US", zap.NewNop(), profilesWith(&mockCompanyProfilesRepository{}))

	req := dto.CompanyProfileRequest{CompanyEmail: strPtr("not-an-email"), CompanyWebsite: strPtr("not a url")}
	_, err := svc.SaveProfile(context.Background(), customerSession(), req)

	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if len(fieldErrs) != 2 {
		t.Fatalf("unexpected field errors: %#v", fieldErrs)
	}
	if connector.calls != 0 {
		t.Fatalf("expected no database connection for invalid input")
	}
}

func TestCompanyProfileService_GetProfileMissing(t *testing.T) {
	repo := &mockCompanyProfilesRepository{
		get: func(ctx context.Context, userID string) (*entity.CompanyProfile, error) {
			return nil, repository.ErrProfileNotFound
		},
	}
	svc := NewCompanyProfileService(readyConnector(), "US", zap.NewNop(), profilesWith(repo))

	profile, err := svc.GetProfile(context.Background(), customerSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.UserID != "user_1" || profile.CompanyName != nil {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestCompanyProfileService_GetProfileError(t *testing.T) {
	repo := &mockCompanyProfilesRepository{
		get: func(ctx context.Context, userID string) (*entity.CompanyProfile, error) {
			return nil, repository.ErrForbidden
		},
	}
	svc := NewCompanyProfileService(readyConnector(), "US", zap.NewNop(), profilesWith(repo))

	if _, err := svc.GetProfile(context.Background(), customerSession()); !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCompanyProfileService_SaveProfileRejectsUnsafeWebsites(t *testing.T) {
	websites := []string{"javascript:alert(1)", "mailto:a@b.com", "foo:#bar", "https://-acme-.example"}

	for _, site := range websites {
		t.Run(site, func(t *testing.T) {
			repo := &mockCompanyProfilesRepository{
				upsert: func(ctx context.Context, profile *entity.CompanyProfile) (*entity.CompanyProfile, error) {
					t.Fatalf("website %q must not be stored", site)
					return nil, nil
				},
			}
			svc := NewCompanyProfileService(readyConnector(), "US", zap.NewNop(), profilesWith(repo))

			_, err := svc.SaveProfile(context.Background(), customerSession(), dto.CompanyProfileRequest{CompanyWebsite: strPtr(site)})
			var fieldErrs validation.FieldErrors
			if !errors.As(err, &fieldErrs) || fieldErrs["companyWebsite"] == "" {
				t.Fatalf("expected companyWebsite error, got %v", err)
			}
		})
	}
}
