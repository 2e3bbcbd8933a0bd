package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingEmailAPIKey is returned when RESEND_API_KEY is not configured.
var ErrMissingEmailAPIKey = errors.New("RESEND_API_KEY is required")

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// SupabaseConfig points the data-client factory at a Supabase project.
type SupabaseConfig struct {
	URL         string
	AnonKey     string
	JWTTemplate string
}

// ClerkConfig holds the credentials used to verify sessions and mint database tokens.
type ClerkConfig struct {
	SecretKey         string
	APIURL            string
	JWTKey            string
	AuthorizedParties []string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	ResendAPIKey       string
	EmailFrom          string
	DatabaseURL        string
	PhoneRegion        string
	CORSAllowedOrigins []string
	Supabase           SupabaseConfig
	Clerk              ClerkConfig
	RateLimitEmail     RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		EmailFrom:          getEnv("EMAIL_FROM", "FaceDesk <noreply@facedesk.app>"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		PhoneRegion:        strings.ToUpper(getEnv("PHONE_REGION", "US")),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Supabase: SupabaseConfig{
			URL:         strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			AnonKey:     os.Getenv("SUPABASE_ANON_KEY"),
			JWTTemplate: getEnv("SUPABASE_JWT_TEMPLATE", "supabase"),
		},
		Clerk: ClerkConfig{
			SecretKey:         os.Getenv("CLERK_SECRET_KEY"),
			APIURL:            strings.TrimRight(getEnv("CLERK_API_URL", "https://api.clerk.com"), "/"),
			JWTKey:            os.Getenv("CLERK_JWT_KEY"),
			AuthorizedParties: splitList(os.Getenv("CLERK_AUTHORIZED_PARTIES")),
		},
	}

	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		return nil, ErrMissingEmailAPIKey
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_EMAIL", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_EMAIL value: %w", err)
	}
	cfg.RateLimitEmail = rl

	return cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
