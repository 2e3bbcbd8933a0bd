package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
)

var (
	// ErrForbidden is returned when row-level security rejects the request.
	ErrForbidden = errors.New("row level security rejected the request")
	// ErrConflict is returned on unique constraint violations.
	ErrConflict = errors.New("record already exists")
)

func clientError(client *postgrest.Client) error {
	if client == nil {
		return errors.New("postgrest client is nil")
	}
	if client.ClientError != nil {
		return fmt.Errorf("postgrest client: %w", client.ClientError)
	}
	return nil
}

// mapPostgrestError classifies PostgREST errors, which carry the SQLSTATE as
// a "(code)" prefix.
func mapPostgrestError(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "(42501)"):
		return fmt.Errorf("%s: %w: %v", op, ErrForbidden, err)
	case strings.Contains(msg, "("+uniqueViolation+")"):
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
