package service

import (
	"context"
	"errors"

	"github.com/supabase-community/postgrest-go"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/supabase"
)

// Connector binds a session to a database client.
type Connector interface {
	Connect(ctx context.Context, session *auth.Session) *supabase.Connection
}

func connect(ctx context.Context, connector Connector, session *auth.Session) (*postgrest.Client, error) {
	if connector == nil {
		return nil, errors.New("database connector is not configured")
	}
	conn := connector.Connect(ctx, session)
	if conn == nil {
		return nil, errors.New("database connector returned no connection")
	}
	if conn.State != supabase.StateReady || conn.Client == nil {
		if conn.Err != nil {
			return nil, conn.Err
		}
		return nil, supabase.ErrTokenUnavailable
	}
	return conn.Client, nil
}
