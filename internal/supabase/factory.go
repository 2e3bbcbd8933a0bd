package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/auth"
)

const restPath = "/rest/v1"

var (
	// ErrNoSession is returned when a connection is requested without a session.
	ErrNoSession = errors.New("no active session")
	// ErrTokenUnavailable is returned when no database token could be obtained.
	ErrTokenUnavailable = errors.New("database token unavailable")
)

// State enumerates the phases of building a session-scoped client.
type State int

const (
	StateNoSession State = iota
	StateAwaitingToken
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StateAwaitingToken:
		return "awaiting_token"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TokenSource mints database tokens for a session.
type TokenSource interface {
	SessionToken(ctx context.Context, sessionID, template string) (string, error)
}

// Connection is the result of binding a session to a database client.
// Client is only set in StateReady.
type Connection struct {
	State  State
	Client *postgrest.Client
	Err    error
}

// Loading reports whether the token request is still outstanding.
func (c *Connection) Loading() bool {
	return c.State == StateAwaitingToken
}

// Factory builds PostgREST clients that present the session's token on every request.
type Factory struct {
	restURL  string
	anonKey  string
	template string
	tokens   TokenSource
	logger   *zap.Logger
}

// NewFactory configures a factory for the Supabase project at baseURL.
func NewFactory(baseURL, anonKey, template string, tokens TokenSource, logger *zap.Logger) *Factory {
	if template == "" {
		template = "supabase"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		restURL:  strings.TrimRight(baseURL, "/") + restPath,
		anonKey:  anonKey,
		template: template,
		tokens:   tokens,
		logger:   logger,
	}
}

// Connect requests a token for session and returns a ready client, or a
// connection without a client when there is no session or no token.
func (f *Factory) Connect(ctx context.Context, session *auth.Session) *Connection {
	if session == nil || session.ID == "" {
		return &Connection{State: StateNoSession, Err: ErrNoSession}
	}

	conn := &Connection{State: StateAwaitingToken}
	token, err := f.tokens.SessionToken(ctx, session.ID, f.template)
	if err == nil && strings.TrimSpace(token) == "" {
		err = errors.New("token source returned an empty token")
	}
	if err != nil {
		f.logger.Error("error creating supabase client",
			zap.String("session_id", session.ID),
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		conn.State = StateFailed
		conn.Err = fmt.Errorf("%w: %v", ErrTokenUnavailable, err)
		return conn
	}

	conn.Client = postgrest.NewClient(f.restURL, "public", map[string]string{
		"apikey":        f.anonKey,
		"Authorization": "Bearer " + token,
	})
	conn.State = StateReady
	return conn
}
