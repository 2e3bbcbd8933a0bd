package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the session token metadata.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
)

var (
	// ErrInvalidSession is returned when a session token cannot be trusted.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrUnauthorizedParty is returned when the token was issued for another origin.
	ErrUnauthorizedParty = errors.New("session token issued for an unauthorized party")
)

// Session is an authenticated Clerk session.
type Session struct {
	ID     string
	UserID string
	Role   string
	Token  string
}

// Claims defines the payload of a Clerk session token.
type Claims struct {
	jwt.RegisteredClaims
	SessionID       string          `json:"sid"`
	AuthorizedParty string          `json:"azp,omitempty"`
	Metadata        SessionMetadata `json:"metadata"`
}

// SessionMetadata holds the public metadata copied into the token by the
// session token template.
type SessionMetadata struct {
	Role string `json:"role"`
}

// SessionVerifier verifies RS256 session tokens offline with the instance public key.
type SessionVerifier struct {
	key               *rsa.PublicKey
	authorizedParties map[string]struct{}
}

// NewSessionVerifier parses the PEM encoded public key of the Clerk instance.
func NewSessionVerifier(publicKeyPEM string, authorizedParties []string) (*SessionVerifier, error) {
	if strings.TrimSpace(publicKeyPEM) == "" {
		return nil, errors.New("session public key must not be empty")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse session public key: %w", err)
	}
	return NewSessionVerifierWithKey(key, authorizedParties), nil
}

// NewSessionVerifierWithKey builds a verifier from an already parsed key.
func NewSessionVerifierWithKey(key *rsa.PublicKey, authorizedParties []string) *SessionVerifier {
	parties := make(map[string]struct{}, len(authorizedParties))
	for _, p := range authorizedParties {
		parties[strings.TrimRight(p, "/")] = struct{}{}
	}
	return &SessionVerifier{key: key, authorizedParties: parties}
}

// Verify checks the signature, expiry and authorized party of token.
func (v *SessionVerifier) Verify(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodRS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing subject or session id", ErrInvalidSession)
	}
	if len(v.authorizedParties) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.authorizedParties[strings.TrimRight(claims.AuthorizedParty, "/")]; !ok {
			return nil, ErrUnauthorizedParty
		}
	}

	return &Session{
		ID:     claims.SessionID,
		UserID: claims.Subject,
		Role:   claims.Metadata.Role,
		Token:  token,
	}, nil
}
