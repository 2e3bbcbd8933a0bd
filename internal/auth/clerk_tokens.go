package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/session"
)

// ErrTokenRequest wraps failures talking to the Clerk Backend API.
var ErrTokenRequest = errors.New("clerk token request failed")

// ClerkTokenClient mints template tokens for active sessions.
type ClerkTokenClient struct {
	sessions *session.Client
}

// NewClerkTokenClient builds a client for the Clerk Backend API. An empty
// baseURL keeps the SDK default.
func NewClerkTokenClient(httpClient *http.Client, baseURL, secretKey string) *ClerkTokenClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	cfg := &clerk.ClientConfig{}
	cfg.HTTPClient = httpClient
	cfg.Key = clerk.String(secretKey)
	if baseURL = strings.TrimRight(baseURL, "/"); baseURL != "" {
		cfg.URL = clerk.String(baseURL)
	}
	return &ClerkTokenClient{sessions: session.NewClient(cfg)}
}

// SessionToken requests a token for sessionID signed with the named JWT template.
// An empty token with a nil error means Clerk answered without a jwt.
func (c *ClerkTokenClient) SessionToken(ctx context.Context, sessionID, template string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: session id must not be empty", ErrTokenRequest)
	}

	params := &session.CreateTokenParams{ID: sessionID}
	if template != "" {
		params.TemplateName = template
	}

	token, err := c.sessions.CreateToken(ctx, params)
	if err != nil {
		var apiErr *clerk.APIErrorResponse
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %s", ErrTokenRequest, apiErr.HTTPStatusCode, clerkErrorMessage(apiErr))
		}
		return "", fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}
	if token == nil {
		return "", nil
	}
	return token.JWT, nil
}

func clerkErrorMessage(apiErr *clerk.APIErrorResponse) string {
	for _, e := range apiErr.Errors {
		if e.LongMessage != "" {
			return e.LongMessage
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return "clerk returned an error"
}
