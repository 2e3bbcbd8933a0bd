package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/facedesk/booking-api/internal/auth"
)

// SessionVerifier turns a bearer token into a verified session.
type SessionVerifier interface {
	Verify(token string) (*auth.Session, error)
}

// Session validates the Clerk session token and stores the session in the request context.
func Session(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}

			session, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid session"})
			}

			c.Set(ContextKeySession, session)
			c.Set(ContextKeyUserID, session.UserID)
			c.Set(ContextKeyUserRole, session.Role)

			return next(c)
		}
	}
}

// SessionFromContext returns the verified session, or nil when the request is anonymous.
func SessionFromContext(c echo.Context) *auth.Session {
	if session, ok := c.Get(ContextKeySession).(*auth.Session); ok {
		return session
	}
	return nil
}
