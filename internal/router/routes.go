package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/config"
	"github.com/facedesk/booking-api/internal/handler"
	middlewarepkg "github.com/facedesk/booking-api/internal/middleware"
)

const sendEmailPath = "/send-email"

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Bookings       *handler.BookingsHandler
	CompanyProfile *handler.CompanyProfileHandler
	Email          *handler.EmailHandler
	Metrics        http.Handler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, verifier middlewarepkg.SessionVerifier, handlers Handlers) {
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "apikey", "x-client-info"},
		// The email endpoint answers its own preflight.
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == sendEmailPath
		},
	}))

	e.GET("/healthz", handler.Health)
	if handlers.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.Metrics))
	}

	if handlers.Email != nil {
		e.OPTIONS(sendEmailPath, handlers.Email.Preflight)
	}

	// Session and role checks are attached per route so unknown paths still 404.
	session := middlewarepkg.Session(verifier)
	customer := middlewarepkg.RequireRole(auth.RoleCustomer)

	if handlers.Email != nil {
		e.POST(sendEmailPath, handlers.Email.Send, session, middlewarepkg.RateLimit(cfg.RateLimitEmail))
	}

	e.GET("/bookings", handlers.Bookings.List, session)
	e.POST("/bookings", handlers.Bookings.Create, session, customer)
	e.GET("/company-profile", handlers.CompanyProfile.Get, session, customer)
	e.PUT("/company-profile", handlers.CompanyProfile.Update, session, customer)
}
