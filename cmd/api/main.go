package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/auth"
	"github.com/facedesk/booking-api/internal/config"
	"github.com/facedesk/booking-api/internal/database"
	"github.com/facedesk/booking-api/internal/email"
	"github.com/facedesk/booking-api/internal/handler"
	"github.com/facedesk/booking-api/internal/logger"
	"github.com/facedesk/booking-api/internal/metrics"
	middlewarepkg "github.com/facedesk/booking-api/internal/middleware"
	"github.com/facedesk/booking-api/internal/repository"
	"github.com/facedesk/booking-api/internal/router"
	"github.com/facedesk/booking-api/internal/service"
	"github.com/facedesk/booking-api/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	m := metrics.New("facedesk")
	senderOpts := []email.Option{email.WithObserver(m)}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL, database.PoolOptions{})
		cancel()
		if err != nil {
			zlog.Fatal("failed to connect database", zap.Error(err))
		}
		defer pool.Close()
		senderOpts = append(senderOpts, email.WithRecorder(repository.NewPGXEmailDeliveriesRepository(pool)))
	} else {
		zlog.Info("DATABASE_URL not set, email delivery log disabled")
	}

	verifier, err := auth.NewSessionVerifier(cfg.Clerk.JWTKey, cfg.Clerk.AuthorizedParties)
	if err != nil {
		zlog.Fatal("failed to configure session verifier", zap.Error(err))
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	tokens := auth.NewClerkTokenClient(httpClient, cfg.Clerk.APIURL, cfg.Clerk.SecretKey)
	factory := supabase.NewFactory(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.JWTTemplate, tokens, zlog.Named("supabase"))

	sender := email.NewSender(cfg.ResendAPIKey, cfg.EmailFrom, zlog.Named("email"), senderOpts...)

	bookingsService := service.NewBookingsService(factory, sender, zlog.Named("bookings"))
	profileService := service.NewCompanyProfileService(factory, cfg.PhoneRegion, zlog.Named("company_profile"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(zlog.Named("http"), m))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, verifier, router.Handlers{
		Bookings:       handler.NewBookingsHandler(bookingsService),
		CompanyProfile: handler.NewCompanyProfileHandler(profileService),
		Email:          handler.NewEmailHandler(sender, cfg.EmailFrom),
		Metrics:        m.Handler(),
	})

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
