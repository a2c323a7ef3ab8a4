// Command server is the entry point for the event site API. It reads
// configuration, opens the database pool (failing fast when the backend is
// unreachable), wires repositories, services, and controllers together, and
// serves HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"eventsite/config"
	authadapter "eventsite/internal/adapters/auth"
	"eventsite/internal/adapters/email"
	"eventsite/internal/adapters/sanitize"
	delivery "eventsite/internal/delivery/http"
	"eventsite/internal/delivery/http/controllers"
	"eventsite/internal/delivery/http/middleware"
	"eventsite/internal/repository/postgres"
	"eventsite/internal/services"

	_ "eventsite/docs"

	"golang.org/x/crypto/bcrypt"
)

const (
	serviceTimeout = 5 * time.Second
	startupTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	// The backend being unreachable at start-up is fatal by design; there is
	// no retry loop here.
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	db, err := postgres.Open(ctx, cfg.DBUrl)
	cancel()
	if err != nil {
		logger.Error("database unreachable", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.RunMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		err := postgres.InstallSchema(ctx, db)
		cancel()
		if err != nil {
			logger.Error("schema install failed", "err", err)
			os.Exit(1)
		}
		logger.Info("schema installed")
	}

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer, tokenVerifier := authadapter.NewJWTCodec(cfg.JWTSecret)
	sanitizer := sanitize.New()
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer setup failed", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), cfg.MailNoticeAddress)
	eventService := services.NewEventService(eventRepo, sanitizer, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, userRepo, sanitizer, emailService, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry, serviceTimeout)

	// Controllers
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService, registrationService)
	registrationController := controllers.NewRegistrationController(logger, eventService, registrationService)

	mux := delivery.NewRouter(tokenVerifier, authController, eventController, registrationController)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
