package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"seekers/config"
	"seekers/internal/adapters/ai"
	authadapter "seekers/internal/adapters/auth"
	"seekers/internal/adapters/email"
	"seekers/internal/adapters/payment"
	"seekers/internal/adapters/resume"
	httpdelivery "seekers/internal/delivery/http"
	"seekers/internal/delivery/http/controllers"
	"seekers/internal/delivery/http/middleware"
	"seekers/internal/repository/postgres"
	redisrepo "seekers/internal/repository/redis"
	"seekers/internal/services"
)

const (
	tokenExpiry     = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// @title Seekers API
// @version 1.0
// @description Job portal backend: auth, job search with AI match scoring, CV builder, interview simulator, and token payments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	setupStore, err := redisrepo.NewSetupStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(0)
	jwtCodec := authadapter.NewJWTCodec(cfg.JWTSecret)
	googleVerifier := authadapter.NewGoogleVerifier(cfg.GoogleClientID, nil)
	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	snapGateway := payment.NewSnapGateway(cfg.MidtransServerKey, cfg.MidtransBaseURL, nil)
	pdfExtractor := resume.NewPDFExtractor()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, hasher, jwtCodec, googleVerifier, emailService, tokenExpiry, logger)
	jobService := services.NewJobService(jobRepo, profileRepo, userRepo, gemini, logger)
	profileService := services.NewProfileService(profileRepo, gemini)
	resumeService := services.NewResumeService(pdfExtractor, logger)
	interviewService := services.NewInterviewService(catalogRepo, setupStore, interviewRepo, userRepo, gemini, logger)
	paymentService := services.NewPaymentService(paymentRepo, userRepo, snapGateway, emailService, logger)

	// Delivery
	mux := httpdelivery.NewRouter(
		logger,
		jwtCodec,
		controllers.NewAuthController(logger, authService),
		controllers.NewJobController(logger, jobService),
		controllers.NewProfileController(logger, profileService),
		controllers.NewResumeController(logger, resumeService),
		controllers.NewInterviewController(logger, interviewService),
		controllers.NewPaymentController(logger, paymentService),
	)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
