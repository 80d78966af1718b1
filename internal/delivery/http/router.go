package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"seekers/internal/delivery/http/controllers"
	"seekers/internal/delivery/http/middleware"
	"seekers/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	jobController *controllers.JobController,
	profileController *controllers.ProfileController,
	resumeController *controllers.ResumeController,
	interviewController *controllers.InterviewController,
	paymentController *controllers.PaymentController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/google", authController.GoogleSignIn)
	mux.HandleFunc("GET /users/me", auth(authController.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(authController.UpdateMe))

	// Jobs (listing and detail are public, match analysis is not)
	mux.HandleFunc("GET /jobs", jobController.ListJobs)
	mux.HandleFunc("GET /jobs/{jobID}", jobController.GetJob)
	mux.HandleFunc("POST /jobs/{jobID}/match", auth(jobController.AnalyzeMatch))

	// Profile / CV builder
	mux.HandleFunc("GET /profile", auth(profileController.GetProfile))
	mux.HandleFunc("POST /profile", auth(profileController.SaveProfile))
	mux.HandleFunc("POST /profile/experience", auth(profileController.AddExperience))
	mux.HandleFunc("POST /profile/education", auth(profileController.AddEducation))
	mux.HandleFunc("POST /profile/skills", auth(profileController.AddSkill))
	mux.HandleFunc("POST /resume/parse", auth(resumeController.ParseResume))

	// AI CV assistance
	mux.HandleFunc("POST /cv/enhance-summary", auth(profileController.EnhanceSummary))
	mux.HandleFunc("POST /cv/optimize-description/{experienceID}", auth(profileController.OptimizeDescription))
	mux.HandleFunc("POST /cv/suggest-skills", auth(profileController.SuggestSkills))
	mux.HandleFunc("POST /cv/generate-headline", auth(profileController.GenerateHeadline))

	// Interview catalog
	mux.HandleFunc("GET /questions/categories", auth(interviewController.ListCategories))
	mux.HandleFunc("GET /questions/levels", auth(interviewController.ListLevels))
	mux.HandleFunc("GET /questions/count", auth(interviewController.QuestionCount))
	mux.HandleFunc("GET /tiers", auth(interviewController.ListTiers))

	// Interview setup wizard and session
	mux.HandleFunc("POST /interviews/setup", auth(interviewController.CreateSetup))
	mux.HandleFunc("GET /interviews/setup/{setupID}", auth(interviewController.GetSetup))
	mux.HandleFunc("PUT /interviews/setup/{setupID}/category", auth(interviewController.SelectCategory))
	mux.HandleFunc("PUT /interviews/setup/{setupID}/level", auth(interviewController.SelectLevel))
	mux.HandleFunc("PUT /interviews/setup/{setupID}/tier", auth(interviewController.SelectTier))
	mux.HandleFunc("POST /interviews/setup/{setupID}/confirm", auth(interviewController.ConfirmSetup))
	mux.HandleFunc("POST /interviews/start", auth(interviewController.StartInterview))
	mux.HandleFunc("GET /interviews/session", auth(interviewController.GetSession))

	// Interview records and evaluation
	mux.HandleFunc("POST /interviews/finish", auth(interviewController.FinishInterview))
	mux.HandleFunc("POST /interviews/{interviewID}/evaluate", auth(interviewController.EvaluateInterview))
	mux.HandleFunc("GET /interviews/history", auth(interviewController.History))

	// Payments (notification webhook is authenticated by its signature)
	mux.HandleFunc("GET /payments/packages", paymentController.ListPackages)
	mux.HandleFunc("POST /payments", auth(paymentController.CreateCheckout))
	mux.HandleFunc("POST /payments/notification", paymentController.HandleNotification)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
