package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"seekers/internal/delivery/http/helpers"
	"seekers/internal/delivery/http/middleware"
	"seekers/internal/domain"
)

// InterviewController handles the interview catalog, the setup wizard, and
// session bootstrap endpoints.
type InterviewController struct {
	Logger  *slog.Logger
	Service domain.InterviewService
}

func NewInterviewController(logger *slog.Logger, svc domain.InterviewService) *InterviewController {
	return &InterviewController{Logger: logger, Service: svc}
}

// ListCategoriesSuccessResponse is the success response envelope for GET /questions/categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListCategories godoc
// @Summary List published interview categories
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListCategoriesSuccessResponse "data is an array of categories"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /questions/categories [get]
func (c *InterviewController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// ListLevelsSuccessResponse is the success response envelope for GET /questions/levels (200).
type ListLevelsSuccessResponse struct {
	Data  []domain.LevelInfo `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListLevels godoc
// @Summary List seniority levels
// @Description Returns the fixed seniority level enumeration with display labels.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListLevelsSuccessResponse "data is the level enumeration"
// @Router /questions/levels [get]
func (c *InterviewController) ListLevels(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.Levels())
}

// ListTiersSuccessResponse is the success response envelope for GET /tiers (200).
type ListTiersSuccessResponse struct {
	Data  []*domain.Tier    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTiers godoc
// @Summary List interview tiers
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListTiersSuccessResponse "data is an array of tiers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tiers [get]
func (c *InterviewController) ListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := c.Service.ListTiers(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if tiers == nil {
		tiers = []*domain.Tier{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tiers)
}

// QuestionCountResponse is the data payload for GET /questions/count (200).
type QuestionCountResponse struct {
	Count int `json:"count"`
}

// QuestionCountSuccessResponse is the success response envelope for GET /questions/count (200).
type QuestionCountSuccessResponse struct {
	Data  QuestionCountResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// QuestionCount godoc
// @Summary Count available questions for a category and level
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param categoryId query string true "Category ID"
// @Param level query string true "Level (junior, middle, senior)"
// @Success 200 {object} controllers.QuestionCountSuccessResponse "data contains the count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /questions/count [get]
func (c *InterviewController) QuestionCount(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(r.URL.Query().Get("categoryId"))
	level := domain.Level(strings.TrimSpace(r.URL.Query().Get("level")))
	if categoryID == "" || level == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "categoryId and level are required")
		return
	}
	count, err := c.Service.QuestionCount(r.Context(), categoryID, level)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "category not found")
			return
		}
		if errors.Is(err, domain.ErrLevelUnavailable) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown level")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, QuestionCountResponse{Count: count})
}

// SetupSuccessResponse is the success response envelope for setup wizard endpoints.
type SetupSuccessResponse struct {
	Data  *domain.Setup     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateSetup godoc
// @Summary Create a new interview setup session
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 201 {object} controllers.SetupSuccessResponse "data contains the empty setup"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/setup [post]
func (c *InterviewController) CreateSetup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	setup, err := c.Service.CreateSetup(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, setup)
}

// GetSetup godoc
// @Summary Get an interview setup session
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param setupID path string true "Setup ID"
// @Success 200 {object} controllers.SetupSuccessResponse "data contains the setup"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/setup/{setupID} [get]
func (c *InterviewController) GetSetup(w http.ResponseWriter, r *http.Request) {
	setupID := r.PathValue("setupID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	setup, err := c.Service.GetSetup(r.Context(), setupID, userID)
	if err != nil {
		c.writeSetupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, setup)
}

// SelectCategoryRequest is the request body for PUT /interviews/setup/{setupID}/category.
type SelectCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

// Validate implements Validator.
func (s SelectCategoryRequest) Validate() []string {
	if strings.TrimSpace(s.CategoryID) == "" {
		return []string{"category_id is required"}
	}
	return nil
}

// SelectCategory godoc
// @Summary Select the interview category
// @Description Sets the category. A level the new category does not enable is reset along with the tier; the available-question count is refetched.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param setupID path string true "Setup ID"
// @Param body body SelectCategoryRequest true "Category selection"
// @Success 200 {object} controllers.SetupSuccessResponse "data contains the updated setup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/setup/{setupID}/category [put]
func (c *InterviewController) SelectCategory(w http.ResponseWriter, r *http.Request) {
	setupID := r.PathValue("setupID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SelectCategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	setup, err := c.Service.SelectCategory(r.Context(), setupID, userID, req.CategoryID)
	if err != nil {
		c.writeSetupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, setup)
}

// SelectLevelRequest is the request body for PUT /interviews/setup/{setupID}/level.
type SelectLevelRequest struct {
	Level string `json:"level"`
}

// Validate implements Validator.
func (s SelectLevelRequest) Validate() []string {
	if strings.TrimSpace(s.Level) == "" {
		return []string{"level is required"}
	}
	return nil
}

// SelectLevel godoc
// @Summary Select the seniority level
// @Description Sets the level. Fails if the selected category does not enable it. Changing the level refetches the available-question count.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param setupID path string true "Setup ID"
// @Param body body SelectLevelRequest true "Level selection"
// @Success 200 {object} controllers.SetupSuccessResponse "data contains the updated setup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (level unavailable)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/setup/{setupID}/level [put]
func (c *InterviewController) SelectLevel(w http.ResponseWriter, r *http.Request) {
	setupID := r.PathValue("setupID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SelectLevelRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	setup, err := c.Service.SelectLevel(r.Context(), setupID, userID, domain.Level(req.Level))
	if err != nil {
		c.writeSetupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, setup)
}

// SelectTierRequest is the request body for PUT /interviews/setup/{setupID}/tier.
type SelectTierRequest struct {
	TierID string `json:"tier_id"`
}

// Validate implements Validator.
func (s SelectTierRequest) Validate() []string {
	if strings.TrimSpace(s.TierID) == "" {
		return []string{"tier_id is required"}
	}
	return nil
}

// SelectTier godoc
// @Summary Select the interview tier
// @Description Sets the tier. Rejected while the available-question count is unknown, and when the tier quota exceeds the count.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param setupID path string true "Setup ID"
// @Param body body SelectTierRequest true "Tier selection"
// @Success 200 {object} controllers.SetupSuccessResponse "data contains the updated setup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (tier infeasible) or count_unknown"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/setup/{setupID}/tier [put]
func (c *InterviewController) SelectTier(w http.ResponseWriter, r *http.Request) {
	setupID := r.PathValue("setupID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SelectTierRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	setup, err := c.Service.SelectTier(r.Context(), setupID, userID, req.TierID)
	if err != nil {
		c.writeSetupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, setup)
}

// ConfirmSetup godoc
// @Summary Confirm the completed setup selection
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param setupID path string true "Setup ID"
// @Success 200 {object} controllers.SetupSuccessResponse "data contains the confirmed setup"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: bad_request (selection incomplete)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/setup/{setupID}/confirm [post]
func (c *InterviewController) ConfirmSetup(w http.ResponseWriter, r *http.Request) {
	setupID := r.PathValue("setupID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	setup, err := c.Service.Confirm(r.Context(), setupID, userID)
	if err != nil {
		c.writeSetupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, setup)
}

// StartInterviewRequest is the request body for POST /interviews/start.
type StartInterviewRequest struct {
	CategoryID    string `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle"`
	Level         string `json:"level"`
	Tier          string `json:"tier"`
	TokenUsage    int    `json:"tokenUsage"`
}

// Validate implements Validator.
func (s StartInterviewRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.CategoryID) == "" {
		errs = append(errs, "categoryId is required")
	}
	if strings.TrimSpace(s.Level) == "" {
		errs = append(errs, "level is required")
	}
	if strings.TrimSpace(s.Tier) == "" {
		errs = append(errs, "tier is required")
	}
	if s.TokenUsage < 0 {
		errs = append(errs, "tokenUsage must be non-negative")
	}
	return errs
}

// StartInterviewSuccessResponse is the success response envelope for POST /interviews/start (201).
type StartInterviewSuccessResponse struct {
	Data  *domain.InterviewSession `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// StartInterview godoc
// @Summary Start an interview session
// @Description Validates the submitted config against the catalog, deducts tokens for premium tiers, loads the question set, and persists the session.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartInterviewRequest true "Confirmed interview config"
// @Success 201 {object} controllers.StartInterviewSuccessResponse "data contains the session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 402 {object} helpers.APIResponse "error.code: insufficient_balance"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: bad_request (no or malformed questions)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/start [post]
func (c *InterviewController) StartInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req StartInterviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cfg := domain.InterviewConfig{
		CategoryID:    req.CategoryID,
		CategoryTitle: req.CategoryTitle,
		Level:         domain.Level(req.Level),
		Tier:          req.Tier,
		TokenUsage:    req.TokenUsage,
	}
	session, err := c.Service.Start(r.Context(), userID, cfg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound) || errors.Is(err, domain.ErrTierNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
		case errors.Is(err, domain.ErrLevelUnavailable):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrInsufficientBalance):
			helpers.WriteJSONError(w, http.StatusPaymentRequired, helpers.ErrCodeInsufficientBalance, "not enough tokens for this interview")
		case errors.Is(err, domain.ErrNoQuestions) || errors.Is(err, domain.ErrMalformedQuestionSet):
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// GetSession godoc
// @Summary Get the active interview session
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.StartInterviewSuccessResponse "data contains the session"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no active session)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/session [get]
func (c *InterviewController) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	session, err := c.Service.Session(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrSetupNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no active interview session")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// FinishInterviewRequest is the request body for POST /interviews/finish.
type FinishInterviewRequest struct {
	Answers []domain.Answer `json:"answers"`
}

// Validate implements Validator.
func (f FinishInterviewRequest) Validate() []string {
	var errs []string
	for i, a := range f.Answers {
		if strings.TrimSpace(a.QuestionID) == "" {
			errs = append(errs, fmt.Sprintf("answers[%d].questionId is required", i))
		}
	}
	return errs
}

// FinishInterviewSuccessResponse is the success response envelope for POST /interviews/finish (201).
type FinishInterviewSuccessResponse struct {
	Data  *domain.InterviewRecord `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// FinishInterview godoc
// @Summary Finish the active interview
// @Description Turns the active session into a durable interview record with the submitted answers. The record can then be evaluated and shows up in history.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FinishInterviewRequest true "Answered questions"
// @Success 201 {object} controllers.FinishInterviewSuccessResponse "data contains the interview record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no active session)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/finish [post]
func (c *InterviewController) FinishInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req FinishInterviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rec, err := c.Service.Finish(r.Context(), userID, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrSetupNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no active interview session")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rec)
}

// EvaluationResponse is the data payload for POST /interviews/{interviewID}/evaluate (200).
type EvaluationResponse struct {
	Evaluation *domain.InterviewEvaluation `json:"evaluation"`
}

// EvaluateInterviewSuccessResponse is the success response envelope for POST /interviews/{interviewID}/evaluate (200).
type EvaluateInterviewSuccessResponse struct {
	Data  EvaluationResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EvaluateInterview godoc
// @Summary Evaluate a finished interview
// @Description Runs the AI assessment of a finished interview. An already evaluated interview returns the stored evaluation.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param interviewID path string true "Interview ID"
// @Success 200 {object} controllers.EvaluateInterviewSuccessResponse "data contains the evaluation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: bad_request (no answers to evaluate)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{interviewID}/evaluate [post]
func (c *InterviewController) EvaluateInterview(w http.ResponseWriter, r *http.Request) {
	interviewID := r.PathValue("interviewID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eval, err := c.Service.Evaluate(r.Context(), userID, interviewID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInterviewNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "interview not found")
		case errors.Is(err, domain.ErrNoAnswers):
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeBadRequest, "interview has no answers to evaluate")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EvaluationResponse{Evaluation: eval})
}

// HistoryResponse is the data payload for GET /interviews/history (200).
type HistoryResponse struct {
	Interviews []*domain.InterviewRecord `json:"interviews"`
}

// HistorySuccessResponse is the success response envelope for GET /interviews/history (200).
type HistorySuccessResponse struct {
	Data  HistoryResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// History godoc
// @Summary List the caller's finished interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.HistorySuccessResponse "data contains the interview records, newest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/history [get]
func (c *InterviewController) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	records, err := c.Service.History(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if records == nil {
		records = []*domain.InterviewRecord{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HistoryResponse{Interviews: records})
}

// writeSetupError maps setup wizard domain errors to HTTP responses.
func (c *InterviewController) writeSetupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSetupNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "setup not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "category not found")
	case errors.Is(err, domain.ErrTierNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "tier not found")
	case errors.Is(err, domain.ErrLevelUnavailable):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "level is not available for the selected category")
	case errors.Is(err, domain.ErrSetupIncomplete):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeBadRequest, "setup selection is incomplete")
	case errors.Is(err, domain.ErrCountUnknown):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCountUnknown, "available question count is still loading, retry shortly")
	case errors.Is(err, domain.ErrTierUnavailable):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "tier quota exceeds the available question count")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
