package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"seekers/internal/delivery/http/helpers"
	"seekers/internal/delivery/http/middleware"
	"seekers/internal/domain"
)

// JobController handles job search, detail, and AI match scoring endpoints.
type JobController struct {
	Logger  *slog.Logger
	Service domain.JobService
}

func NewJobController(logger *slog.Logger, svc domain.JobService) *JobController {
	return &JobController{Logger: logger, Service: svc}
}

// ListJobsResponse is the data payload for GET /jobs (200).
type ListJobsResponse struct {
	Jobs       []*domain.Job          `json:"jobs"`
	Total      int                    `json:"total"`
	HasMore    bool                   `json:"has_more"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListJobsSuccessResponse is the success response envelope for GET /jobs (200).
type ListJobsSuccessResponse struct {
	Data  ListJobsResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListJobs godoc
// @Summary List published jobs
// @Description Returns a page of published job listings, newest first. Optional search filters title, company, and location (case-insensitive substring).
// @Tags jobs
// @Produce json
// @Param search query string false "Filter by title, company, or location"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListJobsSuccessResponse "data contains jobs, total, and has_more"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /jobs [get]
func (c *JobController) ListJobs(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	params := helpers.ParsePagination(r)
	page, err := c.Service.List(r.Context(), search, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, page.Total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListJobsResponse{
		Jobs:       page.Jobs,
		Total:      page.Total,
		HasMore:    page.HasMore,
		Pagination: meta,
	})
}

// GetJobSuccessResponse is the success response envelope for GET /jobs/{jobID} (200).
type GetJobSuccessResponse struct {
	Data  *domain.Job       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetJob godoc
// @Summary Get a job by ID
// @Description Returns a single published job listing.
// @Tags jobs
// @Produce json
// @Param jobID path string true "Job ID (UUID)"
// @Success 200 {object} controllers.GetJobSuccessResponse "data contains the job"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /jobs/{jobID} [get]
func (c *JobController) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobID")
	if jobID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing jobID")
		return
	}
	job, err := c.Service.GetByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "job not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, job)
}

// AnalyzeMatchSuccessResponse is the success response envelope for POST /jobs/{jobID}/match (200).
type AnalyzeMatchSuccessResponse struct {
	Data  *domain.MatchAnalysis `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// AnalyzeMatch godoc
// @Summary Run AI match analysis against a job
// @Description Scores the authenticated user's profile against the job. Costs tokens; requires a profile with a summary, at least one skill, and at least one experience entry.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobID path string true "Job ID (UUID)"
// @Success 200 {object} controllers.AnalyzeMatchSuccessResponse "data contains the match analysis"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 402 {object} helpers.APIResponse "error.code: insufficient_balance"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: profile_incomplete"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /jobs/{jobID}/match [post]
func (c *JobController) AnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobID")
	if jobID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing jobID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	analysis, err := c.Service.AnalyzeMatch(r.Context(), userID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "job not found")
		case errors.Is(err, domain.ErrProfileIncomplete):
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeProfileIncomplete,
				"complete your profile summary, skills, and experience first")
		case errors.Is(err, domain.ErrInsufficientBalance):
			helpers.WriteJSONError(w, http.StatusPaymentRequired, helpers.ErrCodeInsufficientBalance,
				"not enough tokens for match analysis")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, analysis)
}
