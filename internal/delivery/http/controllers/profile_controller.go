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

// ProfileController handles the CV/profile builder endpoints, including the
// AI-assisted writing helpers.
type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{Logger: logger, Service: svc}
}

// ProfileSuccessResponse is the success response envelope for profile endpoints.
type ProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// SaveProfileRequest is the request body for POST /profile. The whole document is replaced.
type SaveProfileRequest struct {
	FullName   string              `json:"full_name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Title      string              `json:"title"`
	Headline   string              `json:"headline"`
	Summary    string              `json:"summary"`
	Location   string              `json:"location"`
	Skills     []domain.Skill      `json:"skills"`
	Experience []domain.Experience `json:"experience"`
	Education  []domain.Education  `json:"education"`
}

// Validate implements Validator.
func (s SaveProfileRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if s.Email != "" && !emailRegex.MatchString(strings.TrimSpace(s.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// SaveProfile godoc
// @Summary Create or replace the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveProfileRequest true "Profile document"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the saved profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [post]
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SaveProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile := &domain.Profile{
		UserID:     userID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		Headline:   req.Headline,
		Summary:    req.Summary,
		Location:   req.Location,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
	}
	saved, err := c.Service.CreateOrUpdate(r.Context(), profile)
	if err != nil {
		if strings.Contains(err.Error(), "invalid email") {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, saved)
}

// AddExperienceRequest is the request body for POST /profile/experience.
type AddExperienceRequest struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

// Validate implements Validator.
func (a AddExperienceRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Company) == "" {
		errs = append(errs, "company is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// AddExperience godoc
// @Summary Add a work experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddExperienceRequest true "Experience entry"
// @Success 201 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no profile yet)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/experience [post]
func (c *ProfileController) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req AddExperienceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	exp := &domain.Experience{
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Current:     req.Current,
		Description: req.Description,
	}
	profile, err := c.Service.AddExperience(r.Context(), userID, exp)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, profile)
}

// AddEducationRequest is the request body for POST /profile/education.
type AddEducationRequest struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear string `json:"start_year"`
	EndYear   string `json:"end_year"`
}

// Validate implements Validator.
func (a AddEducationRequest) Validate() []string {
	if strings.TrimSpace(a.School) == "" {
		return []string{"school is required"}
	}
	return nil
}

// AddEducation godoc
// @Summary Add an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddEducationRequest true "Education entry"
// @Success 201 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no profile yet)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/education [post]
func (c *ProfileController) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req AddEducationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	edu := &domain.Education{
		School:    req.School,
		Degree:    req.Degree,
		Field:     req.Field,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
	}
	profile, err := c.Service.AddEducation(r.Context(), userID, edu)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, profile)
}

// AddSkillRequest is the request body for POST /profile/skills. Category is
// optional; when omitted or unknown the skill is classified automatically.
type AddSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Validate implements Validator.
func (a AddSkillRequest) Validate() []string {
	if strings.TrimSpace(a.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// AddSkill godoc
// @Summary Add a skill
// @Description Adds a skill to the profile. If category is omitted it is classified automatically (hard_skill, soft_skill, or tool).
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddSkillRequest true "Skill"
// @Success 201 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no profile yet)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/skills [post]
func (c *ProfileController) AddSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req AddSkillRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.AddSkill(r.Context(), userID, req.Name, domain.SkillCategory(req.Category))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, profile)
}

// EnhanceSummaryResponse is the data payload for POST /cv/enhance-summary (200).
type EnhanceSummaryResponse struct {
	Summary string `json:"summary"`
}

// EnhanceSummarySuccessResponse is the success response envelope for POST /cv/enhance-summary (200).
type EnhanceSummarySuccessResponse struct {
	Data  EnhanceSummaryResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// EnhanceSummary godoc
// @Summary Rewrite the profile summary with AI
// @Description Returns an improved version of the current summary. Does not persist; the client applies it.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EnhanceSummarySuccessResponse "data contains the enhanced summary"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no summary yet)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cv/enhance-summary [post]
func (c *ProfileController) EnhanceSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	summary, err := c.Service.EnhanceSummary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		if strings.Contains(err.Error(), "no summary") {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EnhanceSummaryResponse{Summary: summary})
}

// OptimizeDescriptionRequest is the request body for POST /cv/optimize-description/{experienceID}.
type OptimizeDescriptionRequest struct {
	TargetRole string `json:"target_role"`
}

// OptimizeDescriptionResponse is the data payload for POST /cv/optimize-description/{experienceID} (200).
type OptimizeDescriptionResponse struct {
	Description []string `json:"description"`
}

// OptimizeDescriptionSuccessResponse is the success response envelope for POST /cv/optimize-description/{experienceID} (200).
type OptimizeDescriptionSuccessResponse struct {
	Data  OptimizeDescriptionResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// OptimizeDescription godoc
// @Summary Rewrite an experience description with AI
// @Description Returns optimized bullet points for the experience entry, optionally targeting a role. Does not persist.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param experienceID path string true "Experience entry ID"
// @Param body body OptimizeDescriptionRequest true "Optional target role"
// @Success 200 {object} controllers.OptimizeDescriptionSuccessResponse "data contains the optimized bullets"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cv/optimize-description/{experienceID} [post]
func (c *ProfileController) OptimizeDescription(w http.ResponseWriter, r *http.Request) {
	experienceID := r.PathValue("experienceID")
	if experienceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing experienceID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req OptimizeDescriptionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	description, err := c.Service.OptimizeDescription(r.Context(), userID, experienceID, req.TargetRole)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) || errors.Is(err, domain.ErrExperienceNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "experience not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, OptimizeDescriptionResponse{Description: description})
}

// SuggestSkillsRequest is the request body for POST /cv/suggest-skills.
type SuggestSkillsRequest struct {
	TargetRole string `json:"target_role"`
}

// SuggestSkillsResponse is the data payload for POST /cv/suggest-skills (200).
type SuggestSkillsResponse struct {
	Skills []string `json:"skills"`
}

// SuggestSkillsSuccessResponse is the success response envelope for POST /cv/suggest-skills (200).
type SuggestSkillsSuccessResponse struct {
	Data  SuggestSkillsResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// SuggestSkills godoc
// @Summary Suggest skills with AI
// @Description Returns skill suggestions based on the profile and an optional target role. Skills already on the profile are excluded.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SuggestSkillsRequest true "Optional target role"
// @Success 200 {object} controllers.SuggestSkillsSuccessResponse "data contains suggested skill names"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cv/suggest-skills [post]
func (c *ProfileController) SuggestSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SuggestSkillsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	suggestions, err := c.Service.SuggestSkills(r.Context(), userID, req.TargetRole)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SuggestSkillsResponse{Skills: suggestions})
}

// GenerateHeadlineRequest is the request body for POST /cv/generate-headline.
type GenerateHeadlineRequest struct {
	UpdateProfile bool `json:"update_profile"`
}

// GenerateHeadlineResponse is the data payload for POST /cv/generate-headline (200).
type GenerateHeadlineResponse struct {
	Headline string          `json:"headline"`
	Profile  *domain.Profile `json:"profile,omitempty"`
}

// GenerateHeadlineSuccessResponse is the success response envelope for POST /cv/generate-headline (200).
type GenerateHeadlineSuccessResponse struct {
	Data  GenerateHeadlineResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// GenerateHeadline godoc
// @Summary Generate a profile headline with AI
// @Description Generates a headline from the profile. With update_profile true the headline is persisted and the updated profile returned.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateHeadlineRequest true "Whether to persist the headline"
// @Success 200 {object} controllers.GenerateHeadlineSuccessResponse "data contains the headline"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cv/generate-headline [post]
func (c *ProfileController) GenerateHeadline(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req GenerateHeadlineRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	headline, profile, err := c.Service.GenerateHeadline(r.Context(), userID, req.UpdateProfile)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	resp := GenerateHeadlineResponse{Headline: headline}
	if req.UpdateProfile {
		resp.Profile = profile
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
