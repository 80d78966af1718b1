package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"seekers/internal/delivery/http/helpers"
	"seekers/internal/delivery/http/middleware"
	"seekers/internal/domain"
)

// ResumeController handles resume upload and parsing for profile autofill.
type ResumeController struct {
	Logger  *slog.Logger
	Service domain.ResumeService
}

func NewResumeController(logger *slog.Logger, svc domain.ResumeService) *ResumeController {
	return &ResumeController{Logger: logger, Service: svc}
}

// ParseResumeSuccessResponse is the success response envelope for POST /resume/parse (200).
type ParseResumeSuccessResponse struct {
	Data  *domain.ParsedResume `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ParseResume godoc
// @Summary Parse an uploaded resume
// @Description Accepts a PDF under the "resume" multipart form field (max 5 MB), extracts its text, and returns profile fields for form autofill. Nothing is persisted.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Resume PDF"
// @Success 200 {object} controllers.ParseResumeSuccessResponse "data contains the parsed fields"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not a PDF or unreadable)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /resume/parse [post]
func (c *ResumeController) ParseResume(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	// Cap the whole form slightly above the file limit so the size error
	// comes from our own check, not a generic multipart failure.
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxResumeSize+1<<20)
	if err := r.ParseMultipartForm(domain.MaxResumeSize); err != nil {
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, "resume file exceeds the 5 MB limit")
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing resume file field")
		return
	}
	defer file.Close()

	parsed, err := c.Service.Parse(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResumeNotPDF):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "resume must be a PDF file")
		case errors.Is(err, domain.ErrResumeTooLarge):
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, "resume file exceeds the 5 MB limit")
		case errors.Is(err, domain.ErrResumeUnreadable):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read text from the resume")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, parsed)
}
