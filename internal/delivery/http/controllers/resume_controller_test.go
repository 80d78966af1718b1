package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"seekers/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartResume(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestResumeController_ParseResume(t *testing.T) {
	parsed := &domain.ParsedResume{FullName: "Jane Doe", Email: "jane@example.com"}

	t.Run("success", func(t *testing.T) {
		body, contentType := multipartResume(t, "resume", "cv.pdf", []byte("%PDF-1.4 fake"))
		fake := &fakeResumeService{parsed: parsed}
		ctrl := NewResumeController(discardLogger(), fake)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/resume/parse", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.ParseResume(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Jane Doe")
	})

	t.Run("missing file field", func(t *testing.T) {
		body, contentType := multipartResume(t, "document", "cv.pdf", []byte("%PDF-1.4"))
		ctrl := NewResumeController(discardLogger(), &fakeResumeService{parsed: parsed})
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/resume/parse", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.ParseResume(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "missing resume file")
	})

	t.Run("not a pdf", func(t *testing.T) {
		body, contentType := multipartResume(t, "resume", "cv.docx", []byte("PK word doc"))
		fake := &fakeResumeService{err: domain.ErrResumeNotPDF}
		ctrl := NewResumeController(discardLogger(), fake)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/resume/parse", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.ParseResume(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "must be a PDF")
	})

	t.Run("too large", func(t *testing.T) {
		body, contentType := multipartResume(t, "resume", "cv.pdf", []byte("%PDF-1.4"))
		fake := &fakeResumeService{err: domain.ErrResumeTooLarge}
		ctrl := NewResumeController(discardLogger(), fake)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/resume/parse", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.ParseResume(rr, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Contains(t, rr.Body.String(), "payload_too_large")
	})

	t.Run("unreadable pdf", func(t *testing.T) {
		body, contentType := multipartResume(t, "resume", "cv.pdf", []byte("garbage"))
		fake := &fakeResumeService{err: domain.ErrResumeUnreadable}
		ctrl := NewResumeController(discardLogger(), fake)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/resume/parse", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.ParseResume(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "could not read")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := NewResumeController(discardLogger(), &fakeResumeService{})
		req := httptest.NewRequest(http.MethodPost, "/resume/parse", nil)
		rr := httptest.NewRecorder()

		ctrl.ParseResume(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
