package domain

import (
	"context"
	"errors"
	"io"
)

// Sentinel errors for resume upload validation.
var (
	ErrResumeNotPDF    = errors.New("resume must be a PDF file")
	ErrResumeTooLarge  = errors.New("resume file exceeds the size limit")
	ErrResumeUnreadable = errors.New("resume could not be read")
)

// MaxResumeSize is the upload cap for resume files (5 MB).
const MaxResumeSize = 5 << 20

// ParsedResume holds the profile fields extracted from an uploaded resume,
// shaped for form autofill.
// swagger:model ParsedResume
type ParsedResume struct {
	FullName       string       `json:"fullName"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Title          string       `json:"title"`
	Summary        string       `json:"summary"`
	Location       string       `json:"location"`
	Skills         []Skill      `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	RawTextPreview string       `json:"rawTextPreview"`
}

// PDFExtractor extracts plain text from a PDF document (infrastructure port).
type PDFExtractor interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

// ResumeService defines the business logic for resume parsing and autofill.
type ResumeService interface {
	// Parse validates the upload (PDF only, size-limited), extracts its text,
	// and maps it to profile fields.
	Parse(ctx context.Context, filename string, size int64, r io.ReaderAt) (*ParsedResume, error)
}
