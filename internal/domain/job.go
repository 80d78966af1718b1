package domain

import (
	"context"
	"errors"
	"time"
)

// ErrJobNotFound is returned when a job listing does not exist or is unpublished.
var ErrJobNotFound = errors.New("job not found")

// MatchAnalysisCost is the token price of one AI match analysis.
const MatchAnalysisCost = 2

// Job represents a published job listing.
// swagger:model Job
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	SalaryMin    int       `json:"salary_min"`
	SalaryMax    int       `json:"salary_max"`
	Published    bool      `json:"published"`
	PostedAt     time.Time `json:"posted_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobPage is one page of job listings with pagination totals.
type JobPage struct {
	Jobs    []*Job `json:"jobs"`
	Total   int    `json:"total"`
	HasMore bool   `json:"has_more"`
}

// MatchAnalysis is the AI-produced fit assessment of a profile against a job.
// swagger:model MatchAnalysis
type MatchAnalysis struct {
	MatchScore       int      `json:"matchScore"`
	MatchExplanation string   `json:"matchExplanation"`
	MatchingPoints   []string `json:"matchingPoints"`
	MissingPoints    []string `json:"missingPoints"`
}

// MatchAnalyzer produces a MatchAnalysis for a profile against a job (AI port).
type MatchAnalyzer interface {
	AnalyzeMatch(ctx context.Context, job *Job, profile *Profile) (*MatchAnalysis, error)
}

// JobRepository defines the interface for job listing storage
type JobRepository interface {
	List(ctx context.Context, search string, params PaginationParams) (jobs []*Job, total int, err error)
	GetByID(ctx context.Context, id string) (*Job, error)
}

// JobService defines the business logic for job search, detail, and AI match scoring.
type JobService interface {
	List(ctx context.Context, search string, params PaginationParams) (*JobPage, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	// AnalyzeMatch runs AI match scoring for the user's profile against the
	// job. It fails with ErrProfileIncomplete if the profile lacks substance
	// and with ErrInsufficientBalance if the user cannot afford the analysis.
	AnalyzeMatch(ctx context.Context, userID, jobID string) (*MatchAnalysis, error)
}
