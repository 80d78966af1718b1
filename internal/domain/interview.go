package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the interview catalog and session bootstrap.
var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTierNotFound         = errors.New("tier not found")
	ErrNoQuestions          = errors.New("no questions available")
	ErrMalformedQuestionSet = errors.New("malformed question set")
	ErrInterviewNotFound    = errors.New("interview not found")
	ErrNoAnswers            = errors.New("interview has no answers to evaluate")
)

// Level is a seniority level. It is a fixed enumeration, not persisted.
type Level string

// Seniority levels.
const (
	LevelJunior Level = "junior"
	LevelMiddle Level = "middle"
	LevelSenior Level = "senior"
)

// ValidLevel reports whether l is one of the known seniority levels.
func ValidLevel(l Level) bool {
	return l == LevelJunior || l == LevelMiddle || l == LevelSenior
}

// LevelInfo carries the display label and description for a seniority level.
// swagger:model LevelInfo
type LevelInfo struct {
	Value       Level  `json:"value"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Levels returns the fixed seniority level enumeration in display order.
func Levels() []LevelInfo {
	return []LevelInfo{
		{Value: LevelJunior, Title: "Junior", Description: "0-2 years of experience"},
		{Value: LevelMiddle, Title: "Middle", Description: "2-5 years of experience"},
		{Value: LevelSenior, Title: "Senior", Description: "5+ years of experience"},
	}
}

// LevelAvailability is a category's per-level availability map.
type LevelAvailability struct {
	Junior bool `json:"junior"`
	Middle bool `json:"middle"`
	Senior bool `json:"senior"`
}

// Enabled reports whether the given level is available.
func (a LevelAvailability) Enabled(l Level) bool {
	switch l {
	case LevelJunior:
		return a.Junior
	case LevelMiddle:
		return a.Middle
	case LevelSenior:
		return a.Senior
	}
	return false
}

// Category is an interview position/category. Categories are created and
// published by an external admin process and are read-only here.
// swagger:model Category
type Category struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Level       LevelAvailability `json:"level"`
	Published   bool              `json:"published"`
}

// Tier is a purchasable interview package: a question quota and a token cost.
// swagger:model Tier
type Tier struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       int      `json:"price"`
	Quota       int      `json:"quota"`
	Benefits    []string `json:"benefits"`
	Description string   `json:"description"`
	Popular     bool     `json:"popular"`
}

// Question is a single interview question.
// swagger:model Question
type Question struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Level      Level  `json:"level"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	FollowUp   bool   `json:"follow_up"`
	AudioURL   string `json:"audio_url"`
}

// InterviewConfig is the finalized, validated snapshot of a setup selection
// plus its token cost. Immutable once submitted.
// swagger:model InterviewConfig
type InterviewConfig struct {
	CategoryID    string `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle"`
	Level         Level  `json:"level"`
	Tier          string `json:"tier"`
	TokenUsage    int    `json:"tokenUsage"`
}

// Answer is one answered question in a finished interview: the question as
// asked plus the transcribed response.
// swagger:model Answer
type Answer struct {
	QuestionID     string `json:"questionId"`
	Question       string `json:"question"`
	Transcription  string `json:"transcription"`
	Duration       int    `json:"duration"`
	IsFollowUp     bool   `json:"isFollowUp"`
	Acknowledgment string `json:"acknowledgment,omitempty"`
}

// EvaluationScore is the per-competency breakdown of an evaluation.
// swagger:model EvaluationScore
type EvaluationScore struct {
	Category     string   `json:"category"`
	Score        int      `json:"score"`
	MaxScore     int      `json:"maxScore"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// InterviewEvaluation is the AI assessment of a finished interview.
// swagger:model InterviewEvaluation
type InterviewEvaluation struct {
	OverallScore    int               `json:"overallScore"`
	OverallGrade    string            `json:"overallGrade"`
	TotalQuestions  int               `json:"totalQuestions"`
	CompletionTime  string            `json:"completionTime"`
	Evaluations     []EvaluationScore `json:"evaluations"`
	Summary         string            `json:"summary"`
	Recommendations []string          `json:"recommendations"`
}

// InterviewRecord is the durable record of a finished interview: what was
// asked, what was answered, and the evaluation once one has been run. Unlike
// the live session it never expires.
// swagger:model InterviewRecord
type InterviewRecord struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Category    string               `json:"category"`
	Level       Level                `json:"level"`
	Tier        string               `json:"tier"`
	Questions   []*Question          `json:"questions"`
	Answers     []Answer             `json:"answers"`
	CompletedAt time.Time            `json:"completedAt"`
	Evaluated   bool                 `json:"evaluated"`
	Evaluation  *InterviewEvaluation `json:"evaluation,omitempty"`
}

// InterviewRepository defines the interface for durable interview records.
type InterviewRepository interface {
	Create(ctx context.Context, rec *InterviewRecord) error
	GetByID(ctx context.Context, id string) (*InterviewRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*InterviewRecord, error)
	SaveEvaluation(ctx context.Context, id string, eval *InterviewEvaluation) error
}

// CatalogRepository defines the interface for category, tier, and question storage.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListTiers(ctx context.Context) ([]*Tier, error)
	GetTier(ctx context.Context, id string) (*Tier, error)
	CountQuestions(ctx context.Context, categoryID string, level Level) (int, error)
	ListQuestions(ctx context.Context, categoryID string, level Level, limit int) ([]*Question, error)
}
