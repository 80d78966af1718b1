package domain

import "context"

// CVAssistant is the AI port for the CV builder: summary enhancement,
// experience description optimization, skill suggestions, and headlines.
type CVAssistant interface {
	EnhanceSummary(ctx context.Context, profile *Profile) (string, error)
	OptimizeDescription(ctx context.Context, exp *Experience, targetRole string) ([]string, error)
	SuggestSkills(ctx context.Context, profile *Profile, targetRole string) ([]string, error)
	GenerateHeadline(ctx context.Context, profile *Profile) (string, error)
}

// InterviewEvaluator is the AI port for grading a finished interview. The
// evaluator fills the scores, grade, feedback, summary, and recommendations;
// the caller owns the bookkeeping fields (question total, completion time).
type InterviewEvaluator interface {
	EvaluateInterview(ctx context.Context, rec *InterviewRecord) (*InterviewEvaluation, error)
}
