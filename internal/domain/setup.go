package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Sentinel errors for the interview setup wizard.
var (
	ErrSetupNotFound     = errors.New("setup session not found")
	ErrSetupIncomplete   = errors.New("setup selection is incomplete")
	ErrSetupNotConfirmed = errors.New("setup has not been confirmed")
	ErrLevelUnavailable  = errors.New("level is not available for the selected category")
	ErrTierUnavailable   = errors.New("tier quota exceeds the available question count")
	ErrCountUnknown      = errors.New("available question count is not known yet")
)

// Setup is the in-progress interview setup selection: category, level, and
// tier, plus the fetched available-question count used to gate tier
// feasibility.
//
// Invariants, enforced by the mutating methods:
//   - Level is non-empty only if the selected category enables it. Changing
//     the category resets an incompatible level (and the tier with it).
//   - Tier is non-nil and Count known implies Tier.Quota <= *Count. A count
//     arriving after a tier was chosen re-validates and resets the tier.
//   - Count is nil ("unknown") whenever the (category, level) key changes,
//     until a fresh count for that key is applied. CountGen identifies the
//     key generation so a late count for a superseded key is discarded.
//
// Violations are corrected by resetting the offending field, never by
// keeping an invalid combination.
// swagger:model Setup
type Setup struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  *Category `json:"category"`
	Level     Level     `json:"level"`
	Tier      *Tier     `json:"tier"`
	Count     *int      `json:"available_count"`
	CountGen  uint64    `json:"count_gen"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSetup returns an empty setup session for the given user.
func NewSetup(id, userID string, now time.Time) *Setup {
	return &Setup{ID: id, UserID: userID, CreatedAt: now, UpdatedAt: now}
}

// SelectCategory replaces the selected category. If the previously selected
// level is not enabled under the new category, the level and tier are reset.
// Selecting the category that is already selected is a no-op, so repeated
// identical calls cause no spurious resets.
func (s *Setup) SelectCategory(c *Category) {
	if s.Category != nil && s.Category.ID == c.ID {
		s.Category = c
		return
	}
	s.Category = c
	if s.Level != "" && !c.Level.Enabled(s.Level) {
		s.Level = ""
		s.Tier = nil
	}
	s.invalidateCount()
	s.Confirmed = false
}

// SelectLevel sets the seniority level. It fails with ErrLevelUnavailable if
// no category is selected or the category does not enable the level.
// Selecting the current level again is a no-op.
func (s *Setup) SelectLevel(l Level) error {
	if s.Category == nil || !s.Category.Level.Enabled(l) {
		return ErrLevelUnavailable
	}
	if s.Level == l {
		return nil
	}
	s.Level = l
	s.invalidateCount()
	s.Confirmed = false
	return nil
}

// SelectTier sets the tier. While the available count is unknown the
// selection is rejected with ErrCountUnknown (retry once the count resolves);
// a tier whose quota exceeds the known count is rejected with
// ErrTierUnavailable.
func (s *Setup) SelectTier(t *Tier) error {
	if s.Category == nil || s.Level == "" {
		return ErrSetupIncomplete
	}
	if s.Count == nil {
		return ErrCountUnknown
	}
	if t.Quota > *s.Count {
		return ErrTierUnavailable
	}
	s.Tier = t
	s.Confirmed = false
	return nil
}

// CountKey returns the (category, level) key and its generation for a count
// fetch. ok is false when either half of the key is missing, in which case no
// fetch should be issued and the count stays unknown.
func (s *Setup) CountKey() (categoryID string, level Level, gen uint64, ok bool) {
	if s.Category == nil || s.Level == "" {
		return "", "", s.CountGen, false
	}
	return s.Category.ID, s.Level, s.CountGen, true
}

// ApplyCount records a fetched available-question count. It reports whether
// the count was applied: a count fetched for a superseded key generation is
// discarded so a stale response cannot overwrite a newer one. Applying a
// count that makes the selected tier infeasible resets the tier.
func (s *Setup) ApplyCount(gen uint64, count int) bool {
	if gen != s.CountGen || s.Category == nil || s.Level == "" {
		return false
	}
	s.Count = &count
	if s.Tier != nil && s.Tier.Quota > count {
		s.Tier = nil
		s.Confirmed = false
	}
	return true
}

// Complete reports whether category, level, and tier are all selected.
func (s *Setup) Complete() bool {
	return s.Category != nil && s.Level != "" && s.Tier != nil
}

// Confirm records the user's explicit acknowledgement. It fails with
// ErrSetupIncomplete unless the selection is fully populated.
func (s *Setup) Confirm() error {
	if !s.Complete() {
		return ErrSetupIncomplete
	}
	s.Confirmed = true
	return nil
}

// Config assembles the immutable session config from a confirmed setup.
func (s *Setup) Config() (InterviewConfig, error) {
	if !s.Complete() {
		return InterviewConfig{}, ErrSetupIncomplete
	}
	if !s.Confirmed {
		return InterviewConfig{}, ErrSetupNotConfirmed
	}
	return InterviewConfig{
		CategoryID:    s.Category.ID,
		CategoryTitle: s.Category.Title,
		Level:         s.Level,
		Tier:          s.Tier.Kind(),
		TokenUsage:    s.Tier.Price,
	}, nil
}

func (s *Setup) invalidateCount() {
	s.Count = nil
	s.CountGen++
}

// Kind maps a tier to its config label: "free" for free tiers, "premium" otherwise.
func (t *Tier) Kind() string {
	if t.Price == 0 || strings.Contains(strings.ToLower(t.Title), "free") {
		return "free"
	}
	return "premium"
}

// InterviewSession is the bootstrapped session payload persisted to the
// short-lived setup store: the submitted config and the question list the
// interview room consumes.
// swagger:model InterviewSession
type InterviewSession struct {
	Config    InterviewConfig `json:"config"`
	Questions []*Question     `json:"questions"`
	StartedAt time.Time       `json:"started_at"`
}

// SetupStore is the short-lived, session-scoped store for setup state and
// bootstrapped interview sessions. Entries expire on their own; nothing here
// is long-lived.
type SetupStore interface {
	SaveSetup(ctx context.Context, setup *Setup) error
	GetSetup(ctx context.Context, id string) (*Setup, error)
	DeleteSetup(ctx context.Context, id string) error
	SaveSession(ctx context.Context, userID string, session *InterviewSession) error
	GetSession(ctx context.Context, userID string) (*InterviewSession, error)
	DeleteSession(ctx context.Context, userID string) error
}

// InterviewService defines the business logic for the interview catalog, the
// setup wizard, and session bootstrap.
type InterviewService interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	ListTiers(ctx context.Context) ([]*Tier, error)
	QuestionCount(ctx context.Context, categoryID string, level Level) (int, error)

	CreateSetup(ctx context.Context, userID string) (*Setup, error)
	GetSetup(ctx context.Context, setupID, userID string) (*Setup, error)
	SelectCategory(ctx context.Context, setupID, userID, categoryID string) (*Setup, error)
	SelectLevel(ctx context.Context, setupID, userID string, level Level) (*Setup, error)
	SelectTier(ctx context.Context, setupID, userID, tierID string) (*Setup, error)
	Confirm(ctx context.Context, setupID, userID string) (*Setup, error)

	Start(ctx context.Context, userID string, cfg InterviewConfig) (*InterviewSession, error)
	Session(ctx context.Context, userID string) (*InterviewSession, error)

	Finish(ctx context.Context, userID string, answers []Answer) (*InterviewRecord, error)
	Evaluate(ctx context.Context, userID, interviewID string) (*InterviewEvaluation, error)
	History(ctx context.Context, userID string) ([]*InterviewRecord, error)
}
