package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seekers/internal/domain"
)

type interviewService struct {
	catalogRepo   domain.CatalogRepository
	setupStore    domain.SetupStore
	interviewRepo domain.InterviewRepository
	userRepo      domain.UserRepository
	evaluator     domain.InterviewEvaluator
	logger        *slog.Logger
}

// NewInterviewService creates an InterviewService over the catalog, the
// session-scoped setup store, the durable interview record repository, and
// the user repository (for token charges).
func NewInterviewService(
	catalogRepo domain.CatalogRepository,
	setupStore domain.SetupStore,
	interviewRepo domain.InterviewRepository,
	userRepo domain.UserRepository,
	evaluator domain.InterviewEvaluator,
	logger *slog.Logger,
) domain.InterviewService {
	return &interviewService{
		catalogRepo:   catalogRepo,
		setupStore:    setupStore,
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
		evaluator:     evaluator,
		logger:        logger,
	}
}

func (s *interviewService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	published := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.Published {
			published = append(published, c)
		}
	}
	return published, nil
}

func (s *interviewService) ListTiers(ctx context.Context) ([]*domain.Tier, error) {
	tiers, err := s.catalogRepo.ListTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", err)
	}
	return tiers, nil
}

func (s *interviewService) QuestionCount(ctx context.Context, categoryID string, level domain.Level) (int, error) {
	if !domain.ValidLevel(level) {
		return 0, domain.ErrLevelUnavailable
	}
	if _, err := s.getPublishedCategory(ctx, categoryID); err != nil {
		return 0, err
	}
	count, err := s.catalogRepo.CountQuestions(ctx, categoryID, level)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func (s *interviewService) CreateSetup(ctx context.Context, userID string) (*domain.Setup, error) {
	setup := domain.NewSetup(uuid.NewString(), userID, time.Now())
	if err := s.setupStore.SaveSetup(ctx, setup); err != nil {
		return nil, fmt.Errorf("failed to save setup: %w", err)
	}
	return setup, nil
}

func (s *interviewService) GetSetup(ctx context.Context, setupID, userID string) (*domain.Setup, error) {
	return s.loadSetup(ctx, setupID, userID)
}

func (s *interviewService) SelectCategory(ctx context.Context, setupID, userID, categoryID string) (*domain.Setup, error) {
	setup, err := s.loadSetup(ctx, setupID, userID)
	if err != nil {
		return nil, err
	}
	category, err := s.getPublishedCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	setup.SelectCategory(category)
	s.refreshCount(ctx, setup)
	return s.saveSetup(ctx, setup)
}

func (s *interviewService) SelectLevel(ctx context.Context, setupID, userID string, level domain.Level) (*domain.Setup, error) {
	setup, err := s.loadSetup(ctx, setupID, userID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidLevel(level) {
		return nil, domain.ErrLevelUnavailable
	}
	if err := setup.SelectLevel(level); err != nil {
		return nil, err
	}
	s.refreshCount(ctx, setup)
	return s.saveSetup(ctx, setup)
}

func (s *interviewService) SelectTier(ctx context.Context, setupID, userID, tierID string) (*domain.Setup, error) {
	setup, err := s.loadSetup(ctx, setupID, userID)
	if err != nil {
		return nil, err
	}
	if setup.Count == nil {
		// The count can be missing after a store round-trip; try once more
		// before rejecting the selection.
		s.refreshCount(ctx, setup)
	}
	tier, err := s.catalogRepo.GetTier(ctx, tierID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}
	if err := setup.SelectTier(tier); err != nil {
		return nil, err
	}
	return s.saveSetup(ctx, setup)
}

func (s *interviewService) Confirm(ctx context.Context, setupID, userID string) (*domain.Setup, error) {
	setup, err := s.loadSetup(ctx, setupID, userID)
	if err != nil {
		return nil, err
	}
	if err := setup.Confirm(); err != nil {
		return nil, err
	}
	return s.saveSetup(ctx, setup)
}

func (s *interviewService) Start(ctx context.Context, userID string, cfg domain.InterviewConfig) (*domain.InterviewSession, error) {
	category, err := s.getPublishedCategory(ctx, cfg.CategoryID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidLevel(cfg.Level) || !category.Level.Enabled(cfg.Level) {
		return nil, domain.ErrLevelUnavailable
	}
	tier, err := s.findTier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	questions, err := s.catalogRepo.ListQuestions(ctx, cfg.CategoryID, cfg.Level, tier.Quota)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	for _, q := range questions {
		if q.ID == "" || q.Content == "" {
			return nil, domain.ErrMalformedQuestionSet
		}
	}

	// Charge before persisting the session; a failed write refunds.
	if cfg.TokenUsage > 0 {
		if _, err := s.userRepo.AdjustTokenBalance(ctx, userID, -cfg.TokenUsage); err != nil {
			if errors.Is(err, domain.ErrInsufficientBalance) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to deduct tokens: %w", err)
		}
	}

	session := &domain.InterviewSession{
		Config:    cfg,
		Questions: questions,
		StartedAt: time.Now(),
	}
	if err := s.persistSession(ctx, userID, session); err != nil {
		if cfg.TokenUsage > 0 {
			if _, refundErr := s.userRepo.AdjustTokenBalance(ctx, userID, cfg.TokenUsage); refundErr != nil {
				s.logger.Error("failed to refund interview tokens",
					"user_id", userID, "error", refundErr)
			}
		}
		return nil, err
	}
	return session, nil
}

func (s *interviewService) Session(ctx context.Context, userID string) (*domain.InterviewSession, error) {
	session, err := s.setupStore.GetSession(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSetupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// Finish turns the active session into a durable interview record and clears
// the session so a stale one cannot be finished twice.
func (s *interviewService) Finish(ctx context.Context, userID string, answers []domain.Answer) (*domain.InterviewRecord, error) {
	session, err := s.setupStore.GetSession(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSetupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	rec := &domain.InterviewRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    session.Config.CategoryTitle,
		Level:       session.Config.Level,
		Tier:        session.Config.Tier,
		Questions:   session.Questions,
		Answers:     answers,
		CompletedAt: time.Now(),
	}
	if err := s.interviewRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record interview: %w", err)
	}
	if err := s.setupStore.DeleteSession(ctx, userID); err != nil {
		// The record is already durable; an expiring leftover session is
		// harmless, so log and move on.
		s.logger.Warn("failed to delete finished session", "user_id", userID, "error", err)
	}
	return rec, nil
}

// Evaluate runs the AI assessment of a finished interview. A record that has
// already been evaluated returns the stored evaluation without another AI
// call.
func (s *interviewService) Evaluate(ctx context.Context, userID, interviewID string) (*domain.InterviewEvaluation, error) {
	rec, err := s.loadRecord(ctx, interviewID, userID)
	if err != nil {
		return nil, err
	}
	if rec.Evaluated && rec.Evaluation != nil {
		return rec.Evaluation, nil
	}
	if len(rec.Answers) == 0 {
		return nil, domain.ErrNoAnswers
	}

	eval, err := s.evaluator.EvaluateInterview(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate interview: %w", err)
	}
	eval.TotalQuestions = len(rec.Questions)
	eval.CompletionTime = answersDuration(rec.Answers)

	if err := s.interviewRepo.SaveEvaluation(ctx, rec.ID, eval); err != nil {
		return nil, fmt.Errorf("failed to store evaluation: %w", err)
	}
	return eval, nil
}

func (s *interviewService) History(ctx context.Context, userID string) ([]*domain.InterviewRecord, error) {
	records, err := s.interviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return records, nil
}

func (s *interviewService) loadRecord(ctx context.Context, interviewID, userID string) (*domain.InterviewRecord, error) {
	rec, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrInterviewNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	if rec.UserID != userID {
		return nil, domain.ErrInterviewNotFound
	}
	return rec, nil
}

// answersDuration sums the per-answer durations into a display string.
func answersDuration(answers []domain.Answer) string {
	var total int
	for _, a := range answers {
		total += a.Duration
	}
	return (time.Duration(total) * time.Second).String()
}

// persistSession writes the session and reads it back to verify it is
// actually loadable before the caller is told the interview started.
func (s *interviewService) persistSession(ctx context.Context, userID string, session *domain.InterviewSession) error {
	if err := s.setupStore.SaveSession(ctx, userID, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	stored, err := s.setupStore.GetSession(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to verify stored session: %w", err)
	}
	if stored.Config != session.Config || len(stored.Questions) != len(session.Questions) {
		return fmt.Errorf("stored session does not match submitted session")
	}
	return nil
}

// findTier resolves the catalog tier the config refers to: matching kind
// label and an exact token price. The price check stops a tampered config
// from starting a premium interview at a free price.
func (s *interviewService) findTier(ctx context.Context, cfg domain.InterviewConfig) (*domain.Tier, error) {
	tiers, err := s.catalogRepo.ListTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", err)
	}
	for _, t := range tiers {
		if t.Kind() == cfg.Tier && t.Price == cfg.TokenUsage {
			return t, nil
		}
	}
	return nil, domain.ErrTierNotFound
}

func (s *interviewService) getPublishedCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.catalogRepo.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if !category.Published {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// refreshCount fetches the available-question count for the setup's current
// (category, level) key. A fetch failure applies a zero count: with no count
// every tier is infeasible, which is the safe side of the gate.
func (s *interviewService) refreshCount(ctx context.Context, setup *domain.Setup) {
	categoryID, level, gen, ok := setup.CountKey()
	if !ok {
		return
	}
	count, err := s.catalogRepo.CountQuestions(ctx, categoryID, level)
	if err != nil {
		s.logger.Warn("failed to count questions, treating as zero",
			"category_id", categoryID, "level", string(level), "error", err)
		count = 0
	}
	setup.ApplyCount(gen, count)
}

func (s *interviewService) loadSetup(ctx context.Context, setupID, userID string) (*domain.Setup, error) {
	setup, err := s.setupStore.GetSetup(ctx, setupID)
	if err != nil {
		if errors.Is(err, domain.ErrSetupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load setup: %w", err)
	}
	if setup.UserID != userID {
		return nil, domain.ErrSetupNotFound
	}
	return setup, nil
}

func (s *interviewService) saveSetup(ctx context.Context, setup *domain.Setup) (*domain.Setup, error) {
	setup.UpdatedAt = time.Now()
	if err := s.setupStore.SaveSetup(ctx, setup); err != nil {
		return nil, fmt.Errorf("failed to save setup: %w", err)
	}
	return setup, nil
}
