package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"seekers/internal/domain"
)

type jobService struct {
	jobRepo     domain.JobRepository
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	analyzer    domain.MatchAnalyzer
	logger      *slog.Logger
}

// NewJobService creates a JobService with the given repositories and the AI analyzer port.
func NewJobService(
	jobRepo domain.JobRepository,
	profileRepo domain.ProfileRepository,
	userRepo domain.UserRepository,
	analyzer domain.MatchAnalyzer,
	logger *slog.Logger,
) domain.JobService {
	return &jobService{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		analyzer:    analyzer,
		logger:      logger,
	}
}

func (s *jobService) List(ctx context.Context, search string, params domain.PaginationParams) (*domain.JobPage, error) {
	jobs, total, err := s.jobRepo.List(ctx, search, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return &domain.JobPage{
		Jobs:    jobs,
		Total:   total,
		HasMore: params.Offset()+len(jobs) < total,
	}, nil
}

func (s *jobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (s *jobService) AnalyzeMatch(ctx context.Context, userID, jobID string) (*domain.MatchAnalysis, error) {
	job, err := s.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileIncomplete
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if !profile.Complete() {
		return nil, domain.ErrProfileIncomplete
	}

	// Charge before calling the model; refund if the analysis fails.
	if _, err := s.userRepo.AdjustTokenBalance(ctx, userID, -domain.MatchAnalysisCost); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to deduct tokens: %w", err)
	}

	analysis, err := s.analyzer.AnalyzeMatch(ctx, job, profile)
	if err != nil {
		if _, refundErr := s.userRepo.AdjustTokenBalance(ctx, userID, domain.MatchAnalysisCost); refundErr != nil {
			s.logger.Error("failed to refund match analysis tokens",
				"user_id", userID, "job_id", jobID, "error", refundErr)
		}
		return nil, fmt.Errorf("failed to analyze match: %w", err)
	}
	return analysis, nil
}
