package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"seekers/internal/domain"
	"seekers/internal/skills"
)

type profileService struct {
	profileRepo domain.ProfileRepository
	assistant   domain.CVAssistant
}

// NewProfileService creates a ProfileService with the given repository and the AI assistant port.
func NewProfileService(profileRepo domain.ProfileRepository, assistant domain.CVAssistant) domain.ProfileService {
	return &profileService{profileRepo: profileRepo, assistant: assistant}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) CreateOrUpdate(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	profile.FullName = strings.TrimSpace(profile.FullName)
	if profile.Email != "" && !emailRegexp.MatchString(profile.Email) {
		return nil, fmt.Errorf("invalid email format")
	}
	for i := range profile.Skills {
		profile.Skills[i] = normalizeSkill(profile.Skills[i].Name, profile.Skills[i].Category)
	}
	for i := range profile.Experience {
		if profile.Experience[i].ID == "" {
			profile.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range profile.Education {
		if profile.Education[i].ID == "" {
			profile.Education[i].ID = uuid.NewString()
		}
	}

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.Get(ctx, profile.UserID)
}

func (s *profileService) AddExperience(ctx context.Context, userID string, exp *domain.Experience) (*domain.Profile, error) {
	if strings.TrimSpace(exp.Company) == "" || strings.TrimSpace(exp.Title) == "" {
		return nil, fmt.Errorf("experience requires a company and a title")
	}
	exp.ID = uuid.NewString()
	if err := s.profileRepo.AddExperience(ctx, userID, exp); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add experience: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *profileService) AddEducation(ctx context.Context, userID string, edu *domain.Education) (*domain.Profile, error) {
	if strings.TrimSpace(edu.School) == "" {
		return nil, fmt.Errorf("education requires a school")
	}
	edu.ID = uuid.NewString()
	if err := s.profileRepo.AddEducation(ctx, userID, edu); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add education: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *profileService) AddSkill(ctx context.Context, userID, name string, category domain.SkillCategory) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("skill name is required")
	}
	skill := normalizeSkill(name, category)
	if err := s.profileRepo.AddSkill(ctx, userID, skill); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add skill: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *profileService) EnhanceSummary(ctx context.Context, userID string) (string, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(profile.Summary) == "" {
		return "", fmt.Errorf("profile has no summary to enhance")
	}
	enhanced, err := s.assistant.EnhanceSummary(ctx, profile)
	if err != nil {
		return "", fmt.Errorf("failed to enhance summary: %w", err)
	}
	return enhanced, nil
}

func (s *profileService) OptimizeDescription(ctx context.Context, userID, experienceID, targetRole string) ([]string, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	var target *domain.Experience
	for i := range profile.Experience {
		if profile.Experience[i].ID == experienceID {
			target = &profile.Experience[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrExperienceNotFound
	}
	optimized, err := s.assistant.OptimizeDescription(ctx, target, targetRole)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize description: %w", err)
	}
	return optimized, nil
}

func (s *profileService) SuggestSkills(ctx context.Context, userID, targetRole string) ([]string, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.assistant.SuggestSkills(ctx, profile, targetRole)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest skills: %w", err)
	}
	// Never suggest a skill the profile already lists.
	existing := make(map[string]bool, len(profile.Skills))
	for _, sk := range profile.Skills {
		existing[strings.ToLower(sk.Name)] = true
	}
	filtered := suggestions[:0]
	for _, name := range suggestions {
		if !existing[strings.ToLower(name)] {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

func (s *profileService) GenerateHeadline(ctx context.Context, userID string, updateProfile bool) (string, *domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	headline, err := s.assistant.GenerateHeadline(ctx, profile)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate headline: %w", err)
	}
	if !updateProfile {
		return headline, profile, nil
	}
	profile.Headline = headline
	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return "", nil, fmt.Errorf("failed to save headline: %w", err)
	}
	return headline, profile, nil
}

// normalizeSkill fills in a missing or unknown category via the keyword classifier.
func normalizeSkill(name string, category domain.SkillCategory) domain.Skill {
	name = strings.TrimSpace(name)
	if !domain.ValidSkillCategory(category) {
		category = skills.Classify(name)
	}
	return domain.Skill{Name: name, Category: category}
}
