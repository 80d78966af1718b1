package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Sentinel errors for profile operations.
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileIncomplete  = errors.New("profile is incomplete")
	ErrExperienceNotFound = errors.New("experience not found")
)

// SkillCategory classifies a skill as a hard skill, soft skill, or tool.
type SkillCategory string

// Skill categories.
const (
	SkillHard SkillCategory = "hard_skill"
	SkillSoft SkillCategory = "soft_skill"
	SkillTool SkillCategory = "tool"
)

// ValidSkillCategory reports whether c is one of the known skill categories.
func ValidSkillCategory(c SkillCategory) bool {
	return c == SkillHard || c == SkillSoft || c == SkillTool
}

// Skill is a named skill with its category.
// swagger:model Skill
type Skill struct {
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

// Experience is a single work-history entry on a profile.
// swagger:model Experience
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

// Education is a single education entry on a profile.
// swagger:model Education
type Education struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear string `json:"start_year"`
	EndYear   string `json:"end_year"`
}

// Profile is a seeker's CV: contact details, summary, skills, and history.
// swagger:model Profile
type Profile struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	FullName   string       `json:"full_name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Title      string       `json:"title"`
	Headline   string       `json:"headline"`
	Summary    string       `json:"summary"`
	Location   string       `json:"location"`
	Skills     []Skill      `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Complete reports whether the profile carries enough substance for AI match
// analysis: a summary plus at least one skill and one experience entry.
func (p *Profile) Complete() bool {
	return strings.TrimSpace(p.Summary) != "" && len(p.Skills) > 0 && len(p.Experience) > 0
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
	AddExperience(ctx context.Context, userID string, exp *Experience) error
	UpdateExperience(ctx context.Context, userID string, exp *Experience) error
	AddEducation(ctx context.Context, userID string, edu *Education) error
	AddSkill(ctx context.Context, userID string, skill Skill) error
}

// ProfileService defines the business logic for the CV/profile builder.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	CreateOrUpdate(ctx context.Context, profile *Profile) (*Profile, error)
	AddExperience(ctx context.Context, userID string, exp *Experience) (*Profile, error)
	AddEducation(ctx context.Context, userID string, edu *Education) (*Profile, error)
	AddSkill(ctx context.Context, userID, name string, category SkillCategory) (*Profile, error)
	EnhanceSummary(ctx context.Context, userID string) (string, error)
	OptimizeDescription(ctx context.Context, userID, experienceID, targetRole string) ([]string, error)
	SuggestSkills(ctx context.Context, userID, targetRole string) ([]string, error)
	GenerateHeadline(ctx context.Context, userID string, updateProfile bool) (string, *Profile, error)
}
