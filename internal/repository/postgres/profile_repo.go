package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"seekers/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository returns a ProfileRepository backed by postgres.
// Skills, experience, and education are stored as JSONB documents on the
// profile row; they are always read and written as whole lists.
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, full_name, email, phone, title, headline, summary, location,
		       skills, experience, education, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &domain.Profile{}
	var skills, experience, education []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Title, &p.Headline, &p.Summary, &p.Location,
		&skills, &experience, &education, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalDoc(skills, &p.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	if err := unmarshalDoc(experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience: %w", err)
	}
	if err := unmarshalDoc(education, &p.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	return p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	skills, experience, education, err := marshalDocs(p)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO profiles (user_id, full_name, email, phone, title, headline, summary, location,
		                      skills, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			title = EXCLUDED.title,
			headline = EXCLUDED.headline,
			summary = EXCLUDED.summary,
			location = EXCLUDED.location,
			skills = EXCLUDED.skills,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.Title, p.Headline, p.Summary, p.Location,
		skills, experience, education, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *profileRepository) AddExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	return r.appendDoc(ctx, userID, "experience", exp)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	return r.appendDoc(ctx, userID, "education", edu)
}

func (r *profileRepository) AddSkill(ctx context.Context, userID string, skill domain.Skill) error {
	return r.appendDoc(ctx, userID, "skills", skill)
}

func (r *profileRepository) UpdateExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	doc, err := json.Marshal(exp)
	if err != nil {
		return fmt.Errorf("failed to encode experience: %w", err)
	}
	// Replace the matching element in place, keyed by its id.
	query := `
		UPDATE profiles
		SET experience = (
			SELECT COALESCE(jsonb_agg(CASE WHEN elem->>'id' = $2 THEN $3::jsonb ELSE elem END), '[]'::jsonb)
			FROM jsonb_array_elements(experience) AS elem
		), updated_at = now()
		WHERE user_id = $1 AND experience @> jsonb_build_array(jsonb_build_object('id', $2::text))
	`
	result, err := r.DB.ExecContext(ctx, query, userID, exp.ID, doc)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrExperienceNotFound
	}
	return nil
}

func (r *profileRepository) appendDoc(ctx context.Context, userID, column string, item any) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", column, err)
	}
	// column is one of our own constants, never user input.
	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s = %s || jsonb_build_array($2::jsonb), updated_at = now()
		WHERE user_id = $1
	`, column, column)
	result, err := r.DB.ExecContext(ctx, query, userID, doc)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func marshalDocs(p *domain.Profile) (skills, experience, education []byte, err error) {
	if skills, err = json.Marshal(emptyIfNilSkills(p.Skills)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	if experience, err = json.Marshal(emptyIfNilExperience(p.Experience)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode experience: %w", err)
	}
	if education, err = json.Marshal(emptyIfNilEducation(p.Education)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode education: %w", err)
	}
	return skills, experience, education, nil
}

func unmarshalDoc(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func emptyIfNilSkills(s []domain.Skill) []domain.Skill {
	if s == nil {
		return []domain.Skill{}
	}
	return s
}

func emptyIfNilExperience(e []domain.Experience) []domain.Experience {
	if e == nil {
		return []domain.Experience{}
	}
	return e
}

func emptyIfNilEducation(e []domain.Education) []domain.Education {
	if e == nil {
		return []domain.Education{}
	}
	return e
}
