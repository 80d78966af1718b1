package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"seekers/internal/domain"
)

type catalogRepository struct {
	DB *sql.DB
}

// NewCatalogRepository returns a CatalogRepository backed by postgres.
// Categories, tiers, and questions are maintained by an external admin
// process; this repository is read-only.
func NewCatalogRepository(db *sql.DB) domain.CatalogRepository {
	return &catalogRepository{DB: db}
}

const categoryColumns = `id, title, description, icon, level_junior, level_middle, level_senior, published`

func scanCategory(scan func(dest ...any) error) (*domain.Category, error) {
	c := &domain.Category{}
	err := scan(&c.ID, &c.Title, &c.Description, &c.Icon,
		&c.Level.Junior, &c.Level.Middle, &c.Level.Senior, &c.Published)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY title`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *catalogRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.DB.QueryRowContext(ctx, query, id).Scan)
}

const tierColumns = `id, title, price, quota, benefits, description, popular`

func scanTier(scan func(dest ...any) error) (*domain.Tier, error) {
	t := &domain.Tier{}
	var benefits []byte
	err := scan(&t.ID, &t.Title, &t.Price, &t.Quota, &benefits, &t.Description, &t.Popular)
	if err != nil {
		return nil, err
	}
	if len(benefits) > 0 {
		if err := json.Unmarshal(benefits, &t.Benefits); err != nil {
			return nil, fmt.Errorf("failed to decode tier benefits: %w", err)
		}
	}
	return t, nil
}

func (r *catalogRepository) ListTiers(ctx context.Context) ([]*domain.Tier, error) {
	query := `SELECT ` + tierColumns + ` FROM tiers ORDER BY price`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []*domain.Tier
	for rows.Next() {
		t, err := scanTier(rows.Scan)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *catalogRepository) GetTier(ctx context.Context, id string) (*domain.Tier, error) {
	query := `SELECT ` + tierColumns + ` FROM tiers WHERE id = $1`
	return scanTier(r.DB.QueryRowContext(ctx, query, id).Scan)
}

func (r *catalogRepository) CountQuestions(ctx context.Context, categoryID string, level domain.Level) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE category_id = $1 AND level = $2`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, categoryID, string(level)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *catalogRepository) ListQuestions(ctx context.Context, categoryID string, level domain.Level, limit int) ([]*domain.Question, error) {
	// Random order so repeated sessions on the same category/level do not
	// replay the same script.
	query := `
		SELECT id, category_id, level, type, content, follow_up, audio_url
		FROM questions
		WHERE category_id = $1 AND level = $2
		ORDER BY random()
		LIMIT $3
	`
	rows, err := r.DB.QueryContext(ctx, query, categoryID, string(level), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		q := &domain.Question{}
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.Level, &q.Type, &q.Content, &q.FollowUp, &q.AudioURL); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
