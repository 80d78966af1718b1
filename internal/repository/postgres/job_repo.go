package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"seekers/internal/domain"
)

type jobRepository struct {
	DB *sql.DB
}

// NewJobRepository returns a JobRepository backed by postgres.
func NewJobRepository(db *sql.DB) domain.JobRepository {
	return &jobRepository{DB: db}
}

func (r *jobRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Job, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM jobs
		WHERE published = true
		  AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR company ILIKE '%' || $1 || '%' OR location ILIKE '%' || $1 || '%')
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, company, location, type, description, requirements,
		       salary_min, salary_max, published, posted_at, created_at, updated_at
		FROM jobs
		WHERE published = true
		  AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR company ILIKE '%' || $1 || '%' OR location ILIKE '%' || $1 || '%')
		ORDER BY posted_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j := &domain.Job{}
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Description, pq.Array(&j.Requirements),
			&j.SalaryMin, &j.SalaryMax, &j.Published, &j.PostedAt, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT id, title, company, location, type, description, requirements,
		       salary_min, salary_max, published, posted_at, created_at, updated_at
		FROM jobs
		WHERE id = $1 AND published = true
	`
	j := &domain.Job{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Description, pq.Array(&j.Requirements),
		&j.SalaryMin, &j.SalaryMax, &j.Published, &j.PostedAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return j, nil
}
