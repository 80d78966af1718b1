package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"seekers/internal/domain"
)

type interviewRepository struct {
	DB *sql.DB
}

// NewInterviewRepository returns an InterviewRepository backed by postgres.
// Questions, answers, and the evaluation are stored as JSONB documents on the
// interview row; they are always read and written whole.
func NewInterviewRepository(db *sql.DB) domain.InterviewRepository {
	return &interviewRepository{DB: db}
}

const interviewColumns = `id, user_id, category, level, tier, questions, answers, completed_at, evaluated, evaluation`

func (r *interviewRepository) Create(ctx context.Context, rec *domain.InterviewRecord) error {
	questions, err := json.Marshal(rec.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}
	answers, err := json.Marshal(emptyIfNilAnswers(rec.Answers))
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	query := `
		INSERT INTO interviews (id, user_id, category, level, tier, questions, answers, completed_at, evaluated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
	`
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Category, string(rec.Level), rec.Tier,
		questions, answers, rec.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*domain.InterviewRecord, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	rec, err := scanInterview(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterviewNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *interviewRepository) ListByUser(ctx context.Context, userID string) ([]*domain.InterviewRecord, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE user_id = $1 ORDER BY completed_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", err)
	}
	defer rows.Close()

	var records []*domain.InterviewRecord
	for rows.Next() {
		rec, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *interviewRepository) SaveEvaluation(ctx context.Context, id string, eval *domain.InterviewEvaluation) error {
	doc, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation: %w", err)
	}
	query := `UPDATE interviews SET evaluation = $2, evaluated = true WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, doc)
	if err != nil {
		return fmt.Errorf("failed to store evaluation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInterviewNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (*domain.InterviewRecord, error) {
	rec := &domain.InterviewRecord{}
	var level string
	var questions, answers, evaluation []byte
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Category, &level, &rec.Tier,
		&questions, &answers, &rec.CompletedAt, &rec.Evaluated, &evaluation,
	)
	if err != nil {
		return nil, err
	}
	rec.Level = domain.Level(level)
	if err := unmarshalDoc(questions, &rec.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	if err := unmarshalDoc(answers, &rec.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	if len(evaluation) > 0 {
		rec.Evaluation = &domain.InterviewEvaluation{}
		if err := json.Unmarshal(evaluation, rec.Evaluation); err != nil {
			return nil, fmt.Errorf("failed to decode evaluation: %w", err)
		}
	}
	return rec, nil
}

func emptyIfNilAnswers(a []domain.Answer) []domain.Answer {
	if a == nil {
		return []domain.Answer{}
	}
	return a
}
