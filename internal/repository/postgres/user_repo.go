package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"seekers/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository returns a UserRepository backed by postgres.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, salt, google_id, token_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.Salt, u.GoogleID, u.TokenBalance, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const userColumns = `id, email, name, password_hash, salt, COALESCE(google_id, ''), token_balance, created_at, updated_at`

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Salt, &u.GoogleID, &u.TokenBalance, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, googleID))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET email = $1, name = $2, password_hash = $3, salt = $4, google_id = NULLIF($5, ''), updated_at = $6
		WHERE id = $7
	`
	result, err := r.DB.ExecContext(ctx, query, u.Email, u.Name, u.PasswordHash, u.Salt, u.GoogleID, u.UpdatedAt, u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) AdjustTokenBalance(ctx context.Context, userID string, delta int) (int, error) {
	query := `
		UPDATE users
		SET token_balance = token_balance + $2, updated_at = now()
		WHERE id = $1 AND token_balance + $2 >= 0
		RETURNING token_balance
	`
	var balance int
	err := r.DB.QueryRowContext(ctx, query, userID, delta).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	// No row updated: either the user is missing or the balance would go
	// negative. Disambiguate so callers can report the right error.
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrUserNotFound
	}
	return 0, domain.ErrInsufficientBalance
}
