package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"seekers/internal/domain"
)

type paymentRepository struct {
	DB *sql.DB
}

// NewPaymentRepository returns a PaymentRepository backed by postgres.
func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) Create(ctx context.Context, o *domain.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (id, user_id, package_type, tokens, gross_amount, status, snap_token, redirect_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		o.ID, o.UserID, o.PackageType, o.Tokens, o.GrossAmount, string(o.Status), o.SnapToken, o.RedirectURL, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	query := `
		SELECT id, user_id, package_type, tokens, gross_amount, status, snap_token, redirect_url, settled_at, created_at, updated_at
		FROM payment_orders
		WHERE id = $1
	`
	o := &domain.PaymentOrder{}
	var status string
	err := r.DB.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.PackageType, &o.Tokens, &o.GrossAmount, &status, &o.SnapToken, &o.RedirectURL, &o.SettledAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	o.Status = domain.PaymentStatus(status)
	return o, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, orderID string, status domain.PaymentStatus, settledAt *time.Time) (bool, error) {
	// Only pending orders transition; replayed notifications for an order
	// that already left pending are no-ops, which keeps settlement side
	// effects single-shot.
	query := `
		UPDATE payment_orders
		SET status = $2, settled_at = COALESCE($3, settled_at), updated_at = now()
		WHERE id = $1 AND status = 'pending' AND status <> $2
	`
	result, err := r.DB.ExecContext(ctx, query, orderID, string(status), settledAt)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return true, nil
	}
	// Nothing changed: distinguish "already processed" from "no such order".
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM payment_orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrOrderNotFound
	}
	return false, nil
}
