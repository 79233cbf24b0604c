package payment

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert inserts a new payment, filling in its id and timestamp
func (r *Repository) Insert(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (group_id, sender_id, receiver_id, amount, currency, description, paid_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.GroupID, p.SenderID, p.ReceiverID, int64(p.Amount), p.Currency, p.Description, p.PaidAt, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `
		SELECT p.id, p.group_id, p.sender_id, p.receiver_id, p.amount, p.currency, p.description, p.paid_at, p.created_by, p.created_at,
		       s.username, rc.username
		FROM payments p
		JOIN members s ON p.sender_id = s.id
		JOIN members rc ON p.receiver_id = rc.id
		WHERE p.id = $1
	`

	p := &Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.GroupID, &p.SenderID, &p.ReceiverID, &p.Amount, &p.Currency,
		&p.Description, &p.PaidAt, &p.CreatedBy, &p.CreatedAt,
		&p.SenderUsername, &p.ReceiverUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// ListByGroupID retrieves payments for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64) ([]*Payment, error) {
	query := `
		SELECT p.id, p.group_id, p.sender_id, p.receiver_id, p.amount, p.currency, p.description, p.paid_at, p.created_by, p.created_at,
		       s.username, rc.username
		FROM payments p
		JOIN members s ON p.sender_id = s.id
		JOIN members rc ON p.receiver_id = rc.id
		WHERE p.group_id = $1
		ORDER BY p.paid_at DESC
	`

	return r.list(ctx, query, groupID)
}

// ListByGroupAndCurrency retrieves a group's payments in one currency, for
// balance computation.
func (r *Repository) ListByGroupAndCurrency(ctx context.Context, groupID int64, currency string) ([]*Payment, error) {
	query := `
		SELECT p.id, p.group_id, p.sender_id, p.receiver_id, p.amount, p.currency, p.description, p.paid_at, p.created_by, p.created_at,
		       s.username, rc.username
		FROM payments p
		JOIN members s ON p.sender_id = s.id
		JOIN members rc ON p.receiver_id = rc.id
		WHERE p.group_id = $1 AND p.currency = $2
		ORDER BY p.id
	`

	return r.list(ctx, query, groupID, currency)
}

// Delete removes a payment
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(
			&p.ID, &p.GroupID, &p.SenderID, &p.ReceiverID, &p.Amount, &p.Currency,
			&p.Description, &p.PaidAt, &p.CreatedBy, &p.CreatedAt,
			&p.SenderUsername, &p.ReceiverUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, nil
}
