package notification

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles notification persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert inserts a new notification, filling in its id and timestamp
func (r *Repository) Insert(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (member_id, message, entity_type, entity_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		n.MemberID, n.Message, n.EntityType, n.EntityID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByMemberID retrieves a member's notifications, newest first
func (r *Repository) ListByMemberID(ctx context.Context, memberID int64, unreadOnly bool) ([]*Notification, error) {
	query := `
		SELECT id, member_id, message, is_read, entity_type, entity_id, created_at
		FROM notifications
		WHERE member_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(
			&n.ID, &n.MemberID, &n.Message, &n.IsRead, &n.EntityType, &n.EntityID, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkRead marks one of a member's notifications as read
func (r *Repository) MarkRead(ctx context.Context, id, memberID int64) (*Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND member_id = $2
		RETURNING id, member_id, message, is_read, entity_type, entity_id, created_at
	`

	n := &Notification{}
	err := r.db.QueryRowContext(ctx, query, id, memberID).Scan(
		&n.ID, &n.MemberID, &n.Message, &n.IsRead, &n.EntityType, &n.EntityID, &n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return n, nil
}

// MarkAllRead marks all of a member's notifications as read
func (r *Repository) MarkAllRead(ctx context.Context, memberID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE member_id = $1 AND is_read = FALSE`,
		memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
