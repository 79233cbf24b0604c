package itinerary

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles itinerary item persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new itinerary repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert inserts a new item, filling in its id and timestamp
func (r *Repository) Insert(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO itinerary_items (group_id, day, title, notes, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.GroupID, item.Day, item.Title, item.Notes, item.Location,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create itinerary item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := `
		SELECT id, group_id, day, title, notes, location, created_at
		FROM itinerary_items
		WHERE id = $1
	`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.GroupID, &item.Day, &item.Title, &item.Notes, &item.Location, &item.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get itinerary item: %w", err)
	}

	return item, nil
}

// ListByGroupID retrieves a group's itinerary ordered by day
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64) ([]*Item, error) {
	query := `
		SELECT id, group_id, day, title, notes, location, created_at
		FROM itinerary_items
		WHERE group_id = $1
		ORDER BY day, id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID, &item.GroupID, &item.Day, &item.Title, &item.Notes, &item.Location, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Update writes the mutable columns of an item back
func (r *Repository) Update(ctx context.Context, item *Item) error {
	query := `
		UPDATE itinerary_items
		SET day = $2, title = $3, notes = $4, location = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, item.ID, item.Day, item.Title, item.Notes, item.Location)
	if err != nil {
		return fmt.Errorf("failed to update itinerary item: %w", err)
	}

	return nil
}

// Delete removes an item
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM itinerary_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary item: %w", err)
	}
	return nil
}
