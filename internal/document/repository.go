package document

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles document metadata persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new document repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert inserts document metadata, filling in its id and timestamp
func (r *Repository) Insert(ctx context.Context, d *Document) error {
	query := `
		INSERT INTO documents (group_id, uploader_id, name, content_type, size_bytes, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		d.GroupID, d.UploaderID, d.Name, d.ContentType, d.SizeBytes, d.URL,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Document, error) {
	query := `
		SELECT id, group_id, uploader_id, name, content_type, size_bytes, url, created_at
		FROM documents
		WHERE id = $1
	`

	d := &Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.GroupID, &d.UploaderID, &d.Name, &d.ContentType, &d.SizeBytes, &d.URL, &d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return d, nil
}

// ListByGroupID retrieves documents for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64) ([]*Document, error) {
	query := `
		SELECT id, group_id, uploader_id, name, content_type, size_bytes, url, created_at
		FROM documents
		WHERE group_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var documents []*Document
	for rows.Next() {
		d := &Document{}
		if err := rows.Scan(
			&d.ID, &d.GroupID, &d.UploaderID, &d.Name, &d.ContentType, &d.SizeBytes, &d.URL, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
	}

	return documents, nil
}

// Delete removes document metadata
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
