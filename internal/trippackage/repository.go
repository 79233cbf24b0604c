package trippackage

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles trip package persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip package repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertPackage inserts a new package, filling in its id and timestamp
func (r *Repository) InsertPackage(ctx context.Context, p *TripPackage) error {
	query := `
		INSERT INTO trip_packages (name, description, destination, days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Destination, p.Days,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip package: %w", err)
	}

	return nil
}

// InsertItem inserts a new package item, filling in its id
func (r *Repository) InsertItem(ctx context.Context, item *PackageItem) error {
	query := `
		INSERT INTO trip_package_items (package_id, day, title, notes, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.PackageID, item.Day, item.Title, item.Notes, item.Location,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create package item: %w", err)
	}

	return nil
}

// GetPackageByID retrieves a package by its ID
func (r *Repository) GetPackageByID(ctx context.Context, id int64) (*TripPackage, error) {
	query := `
		SELECT id, name, description, destination, days, created_at
		FROM trip_packages
		WHERE id = $1
	`

	p := &TripPackage{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Destination, &p.Days, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip package: %w", err)
	}

	return p, nil
}

// GetItemsByPackageID retrieves a package's template items ordered by day
func (r *Repository) GetItemsByPackageID(ctx context.Context, packageID int64) ([]*PackageItem, error) {
	query := `
		SELECT id, package_id, day, title, notes, location
		FROM trip_package_items
		WHERE package_id = $1
		ORDER BY day, id
	`

	rows, err := r.db.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package items: %w", err)
	}
	defer rows.Close()

	var items []*PackageItem
	for rows.Next() {
		item := &PackageItem{}
		if err := rows.Scan(
			&item.ID, &item.PackageID, &item.Day, &item.Title, &item.Notes, &item.Location,
		); err != nil {
			return nil, fmt.Errorf("failed to scan package item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// DeletePackage removes a package; its items cascade
func (r *Repository) DeletePackage(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trip_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip package: %w", err)
	}
	return nil
}

// ListPackages retrieves all packages, optionally filtered by destination
func (r *Repository) ListPackages(ctx context.Context, destination string) ([]*TripPackage, error) {
	query := `
		SELECT id, name, description, destination, days, created_at
		FROM trip_packages
	`
	var args []interface{}
	if destination != "" {
		query += ` WHERE destination ILIKE $1`
		args = append(args, destination)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip packages: %w", err)
	}
	defer rows.Close()

	var packages []*TripPackage
	for rows.Next() {
		p := &TripPackage{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Destination, &p.Days, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip package: %w", err)
		}
		packages = append(packages, p)
	}

	return packages, nil
}

// InsertApplied records that a package was applied to a group
func (r *Repository) InsertApplied(ctx context.Context, a *AppliedPackage) error {
	query := `
		INSERT INTO applied_packages (group_id, package_id, applied_by)
		VALUES ($1, $2, $3)
		RETURNING id, applied_at
	`

	err := r.db.QueryRowContext(ctx, query,
		a.GroupID, a.PackageID, a.AppliedBy,
	).Scan(&a.ID, &a.AppliedAt)
	if err != nil {
		return fmt.Errorf("failed to record applied package: %w", err)
	}

	return nil
}

// DeleteApplied removes an applied-package record
func (r *Repository) DeleteApplied(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM applied_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete applied package: %w", err)
	}
	return nil
}
