package database

import (
	"database/sql"
	"fmt"
	"time"

	// Postgres driver
	_ "github.com/lib/pq"
)

// NewPostgresConnection opens and verifies a Postgres connection.
func NewPostgresConnection(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the schema if it does not exist. Note the deliberate
// absence of multi-table transactions anywhere else in the codebase: related
// writes go through the write coordinator instead.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS members (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			avatar_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS groups (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			destination TEXT,
			currency TEXT NOT NULL DEFAULT 'USD',
			start_date DATE,
			end_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS group_members (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			member_id BIGINT NOT NULL REFERENCES members(id),
			status TEXT NOT NULL DEFAULT 'INVITED',
			role TEXT NOT NULL DEFAULT 'MEMBER',
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (group_id, member_id)
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			payer_id BIGINT NOT NULL REFERENCES members(id),
			description TEXT NOT NULL,
			amount BIGINT NOT NULL,
			currency TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'general',
			split_policy TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS expense_splits (
			id BIGSERIAL PRIMARY KEY,
			expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			member_id BIGINT NOT NULL REFERENCES members(id),
			amount_owed BIGINT NOT NULL,
			percentage DOUBLE PRECISION,
			settled BOOLEAN NOT NULL DEFAULT FALSE,
			settled_at TIMESTAMPTZ,
			UNIQUE (expense_id, member_id)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			sender_id BIGINT NOT NULL REFERENCES members(id),
			receiver_id BIGINT NOT NULL REFERENCES members(id),
			amount BIGINT NOT NULL,
			currency TEXT NOT NULL,
			description TEXT,
			paid_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_by BIGINT NOT NULL REFERENCES members(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			uploader_id BIGINT NOT NULL REFERENCES members(id),
			name TEXT NOT NULL,
			content_type TEXT NOT NULL,
			size_bytes BIGINT NOT NULL,
			url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS itinerary_items (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			day INT NOT NULL,
			title TEXT NOT NULL,
			notes TEXT,
			location TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS trip_packages (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			destination TEXT NOT NULL,
			days INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS trip_package_items (
			id BIGSERIAL PRIMARY KEY,
			package_id BIGINT NOT NULL REFERENCES trip_packages(id) ON DELETE CASCADE,
			day INT NOT NULL,
			title TEXT NOT NULL,
			notes TEXT,
			location TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS applied_packages (
			id BIGSERIAL PRIMARY KEY,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			package_id BIGINT NOT NULL REFERENCES trip_packages(id),
			applied_by BIGINT NOT NULL REFERENCES members(id),
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			member_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			entity_type TEXT,
			entity_id BIGINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
