package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds the idempotent DDL for the inventory database. Statements run
// in order inside one transaction.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		name TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS publishers (
		name TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS materials (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL REFERENCES categories(name),
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		min_threshold INTEGER NOT NULL DEFAULT 5 CHECK (min_threshold >= 0),
		max_threshold INTEGER NOT NULL DEFAULT 50,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (max_threshold >= min_threshold)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_materials_category ON materials (category)`,
	`CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL CHECK (type IN ('textbook', 'workbook')),
		subject TEXT NOT NULL,
		grade INTEGER NOT NULL CHECK (grade BETWEEN 1 AND 7),
		publisher TEXT REFERENCES publishers(name),
		author TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_publisher ON books (publisher)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL CHECK (role IN ('user', 'admin')),
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		revoked BOOLEAN NOT NULL DEFAULT FALSE,
		revoked_at TIMESTAMPTZ,
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS material_requests (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		material_id UUID,
		requested_quantity INTEGER NOT NULL CHECK (requested_quantity >= 1),
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		admin_notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		processed_at TIMESTAMPTZ,
		processed_by UUID
	)`,
	`CREATE INDEX IF NOT EXISTS idx_material_requests_status ON material_requests (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_material_requests_user ON material_requests (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_material_requests_material ON material_requests (material_id)`,
	`CREATE TABLE IF NOT EXISTS security_logs (
		id UUID PRIMARY KEY,
		event_type TEXT NOT NULL,
		username TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT '',
		success BOOLEAN NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_security_logs_username_created ON security_logs (username, created_at DESC)`,
}

// Migrate applies the schema. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range schema {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
