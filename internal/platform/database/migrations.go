package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent so the runner can be applied on every
// startup without tracking versions.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		address TEXT,
		hashed_password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stores (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		address TEXT NOT NULL,
		owner_id BIGINT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		store_id BIGINT NOT NULL REFERENCES stores(id),
		score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ratings_user_store_idx ON ratings (user_id, store_id)`,
	`CREATE INDEX IF NOT EXISTS stores_owner_idx ON stores (owner_id)`,
	`CREATE INDEX IF NOT EXISTS ratings_store_idx ON ratings (store_id)`,
}

// Migrate applies the schema to the given database.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	return nil
}
