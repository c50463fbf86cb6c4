package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the casting tables if they don't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Movies + ` (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			release_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Actors + ` (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			age INTEGER NOT NULL CHECK (age >= 0),
			gender VARCHAR(16),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Casts + ` (
			id BIGSERIAL PRIMARY KEY,
			movie_id BIGINT NOT NULL REFERENCES ` + tables.Movies + `(id) ON DELETE CASCADE,
			actor_id BIGINT NOT NULL REFERENCES ` + tables.Actors + `(id) ON DELETE CASCADE,
			UNIQUE (movie_id, actor_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Casts + `_actor ON ` + tables.Casts + `(actor_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops all casting tables in reverse dependency order
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	all := tables.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+all[i]+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}

// ClearData removes every row but keeps the tables
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmt := "TRUNCATE " + tables.Casts + ", " + tables.Actors + ", " + tables.Movies + " RESTART IDENTITY"
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
