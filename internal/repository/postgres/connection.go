package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"casting/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Movies string
	Actors string
	Casts  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Movies: fmt.Sprintf("%smovies", prefix),
		Actors: fmt.Sprintf("%sactors", prefix),
		Casts:  fmt.Sprintf("%scasts", prefix),
	}
}

// All returns the table names in dependency order (parents first)
func (t *TableNames) All() []string {
	return []string{t.Movies, t.Actors, t.Casts}
}

// CreateConnectionPool creates a pgx connection pool and pings the database.
//
// Managed Postgres providers front the database with PgBouncer in transaction
// pooling mode on port 6543, which does not support prepared statements. On
// that port the pool switches to QueryExecModeCacheDescribe unless the URL
// already sets default_query_exec_mode explicitly.
//
// Table names are interpolated with fmt.Sprintf before statements are
// prepared, so each prefix gets its own statement cache entries.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is
// none, so repositories join a transaction automatically.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
