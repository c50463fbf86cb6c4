package casting

import (
	"context"
	"fmt"

	"casting/internal/domain"
	models "casting/internal/domain/models/casting"
	castingRepo "casting/internal/domain/repositories/casting"
	"casting/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCastRepository implements the CastRepository interface
type PostgresCastRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewCastRepository creates a new cast repository
func NewCastRepository(config *postgres.RepositoryConfig) castingRepo.CastRepository {
	return &PostgresCastRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Add links an actor to a movie. ON CONFLICT keeps an enclosing transaction
// usable, so the existing row can be looked up for the conflict error.
func (r *PostgresCastRepository) Add(ctx context.Context, cast *models.Cast) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (movie_id, actor_id)
		VALUES ($1, $2)
		ON CONFLICT (movie_id, actor_id) DO NOTHING
		RETURNING id
	`, r.tables.Casts)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, cast.MovieID, cast.ActorID).Scan(&cast.ID)
	if err != nil {
		switch {
		case postgres.IsPgNoRowsError(err):
			existingID, queryErr := r.getExistingCastID(ctx, cast.MovieID, cast.ActorID)
			if queryErr != nil {
				return fmt.Errorf("actor %d already cast in movie %d: %w", cast.ActorID, cast.MovieID, domain.ErrConflict)
			}
			return domain.NewConflictError("cast", existingID,
				"actor %d already cast in movie %d", cast.ActorID, cast.MovieID)
		case postgres.IsPgForeignKeyError(err):
			return fmt.Errorf("movie %d or actor %d: %w", cast.MovieID, cast.ActorID, domain.ErrNotFound)
		}
		return fmt.Errorf("add cast: %w", err)
	}

	return nil
}

// ListActors returns the actors cast in a movie
func (r *PostgresCastRepository) ListActors(ctx context.Context, movieID int64) ([]models.Actor, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.name, a.age, a.gender, a.created_at, a.updated_at
		FROM %s a
		JOIN %s c ON c.actor_id = a.id
		WHERE c.movie_id = $1
		ORDER BY a.id
	`, r.tables.Actors, r.tables.Casts)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("list cast: %w", err)
	}
	defer rows.Close()

	actors := []models.Actor{}
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cast actor: %w", err)
		}
		actors = append(actors, *actor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cast: %w", err)
	}

	return actors, nil
}

// getExistingCastID finds the row that made an insert conflict
func (r *PostgresCastRepository) getExistingCastID(ctx context.Context, movieID, actorID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s WHERE movie_id = $1 AND actor_id = $2
	`, r.tables.Casts)

	var id int64
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, movieID, actorID).Scan(&id); err != nil {
		return 0, fmt.Errorf("get existing cast ID: %w", err)
	}
	return id, nil
}
