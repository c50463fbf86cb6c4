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

// PostgresActorRepository implements the ActorRepository interface
type PostgresActorRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewActorRepository creates a new actor repository
func NewActorRepository(config *postgres.RepositoryConfig) castingRepo.ActorRepository {
	return &PostgresActorRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new actor
func (r *PostgresActorRepository) Create(ctx context.Context, actor *models.Actor) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, age, gender, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Actors)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		actor.Name,
		actor.Age,
		actor.Gender,
		actor.CreatedAt,
		actor.UpdatedAt,
	).Scan(&actor.ID, &actor.CreatedAt, &actor.UpdatedAt)
	if err != nil {
		if postgres.IsPgCheckError(err) {
			return fmt.Errorf("actor age: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create actor: %w", err)
	}

	return nil
}

// GetByID retrieves an actor by ID
func (r *PostgresActorRepository) GetByID(ctx context.Context, id int64) (*models.Actor, error) {
	query := fmt.Sprintf(`
		SELECT id, name, age, gender, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Actors)

	executor := postgres.GetExecutor(ctx, r.pool)
	actor, err := scanActor(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("actor %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}

	return actor, nil
}

// List retrieves one page of actors ordered by ID, with the total count
func (r *PostgresActorRepository) List(ctx context.Context, offset, limit int) ([]models.Actor, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Actors)
	if err := executor.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count actors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, age, gender, created_at, updated_at
		FROM %s
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, r.tables.Actors)

	rows, err := executor.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	actors := []models.Actor{}
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan actor: %w", err)
		}
		actors = append(actors, *actor)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate actors: %w", err)
	}

	return actors, total, nil
}

// Update updates an actor's name, age, gender and updated_at timestamp
func (r *PostgresActorRepository) Update(ctx context.Context, actor *models.Actor) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, age = $2, gender = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Actors)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		actor.Name,
		actor.Age,
		actor.Gender,
		actor.UpdatedAt,
		actor.ID,
	)
	if err != nil {
		if postgres.IsPgCheckError(err) {
			return fmt.Errorf("actor age: %w", domain.ErrValidation)
		}
		return fmt.Errorf("update actor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("actor %d: %w", actor.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an actor; cast rows cascade
func (r *PostgresActorRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Actors)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete actor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("actor %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanActor(row rowScanner) (*models.Actor, error) {
	var actor models.Actor
	err := row.Scan(
		&actor.ID,
		&actor.Name,
		&actor.Age,
		&actor.Gender,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &actor, nil
}
