package casting

import (
	"context"
	"fmt"
	"time"

	"casting/internal/domain"
	models "casting/internal/domain/models/casting"
	castingRepo "casting/internal/domain/repositories/casting"
	"casting/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMovieRepository implements the MovieRepository interface
type PostgresMovieRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(config *postgres.RepositoryConfig) castingRepo.MovieRepository {
	return &PostgresMovieRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new movie
func (r *PostgresMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Movies)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		movie.Title,
		movie.ReleaseDate.Time,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create movie: %w", err)
	}

	return nil
}

// GetByID retrieves a movie by ID
func (r *PostgresMovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	query := fmt.Sprintf(`
		SELECT id, title, release_date, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Movies)

	executor := postgres.GetExecutor(ctx, r.pool)
	movie, err := scanMovie(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("movie %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	return movie, nil
}

// List retrieves one page of movies ordered by ID, with the total count
func (r *PostgresMovieRepository) List(ctx context.Context, offset, limit int) ([]models.Movie, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Movies)
	if err := executor.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, title, release_date, created_at, updated_at
		FROM %s
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, r.tables.Movies)

	rows, err := executor.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate movies: %w", err)
	}

	return movies, total, nil
}

// Update updates a movie's title, release date and updated_at timestamp
func (r *PostgresMovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, release_date = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Movies)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		movie.Title,
		movie.ReleaseDate.Time,
		movie.UpdatedAt,
		movie.ID,
	)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a movie; cast rows cascade
func (r *PostgresMovieRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Movies)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var movie models.Movie
	var releaseDate time.Time
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&releaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	movie.ReleaseDate = models.NewDate(releaseDate)
	return &movie, nil
}
