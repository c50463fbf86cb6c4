package casting

import (
	"context"

	"casting/internal/domain/models/casting"
)

// MovieRepository defines data access operations for movies
type MovieRepository interface {
	// Create inserts a movie and fills in its generated ID and timestamps
	Create(ctx context.Context, movie *casting.Movie) error

	// GetByID retrieves a movie by ID
	GetByID(ctx context.Context, id int64) (*casting.Movie, error)

	// List returns one page of movies ordered by ID, plus the total count
	List(ctx context.Context, offset, limit int) ([]casting.Movie, int, error)

	// Update writes title, release date and updated_at
	Update(ctx context.Context, movie *casting.Movie) error

	// Delete removes a movie and its cast rows
	Delete(ctx context.Context, id int64) error
}
