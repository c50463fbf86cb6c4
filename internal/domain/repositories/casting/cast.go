package casting

import (
	"context"

	"casting/internal/domain/models/casting"
)

// CastRepository manages the movie/actor join table
type CastRepository interface {
	// Add links an actor to a movie. Linking the same pair twice is a conflict.
	Add(ctx context.Context, cast *casting.Cast) error

	// ListActors returns the actors cast in a movie, ordered by actor ID
	ListActors(ctx context.Context, movieID int64) ([]casting.Actor, error)
}
