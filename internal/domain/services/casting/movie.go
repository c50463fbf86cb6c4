package casting

import (
	"context"

	"casting/internal/domain/models/casting"
)

// CreateMovieRequest represents a request to create a movie
type CreateMovieRequest struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// UpdateMovieRequest represents a partial update; nil fields are left alone
type UpdateMovieRequest struct {
	Title       *string `json:"title"`
	ReleaseDate *string `json:"release_date"`
}

// AddCastRequest links an existing actor to a movie
type AddCastRequest struct {
	ActorID int64 `json:"actor_id"`
}

// MovieService defines business logic operations for movies
type MovieService interface {
	// CreateMovie validates and stores a new movie
	CreateMovie(ctx context.Context, req *CreateMovieRequest) (*casting.Movie, error)

	// GetMovie retrieves a movie by ID
	GetMovie(ctx context.Context, id int64) (*casting.Movie, error)

	// ListMovies returns a 1-based page of movies. A page past the end is ErrNotFound.
	ListMovies(ctx context.Context, page int) (*casting.Page[casting.Movie], error)

	// UpdateMovie applies a partial update
	UpdateMovie(ctx context.Context, id int64, req *UpdateMovieRequest) (*casting.Movie, error)

	// DeleteMovie removes a movie
	DeleteMovie(ctx context.Context, id int64) error

	// AddActor casts an actor in a movie
	AddActor(ctx context.Context, movieID int64, req *AddCastRequest) (*casting.Cast, error)

	// ListActors returns the cast of a movie
	ListActors(ctx context.Context, movieID int64) ([]casting.Actor, error)
}
