package casting

import (
	"context"

	"casting/internal/domain/models/casting"
	"casting/internal/httputil"
)

// CreateActorRequest represents a request to create an actor
type CreateActorRequest struct {
	Name   string  `json:"name"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

// UpdateActorRequest represents a partial update.
// Gender distinguishes absent (keep) from null (clear).
type UpdateActorRequest struct {
	Name   *string                 `json:"name"`
	Age    *int                    `json:"age"`
	Gender httputil.OptionalString `json:"gender"`
}

// ActorService defines business logic operations for actors
type ActorService interface {
	// CreateActor validates and stores a new actor
	CreateActor(ctx context.Context, req *CreateActorRequest) (*casting.Actor, error)

	// GetActor retrieves an actor by ID
	GetActor(ctx context.Context, id int64) (*casting.Actor, error)

	// ListActors returns a 1-based page of actors. A page past the end is ErrNotFound.
	ListActors(ctx context.Context, page int) (*casting.Page[casting.Actor], error)

	// UpdateActor applies a partial update
	UpdateActor(ctx context.Context, id int64, req *UpdateActorRequest) (*casting.Actor, error)

	// DeleteActor removes an actor
	DeleteActor(ctx context.Context, id int64) error
}
