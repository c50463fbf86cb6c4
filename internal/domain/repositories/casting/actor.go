package casting

import (
	"context"

	"casting/internal/domain/models/casting"
)

// ActorRepository defines data access operations for actors
type ActorRepository interface {
	// Create inserts an actor and fills in its generated ID and timestamps
	Create(ctx context.Context, actor *casting.Actor) error

	// GetByID retrieves an actor by ID
	GetByID(ctx context.Context, id int64) (*casting.Actor, error)

	// List returns one page of actors ordered by ID, plus the total count
	List(ctx context.Context, offset, limit int) ([]casting.Actor, int, error)

	// Update writes name, age, gender and updated_at
	Update(ctx context.Context, actor *casting.Actor) error

	// Delete removes an actor and their cast rows
	Delete(ctx context.Context, id int64) error
}
