package casting

// Cast links an actor to a movie. Rows go away with either side.
type Cast struct {
	ID      int64 `json:"id" db:"id"`
	MovieID int64 `json:"movie_id" db:"movie_id"`
	ActorID int64 `json:"actor_id" db:"actor_id"`
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalItems int `json:"total"`
}
