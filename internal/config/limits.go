package config

const (
	// MaxMovieTitleLength is the maximum length for movie titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxMovieTitleLength = 255

	// MaxActorNameLength is the maximum length for actor names.
	// Same as movie titles for consistency.
	MaxActorNameLength = 255

	// MaxActorAge bounds the age field; anything above is a typo.
	MaxActorAge = 150

	// MaxPageSize caps PAGE_SIZE so a single list query stays small.
	MaxPageSize = 100
)
