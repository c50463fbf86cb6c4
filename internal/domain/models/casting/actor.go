package casting

import (
	"time"
)

// Gender values accepted for actors. Empty means not specified.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Actor struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	Gender    *string   `json:"gender" db:"gender"` // NULL = not specified
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
