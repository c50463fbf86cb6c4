package casting

import (
	"fmt"
	"strings"

	models "casting/internal/domain/models/casting"
)

// notBlank rejects strings that are empty after trimming
func notBlank(value interface{}) error {
	s, ok := stringValue(value)
	if !ok {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// validDate checks the value parses as a release date
func validDate(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || s == "" {
		return nil
	}
	if _, err := models.ParseDate(s); err != nil {
		return fmt.Errorf("must be a date in MM/DD/YYYY format")
	}
	return nil
}

// validGender checks the value is one of the known genders
func validGender(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	}
	return fmt.Errorf("must be one of male, female, other")
}

// stringValue unwraps string and *string; nil pointers report !ok
func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}
