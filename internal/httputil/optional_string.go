package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes the three states of a JSON merge-patch field
// (RFC 7396), which *string alone cannot:
//   - Present=false: field absent (keep current value)
//   - Present=true, Value=nil: field is null (clear it)
//   - Present=true, Value set: replace with the value
type OptionalString struct {
	Present bool
	Value   *string
}

// ValueOr returns the patched value, or current when the field was absent.
func (o OptionalString) ValueOr(current *string) *string {
	if !o.Present {
		return current
	}
	return o.Value
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
