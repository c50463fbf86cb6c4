package models

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified payload of an identity-provider access token.
// See: https://auth0.com/docs/secure/tokens/access-tokens/access-token-profiles
type Claims struct {
	jwt.RegisteredClaims             // iss, sub, aud, exp, nbf, iat, jti
	AuthorizedParty      string      `json:"azp,omitempty"`
	Scope                string      `json:"scope,omitempty"`
	Permissions          Permissions `json:"permissions"`
}

// GetUserID returns the caller's identity from the subject claim.
func (c Claims) GetUserID() string {
	return c.Subject
}

// Clone returns a deep copy so a handler can't mutate another holder's view.
func (c Claims) Clone() Claims {
	out := c
	out.Audience = slices.Clone(c.Audience)
	out.Permissions.Values = slices.Clone(c.Permissions.Values)
	return out
}

// Permissions tracks presence and value of the RBAC "permissions" claim.
// A token with no claim at all is a misconfigured issuer; an empty list is a
// caller without grants. Go's []string cannot tell those apart.
type Permissions struct {
	Present bool
	Values  []string
}

// NewPermissions builds a present permission set.
func NewPermissions(values ...string) Permissions {
	return Permissions{Present: true, Values: values}
}

// Has reports whether the exact permission string was granted.
func (p Permissions) Has(permission string) bool {
	return slices.Contains(p.Values, permission)
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		p.Present = false
		p.Values = nil
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	p.Present = true
	p.Values = values
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Permissions) MarshalJSON() ([]byte, error) {
	if !p.Present {
		return []byte("null"), nil
	}
	if p.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Values)
}
