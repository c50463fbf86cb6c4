package auth

import "casting/internal/domain/models"

// CheckPermission confirms the claims grant the exact permission string.
// Matching is case-sensitive with no wildcard or hierarchy semantics.
func CheckPermission(required string, claims models.Claims) error {
	if !claims.Permissions.Present {
		return ErrPermissionMissing
	}
	if !claims.Permissions.Has(required) {
		return ErrPermissionDenied
	}
	return nil
}
