package auth

import (
	"context"
	"errors"
	"net/http"

	"casting/internal/domain/models"
)

// Authorizer runs the full chain for one request: extract the bearer token,
// verify it, then check the required permission. It keeps no per-call state.
type Authorizer struct {
	verifier TokenVerifier
}

// NewAuthorizer creates an authorizer over the given verifier.
func NewAuthorizer(verifier TokenVerifier) *Authorizer {
	return &Authorizer{verifier: verifier}
}

// Authorize returns the verified claims when the request carries a valid token
// granting permission, or the first error encountered. Claims are never
// returned alongside an error.
func (a *Authorizer) Authorize(ctx context.Context, header http.Header, permission string) (models.Claims, error) {
	if permission == "" {
		return models.Claims{}, errors.New("required permission cannot be empty")
	}

	token, err := ExtractToken(header)
	if err != nil {
		return models.Claims{}, err
	}

	claims, err := a.verifier.VerifyToken(ctx, token)
	if err != nil {
		return models.Claims{}, err
	}

	if err := ctx.Err(); err != nil {
		return models.Claims{}, err
	}

	if err := CheckPermission(permission, claims); err != nil {
		return models.Claims{}, err
	}

	return claims, nil
}
