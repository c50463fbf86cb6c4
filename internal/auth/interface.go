package auth

import (
	"context"

	"casting/internal/domain/models"
)

// KeyResolver resolves a token's key id to the provider's signing key.
// *KeySetCache is the production implementation.
type KeyResolver interface {
	GetKey(ctx context.Context, keyID string) (SigningKey, error)
}

// TokenVerifier defines the interface for JWT token verification.
// This abstraction keeps the authorizer agnostic to the verification details.
type TokenVerifier interface {
	// VerifyToken validates a raw token and returns its claims.
	// Every failure is an *AuthorizationError, except context errors when ctx
	// ends while waiting for the key set.
	VerifyToken(ctx context.Context, tokenString string) (models.Claims, error)
}
