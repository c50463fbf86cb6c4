package services

import (
	"context"
	"net/http"

	"casting/internal/domain/models"
)

// RequestAuthorizer decides whether a request may run an operation.
// Current implementation: bearer token + RBAC permission string (auth.Authorizer).
//
// Design principle: handlers never authenticate on their own. The gate runs
// before them and hands over verified claims.
type RequestAuthorizer interface {
	// Authorize verifies the request's credentials and confirms they grant
	// permission. It returns the verified claims or a classified error.
	Authorize(ctx context.Context, header http.Header, permission string) (models.Claims, error)
}
