package httputil

import (
	"context"
	"net/http"

	"casting/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	claimsKey contextKey = "claims"
	scopeKey  contextKey = "scope"
)

// requestScope is shared by every handler layer of one request. Outer
// middleware reads what inner layers recorded after next returns.
type requestScope struct {
	requestID string
	subject   string
}

// WithRequestID starts the request scope with the given ID
func WithRequestID(r *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(r.Context(), scopeKey, &requestScope{requestID: requestID})
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(r *http.Request) string {
	if scope, ok := r.Context().Value(scopeKey).(*requestScope); ok {
		return scope.requestID
	}
	return ""
}

// WithClaims adds verified claims to the request context and records the
// subject in the request scope.
func WithClaims(r *http.Request, claims models.Claims) *http.Request {
	if scope, ok := r.Context().Value(scopeKey).(*requestScope); ok {
		scope.subject = claims.GetUserID()
	}
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetUserID returns the authorized caller's subject, or "" for requests that
// were not authorized. It also works from middleware wrapping the gate.
func GetUserID(r *http.Request) string {
	if claims, ok := r.Context().Value(claimsKey).(models.Claims); ok {
		return claims.GetUserID()
	}
	if scope, ok := r.Context().Value(scopeKey).(*requestScope); ok {
		return scope.subject
	}
	return ""
}
