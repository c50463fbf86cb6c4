package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"casting/internal/auth"
	"casting/internal/domain/models"
	"casting/internal/domain/services"
	"casting/internal/httputil"
)

// ProtectedHandlerFunc is a handler that runs only after authorization
// succeeded. claims is the caller's private copy of the verified payload.
type ProtectedHandlerFunc func(w http.ResponseWriter, r *http.Request, claims models.Claims)

// Gate turns a RequestAuthorizer into per-route HTTP guards.
type Gate struct {
	authorizer services.RequestAuthorizer
	logger     *slog.Logger
}

// NewGate creates a gate
func NewGate(authorizer services.RequestAuthorizer, logger *slog.Logger) *Gate {
	return &Gate{
		authorizer: authorizer,
		logger:     logger,
	}
}

// Require guards next with the given permission. next is never invoked unless
// the token was verified and grants permission.
func (g *Gate) Require(permission string, next ProtectedHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.authorizer.Authorize(r.Context(), r.Header, permission)
		if err != nil {
			g.reject(w, r, permission, err)
			return
		}

		r = httputil.WithClaims(r, claims)
		next(w, r, claims.Clone())
	})
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, permission string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		g.logger.Debug("authorization abandoned",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", httputil.GetRequestID(r),
			"error", err,
		)
		return
	}

	var authErr *auth.AuthorizationError
	if !errors.As(err, &authErr) {
		g.logger.Error("authorization failed unexpectedly",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)
		httputil.RespondProblem(w, r, httputil.NewProblem(http.StatusInternalServerError, httputil.CodeInternal, "internal server error"))
		return
	}

	level := slog.LevelInfo
	if authErr.Class() == auth.ClassUpstream {
		level = slog.LevelWarn
	}
	g.logger.Log(r.Context(), level, "request not authorized",
		"kind", authErr.Kind,
		"class", authErr.Class(),
		"permission", permission,
		"path", r.URL.Path,
		"method", r.Method,
		"request_id", httputil.GetRequestID(r),
		"error", err,
	)

	problem := httputil.NewProblem(authErr.StatusCode(), authErr.Code, authErr.Description)
	problem.Type = httputil.ProblemTypeBase + "auth:" + string(authErr.Kind)
	problem.Description = authErr.Description
	if challenge := bearerChallenge(authErr); challenge != "" {
		w.Header().Set("WWW-Authenticate", challenge)
	}
	httputil.RespondProblem(w, r, problem)
}

// bearerChallenge returns the RFC 6750 challenge for a 401, or "" otherwise.
func bearerChallenge(authErr *auth.AuthorizationError) string {
	switch {
	case authErr.Status != http.StatusUnauthorized:
		return ""
	case authErr.Kind == auth.KindMissingHeader:
		return "Bearer"
	case authErr.Kind == auth.KindMalformedHeader:
		return `Bearer error="invalid_request"`
	default:
		return `Bearer error="invalid_token"`
	}
}
