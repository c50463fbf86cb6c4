package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"casting/internal/domain"
	"casting/internal/httputil"
)

// envelope is the success body shape: {"success": true, ...}
type envelope map[string]interface{}

func respondOK(w http.ResponseWriter, status int, body envelope) {
	body["success"] = true
	httputil.RespondJSON(w, status, body)
}

// handleError converts domain errors to problem responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &httpErr):
		problem := httputil.NewProblem(httpErr.StatusCode(), httpErr.ErrorCode(), httpErr.Error())
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			problem = problem.
				With("resource_type", conflictErr.ResourceType).
				With("resource_id", conflictErr.ResourceID)
		}
		httputil.RespondProblem(w, r, problem)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondProblem(w, r, httputil.NewProblem(http.StatusBadRequest, httputil.CodeValidation, err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondProblem(w, r, httputil.NewProblem(http.StatusNotFound, httputil.CodeNotFound, err.Error()))
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondProblem(w, r, httputil.NewProblem(http.StatusConflict, httputil.CodeConflict, err.Error()))
	default:
		logger.Error("request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", httputil.GetRequestID(r),
			"user_id", httputil.GetUserID(r),
			"error", err,
		)
		httputil.RespondProblem(w, r, httputil.NewProblem(http.StatusInternalServerError, httputil.CodeInternal, "internal server error"))
	}
}

// badRequest reports a malformed path, query or body
func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	httputil.RespondProblem(w, r, httputil.NewProblem(http.StatusBadRequest, httputil.CodeBadRequest, err.Error()))
}
