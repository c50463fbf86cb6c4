package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"casting/internal/httputil"
)

// Recovery turns a panicking handler into a 500 problem carrying the request
// ID. http.ErrAbortHandler is re-raised so net/http can abort the response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.Error("panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
					"user_id", httputil.GetUserID(r),
					"stack", string(debug.Stack()),
				)

				httputil.RespondProblem(w, r, httputil.NewProblem(
					http.StatusInternalServerError, httputil.CodeInternal, "internal server error"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
