package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"casting/internal/auth"
	"casting/internal/httputil"
)

// KeySetSource exposes the cached signing keys for health reporting
type KeySetSource interface {
	Snapshot() *auth.KeySet
	Fetches() int64
}

// Pinger checks database connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// LoginConfig describes the hosted login redirect
type LoginConfig struct {
	Domain      string
	Audience    string
	ClientID    string
	CallbackURL string
}

// MetaHandler serves the public, unauthenticated routes
type MetaHandler struct {
	keys   KeySetSource
	db     Pinger
	login  LoginConfig
	logger *slog.Logger
}

// NewMetaHandler creates the public route handler. db may be nil.
func NewMetaHandler(keys KeySetSource, db Pinger, login LoginConfig, logger *slog.Logger) *MetaHandler {
	return &MetaHandler{
		keys:   keys,
		db:     db,
		login:  login,
		logger: logger,
	}
}

// Greeting
// GET /
func (h *MetaHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, envelope{"greeting": "Hello"})
}

// Health reports database reachability and the key-set cache state
// GET /health
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dbStatus := "skipped"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check: database unreachable", "error", err)
			status = http.StatusServiceUnavailable
			dbStatus = "unreachable"
		} else {
			dbStatus = "ok"
		}
	}

	jwks := map[string]interface{}{
		"loaded":  false,
		"fetches": h.keys.Fetches(),
	}
	if snap := h.keys.Snapshot(); snap != nil {
		jwks["loaded"] = true
		jwks["key_ids"] = snap.KeyIDs()
		jwks["fetched_at"] = snap.FetchedAt.UTC().Format(time.RFC3339)
	}

	httputil.RespondJSON(w, status, map[string]interface{}{
		"success":  status == http.StatusOK,
		"database": dbStatus,
		"jwks":     jwks,
	})
}

// Login redirects to the identity provider's hosted login page
// GET /login
func (h *MetaHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.login.AuthorizeURL(), http.StatusFound)
}

// AuthorizeURL builds the implicit-flow authorize URL
func (c LoginConfig) AuthorizeURL() string {
	q := url.Values{}
	q.Set("audience", c.Audience)
	q.Set("response_type", "token")
	q.Set("client_id", c.ClientID)
	q.Set("redirect_uri", c.CallbackURL)

	u := url.URL{
		Scheme:   "https",
		Host:     c.Domain,
		Path:     "/authorize",
		RawQuery: q.Encode(),
	}
	return u.String()
}
