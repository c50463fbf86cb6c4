package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
)

// PermissionCatalog describes defined permissions; ok is false for an
// undefined one.
type PermissionCatalog interface {
	Describe(permission string) (description string, ok bool)
}

// Route is one registered pattern and the permission it requires, empty for
// public routes.
type Route struct {
	Pattern    string
	Permission string
}

// Router registers routes on a ServeMux, binding each protected route to the
// one permission it requires at registration time.
type Router struct {
	mux     *http.ServeMux
	gate    *Gate
	catalog PermissionCatalog
	logger  *slog.Logger

	routes map[string]string
}

// NewRouter creates a route builder. catalog may be nil to skip validation.
func NewRouter(mux *http.ServeMux, gate *Gate, catalog PermissionCatalog, logger *slog.Logger) *Router {
	return &Router{
		mux:     mux,
		gate:    gate,
		catalog: catalog,
		logger:  logger,
		routes:  make(map[string]string),
	}
}

// Protect registers handler behind permission. Like ServeMux.Handle, it panics
// on a programming error: an empty or undefined permission.
func (rt *Router) Protect(pattern, permission string, handler ProtectedHandlerFunc) {
	if permission == "" {
		panic(fmt.Sprintf("middleware: route %q registered without a permission", pattern))
	}
	var description string
	if rt.catalog != nil {
		d, ok := rt.catalog.Describe(permission)
		if !ok {
			panic(fmt.Sprintf("middleware: route %q requires undefined permission %q", pattern, permission))
		}
		description = d
	}

	rt.mux.Handle(pattern, rt.gate.Require(permission, handler))
	rt.routes[pattern] = permission
	rt.logger.Debug("protected route registered",
		"pattern", pattern,
		"permission", permission,
		"grants", description,
	)
}

// Public registers a handler that needs no token.
func (rt *Router) Public(pattern string, handler http.HandlerFunc) {
	rt.mux.HandleFunc(pattern, handler)
	rt.routes[pattern] = ""
	rt.logger.Debug("public route registered", "pattern", pattern)
}

// Routes returns the registered routes sorted by pattern.
func (rt *Router) Routes() []Route {
	out := make([]Route, 0, len(rt.routes))
	for pattern, permission := range rt.routes {
		out = append(out, Route{Pattern: pattern, Permission: permission})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
