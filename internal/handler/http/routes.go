package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// handlerFunc is an HTTP handler that reports failures by returning an
// error instead of writing an error response itself.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// Route binds one HTTP method and path pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler handlerFunc
}

// Group is a set of routes and nested groups sharing a path prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Flatten returns every route of g and its children with prefixes joined,
// in declaration order.
func (g Group) Flatten() []Route {
	return g.flatten("")
}

func (g Group) flatten(parent string) []Route {
	prefix := parent + g.Prefix

	routes := make([]Route, 0, len(g.Routes))
	for _, route := range g.Routes {
		route.Pattern = prefix + route.Pattern
		routes = append(routes, route)
	}
	for _, child := range g.Children {
		routes = append(routes, child.flatten(prefix)...)
	}

	return routes
}

func (h *Handler) routeTable() Group {
	return Group{
		Routes: []Route{
			{Method: http.MethodGet, Pattern: "/", Handler: h.index},
		},
		Children: []Group{
			{
				Prefix: "/api",
				Routes: []Route{
					{Method: http.MethodPost, Pattern: "/pay/get_pay_params", Handler: h.index},
				},
				Children: []Group{
					{
						Prefix: "/user",
						Routes: []Route{
							{Method: http.MethodPost, Pattern: "/create", Handler: h.index},
							{Method: http.MethodPost, Pattern: "/login", Handler: h.index},
							{Method: http.MethodGet, Pattern: "/info", Handler: h.index},
							{Method: http.MethodGet, Pattern: "/update_password", Handler: h.index},
						},
					},
					{
						Prefix: "/product",
						Routes: []Route{
							{Method: http.MethodGet, Pattern: "/list", Handler: h.index},
							{Method: http.MethodGet, Pattern: "/detail", Handler: h.index},
						},
					},
				},
			},
		},
	}
}

// validateRoutes rejects a table in which a (method, pattern) pair is bound
// more than once.
func validateRoutes(routes []Route) error {
	seen := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		key := route.Method + " " + route.Pattern
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// Init builds the router serving the route table behind the middleware
// chain. It fails if the table declares the same route twice.
func (h *Handler) Init() (*chi.Mux, error) {
	return h.initRoutes(h.routeTable())
}

func (h *Handler) initRoutes(table Group) (*chi.Mux, error) {
	routes := table.Flatten()
	if err := validateRoutes(routes); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	h.router = router

	// forwarding headers are client supplied unless a proxy rewrites them
	if h.cfg.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(
		h.withTraceID,
		h.withLogging,
		h.withMetrics,
		h.withRateLimit,
		h.withTimeout,
		h.withTracing,
		h.withRecover,
	)

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod)

	for _, route := range routes {
		router.Method(route.Method, route.Pattern, h.handle(route.Handler))
	}

	h.logger.Info().Int("routes", len(routes)).Msg("http routes registered")
	return router, nil
}

// handle adapts an error-returning handler to http.HandlerFunc, passing a
// returned error to respondError.
func (h *Handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.respondError(w, r, err)
		}
	}
}

// routeLabel resolves the registered pattern matching r, or "unmatched".
// It never mutates the request's own routing context.
func (h *Handler) routeLabel(r *http.Request) string {
	if h.router == nil {
		return unmatchedRoute
	}

	rctx := chi.NewRouteContext()
	if !h.router.Match(rctx, r.Method, r.URL.Path) {
		return unmatchedRoute
	}

	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

const unmatchedRoute = "unmatched"
