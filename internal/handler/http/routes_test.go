package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testServerConfig = config.Server{RequestTimeout: time.Second}

func noContent(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ---- Flatten ----

func TestGroup_Flatten(t *testing.T) {
	table := Group{
		Routes: []Route{{Method: http.MethodGet, Pattern: "/", Handler: noContent}},
		Children: []Group{
			{
				Prefix: "/api",
				Routes: []Route{{Method: http.MethodPost, Pattern: "/pay", Handler: noContent}},
				Children: []Group{
					{Prefix: "/user", Routes: []Route{{Method: http.MethodGet, Pattern: "/info", Handler: noContent}}},
				},
			},
		},
	}

	routes := table.Flatten()

	require.Len(t, routes, 3)
	assert.Equal(t, "/", routes[0].Pattern)
	assert.Equal(t, "/api/pay", routes[1].Pattern)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "/api/user/info", routes[2].Pattern)
}

func TestRouteTable_Declared(t *testing.T) {
	h := newTestHandler()

	var got []string
	for _, route := range h.routeTable().Flatten() {
		got = append(got, route.Method+" "+route.Pattern)
	}

	assert.Equal(t, []string{
		"GET /",
		"POST /api/pay/get_pay_params",
		"POST /api/user/create",
		"POST /api/user/login",
		"GET /api/user/info",
		"GET /api/user/update_password",
		"GET /api/product/list",
		"GET /api/product/detail",
	}, got)
}

// ---- validateRoutes ----

func TestValidateRoutes(t *testing.T) {
	tests := []struct {
		name    string
		routes  []Route
		wantErr bool
	}{
		{
			name:   "empty table",
			routes: nil,
		},
		{
			name: "same path, different methods",
			routes: []Route{
				{Method: http.MethodGet, Pattern: "/a"},
				{Method: http.MethodPost, Pattern: "/a"},
			},
		},
		{
			name: "same method and path twice",
			routes: []Route{
				{Method: http.MethodGet, Pattern: "/a"},
				{Method: http.MethodGet, Pattern: "/a"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRoutes(tt.routes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDuplicateRoute)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestInit_RejectsDuplicateAcrossGroups verifies that a collision created by
// prefix joining is caught before the router is built.
func TestInit_RejectsDuplicateAcrossGroups(t *testing.T) {
	h := newTestHandler()
	table := Group{
		Routes: []Route{{Method: http.MethodGet, Pattern: "/api/user/info", Handler: noContent}},
		Children: []Group{
			{Prefix: "/api/user", Routes: []Route{{Method: http.MethodGet, Pattern: "/info", Handler: noContent}}},
		},
	}

	router, err := h.initRoutes(table)

	assert.Nil(t, router)
	require.ErrorIs(t, err, ErrDuplicateRoute)
	assert.Contains(t, err.Error(), "GET /api/user/info")
}

// ---- Declared routes answer "index" ----

func TestInit_DeclaredRoutes(t *testing.T) {
	_, router := newTestRouter(t, testServerConfig, nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodPost, "/api/pay/get_pay_params"},
		{http.MethodPost, "/api/user/create"},
		{http.MethodPost, "/api/user/login"},
		{http.MethodGet, "/api/user/info"},
		{http.MethodGet, "/api/user/update_password"},
		{http.MethodGet, "/api/product/list"},
		{http.MethodGet, "/api/product/detail"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "index", rr.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
		})
	}
}

// ---- Undeclared (method, path) pairs are 404 ----

func TestInit_UndeclaredRoutes(t *testing.T) {
	_, router := newTestRouter(t, testServerConfig, nil)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown path", http.MethodGet, "/api/unknown"},
		{"unknown nested path", http.MethodGet, "/api/user/delete"},
		{"group prefix only", http.MethodGet, "/api/user"},
		{"GET on a POST route", http.MethodGet, "/api/user/create"},
		{"POST on a GET route", http.MethodPost, "/api/product/list"},
		{"POST on root", http.MethodPost, "/"},
		{"DELETE on a GET route", http.MethodDelete, "/api/user/info"},
		{"POST on update_password", http.MethodPost, "/api/user/update_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Empty(t, rr.Header().Get("Allow"))
		})
	}
}

// ---- Trace id is echoed through the full chain ----

func TestInit_EchoesTraceID(t *testing.T) {
	_, router := newTestRouter(t, testServerConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "edge-trace")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "edge-trace", rr.Header().Get(traceIDHeader))
}

// ---- Handler errors and panics become 500 ----

func TestInit_HandlerErrorsAreNormalized(t *testing.T) {
	table := Group{
		Routes: []Route{
			{Method: http.MethodGet, Pattern: "/fail", Handler: func(http.ResponseWriter, *http.Request) error {
				return errors.New("db down")
			}},
			{Method: http.MethodGet, Pattern: "/panic", Handler: func(http.ResponseWriter, *http.Request) error {
				panic("boom")
			}},
		},
	}
	_, router := newTestRouter(t, testServerConfig, nil, table)

	tests := []struct {
		path     string
		wantBody string
	}{
		{"/fail", "Unhandled internal error: db down"},
		{"/panic", "Unhandled internal error: panic recovered: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.True(t, strings.HasPrefix(rr.Body.String(), internalErrorPrefix))
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

// ---- routeLabel ----

func TestRouteLabel(t *testing.T) {
	h, _ := newTestRouter(t, testServerConfig, nil)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/", "/"},
		{http.MethodGet, "/api/user/info", "/api/user/info"},
		{http.MethodGet, "/api/unknown", unmatchedRoute},
		{http.MethodGet, "/api/user/create", unmatchedRoute},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, h.routeLabel(httptest.NewRequest(tt.method, tt.path, nil)))
		})
	}
}

func TestRouteLabel_BeforeInit(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, unmatchedRoute, h.routeLabel(httptest.NewRequest(http.MethodGet, "/", nil)))
}
