// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to keep the middleware chain
// out of the picture.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod)

	router.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("items"))
	})
	router.Post("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Route("/api/nested", func(r chi.Router) {
		r.Get("/leaf", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	return router
}

// ---- Table test ----

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "GET /api/items registered",
			method:         http.MethodGet,
			path:           "/api/items",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST /api/items registered",
			method:         http.MethodPost,
			path:           "/api/items",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "DELETE /api/items method not registered",
			method:         http.MethodDelete,
			path:           "/api/items",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "PATCH /api/items method not registered",
			method:         http.MethodPatch,
			path:           "/api/items",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "GET /api/nested/leaf in a subrouter",
			method:         http.MethodGet,
			path:           "/api/nested/leaf",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST /api/nested/leaf method not registered in a subrouter",
			method:         http.MethodPost,
			path:           "/api/nested/leaf",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "GET /api/nonexistent route does not exist",
			method:         http.MethodGet,
			path:           "/api/nonexistent",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

// TestCheckHTTPMethod_LooksLikeNotFound verifies that a wrong method and an
// unknown path produce identical responses.
func TestCheckHTTPMethod_LooksLikeNotFound(t *testing.T) {
	router := buildRouter()

	wrongMethod := httptest.NewRecorder()
	router.ServeHTTP(wrongMethod, httptest.NewRequest(http.MethodDelete, "/api/items", nil))

	unknownPath := httptest.NewRecorder()
	router.ServeHTTP(unknownPath, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, unknownPath.Code, wrongMethod.Code)
	assert.Equal(t, unknownPath.Body.String(), wrongMethod.Body.String())
	assert.Empty(t, wrongMethod.Header().Get("Allow"))
}
