// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-edge/internal/utils"
)

const notFoundBody = "not found"

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi responds with HTTP 405 whenever a request path matches a registered
// route but the HTTP method is not handled. CheckHTTPMethod replaces that
// with HTTP 404 so a known path requested with an undeclared method looks
// exactly like an unknown path. No Allow header is sent.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod)
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	notFound(w, r)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	_, _ = utils.WriteText(w, notFoundBody, http.StatusNotFound)
}
