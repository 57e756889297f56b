// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the HTTP layer. Callers can match against them
// with [errors.Is].
var (
	// ErrRequestTimeout is the cause attached to a request context whose
	// deadline expired in withTimeout.
	ErrRequestTimeout = errors.New("request took too long")

	// ErrTooManyRequests is returned by the rate limiter when a client IP
	// has spent its burst.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrPanicRecovered wraps the value of a panic raised by a handler.
	ErrPanicRecovered = errors.New("panic recovered")

	// ErrDuplicateRoute is returned by Init when the route table binds the
	// same method and pattern twice.
	ErrDuplicateRoute = errors.New("duplicate route")
)
