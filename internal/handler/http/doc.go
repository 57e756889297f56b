// Package http implements the HTTP transport layer of the service.
//
// It declares the route table, wires it into a chi router and wraps every
// request in the middleware chain: trace id and request logger, access log,
// Prometheus metrics, optional per-IP rate limiting, the request timeout, an
// OpenTelemetry span and panic recovery. Handlers return errors instead of
// writing error responses; respondError is the one place that turns an
// error into a status code and a plain text body.
package http
