package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer binds every listener and serves until ctx is cancelled, a
	// termination signal arrives or a listener fails. It then shuts all
	// listeners down and returns the first serving error, if any.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops every listener within ctx.
	Shutdown(ctx context.Context) error
}

// component is one listener managed by server.
type component interface {
	name() string
	addr() string
	listen() error
	serve() error
	shutdown(ctx context.Context) error
}
