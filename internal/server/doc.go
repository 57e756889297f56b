// Package server wires and runs the application's transport servers.
//
// It owns the lifecycle of the public HTTP listener, the optional gRPC
// health listener and the optional Prometheus metrics listener: binding,
// serving, signal handling and graceful shutdown of all enabled transports.
package server
