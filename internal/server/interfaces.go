package server

import "context"

// Server defines the lifecycle contract for the transport server managed by
// this package.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT arrives, then shuts
	// down gracefully.
	RunServer() error

	// Run serves until ctx is cancelled, then shuts down gracefully.
	Run(ctx context.Context) error
}
