// Package server runs the ledger's HTTP transport.
//
// It owns the listener lifecycle and the background workers that run next to
// it. A stop signal or a failing worker shuts the listener down gracefully,
// bounded by the configured shutdown timeout.
package server
