// Package http implements the HTTP boundary of the expense ledger.
//
// It wires the chi router, the cookie-based session gate, request tracing,
// access logging and Prometheus metrics, and translates service errors into
// status codes. Page-style routes (register, login, logout, profile password)
// answer with redirects; everything under /api answers with JSON.
package http
