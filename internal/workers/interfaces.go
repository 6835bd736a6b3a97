// Package workers runs the ledger's background jobs alongside the HTTP
// server. A Workers aggregate starts every job and stops them together when
// the server context is cancelled.
//
// The only job is the session sweeper, and it is off unless
// APP_SESSION_SWEEP_INTERVAL is set. Session expiry does not depend on it:
// Resolve already rejects idle and over-age sessions on every lookup, and
// the sweeper only deletes those rejected rows to keep the table small.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled and returns
// nil on a clean stop; a non-nil error stops every other worker too.
type Worker interface {
	Run(ctx context.Context) error
}

// SessionPurger deletes sessions that can no longer be resolved.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
