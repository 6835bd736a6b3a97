package models

import "time"

// SessionState describes where a session token is in its lifecycle.
type SessionState int

const (
	// Anonymous is any token that does not resolve to a live session.
	Anonymous SessionState = iota
	// Authenticated is a live session bound to a user.
	Authenticated
	// Expired is a session past its idle window or absolute lifetime.
	// Callers treat it exactly like Anonymous.
	Expired
	// LoggedOut is a session destroyed by the client.
	LoggedOut
)

// String implements fmt.Stringer.
func (s SessionState) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	case LoggedOut:
		return "logged_out"
	default:
		return "anonymous"
	}
}

// Session maps an opaque random identifier to an authenticated user.
// Rows exist only for authenticated sessions.
type Session struct {
	ID        string    `json:"-"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the session is no longer usable at now.
// maxLifetime of zero disables the absolute cap.
func (s Session) ExpiredAt(now time.Time, maxLifetime time.Duration) bool {
	if !now.Before(s.ExpiresAt) {
		return true
	}
	if maxLifetime > 0 && !now.Before(s.CreatedAt.Add(maxLifetime)) {
		return true
	}
	return false
}

// FlashKind classifies a one-shot message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a message shown once on the next view and then discarded.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}
