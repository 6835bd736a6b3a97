package http

import (
	"net/http"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
)

// cookieSettings is the session cookie policy: HttpOnly, SameSite=Lax and
// Secure unless explicitly disabled for plain-HTTP development.
type cookieSettings struct {
	name   string
	secure bool
	maxAge int
}

func newCookieSettings(cfg config.App) cookieSettings {
	name := cfg.CookieName
	if name == "" {
		name = config.DefaultCookieName
	}

	return cookieSettings{
		name:   name,
		secure: !cfg.CookieInsecure,
		maxAge: int(cfg.SessionMaxLifetime.Seconds()),
	}
}

func (c cookieSettings) build(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, h.cookie.build(token, h.cookie.maxAge))
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie.build("", -1))
}

// sessionToken returns the raw session cookie value, or "" when absent.
func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.cookie.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
