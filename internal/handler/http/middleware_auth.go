package http

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/internal/utils"
)

const loginPath = "/login"

// rejectFunc answers a request that did not resolve to a live session.
type rejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// apiAuth gates JSON routes: anonymous and expired sessions get 401.
func (h *Handler) apiAuth(next http.Handler) http.Handler {
	return h.requireSession(next, func(w http.ResponseWriter, r *http.Request, err error) {
		writeError(w, r, "*Handler.apiAuth", err)
	})
}

// pageAuth gates page routes: anonymous and expired sessions are redirected
// to the login page.
func (h *Handler) pageAuth(next http.Handler) http.Handler {
	return h.requireSession(next, func(w http.ResponseWriter, r *http.Request, err error) {
		if !errors.Is(err, service.ErrUnauthorized) {
			writeError(w, r, "*Handler.pageAuth", err)
			return
		}
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	})
}

// requireSession resolves the session cookie. On success the user and session
// ids are stored in the request context and added to the request logger.
func (h *Handler) requireSession(next http.Handler, reject rejectFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := h.sessionToken(r)

		session, err := h.services.SessionService.RequireAuthenticated(ctx, token)
		if err != nil {
			if token != "" && errors.Is(err, service.ErrUnauthorized) {
				h.clearSessionCookie(w)
			}
			reject(w, r, err)
			return
		}

		l := logger.FromContext(ctx).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", session.UserID)
		})

		ctx = utils.WithSession(l.WithContext(ctx), session.UserID, session.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromRequest returns the ids stored by requireSession.
func sessionFromRequest(r *http.Request) (int64, string, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, "", ErrNoSessionInContext
	}
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		return 0, "", ErrNoSessionInContext
	}
	return userID, sessionID, nil
}
