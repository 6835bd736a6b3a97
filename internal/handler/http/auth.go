package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/internal/utils"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
	"github.com/MKhiriev/go-expense-ledger/models"
)

const (
	dashboardPath = "/dashboard"
	profilePath   = "/profile"
)

// Flash texts shown after a password change attempt.
const (
	flashPasswordChanged  = "Password updated successfully"
	flashWrongPassword    = "Current password is incorrect"
	flashPasswordTooShort = "New password must be at least 8 characters"
	flashPasswordTooLong  = "New password must be at most 72 bytes"
	flashPasswordFailed   = "Could not update password"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, err := decodeBody(w, r, registerFromForm)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user registered, redirecting to login")
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// login authenticates the credentials and starts a fresh session. Any
// session the client already carried is destroyed first.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	req, err := decodeBody(w, r, loginFromForm)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	if _, err = h.services.SessionService.Logout(ctx, h.sessionToken(r)); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error dropping previous session")
	}

	token, _, err := h.services.SessionService.Start(ctx, user.UserID)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	h.setSessionCookie(w, token)
	log.Debug().Int64("user_id", user.UserID).Msg("user logged in")
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	state, err := h.services.SessionService.Logout(r.Context(), h.sessionToken(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("error destroying session")
	} else {
		log.Debug().Stringer("state", state).Msg("session closed")
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// changePassword always redirects to the profile page; the outcome is left
// as a flash message for the next profile view.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, sessionID, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	req, err := decodeBody(w, r, changePasswordFromForm)
	if err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	flash := models.Flash{Kind: models.FlashSuccess, Message: flashPasswordChanged}
	if err = h.services.AuthService.ChangePassword(ctx, userID, req); err != nil {
		flash = passwordFailureFlash(err)
		if flash.Message == flashPasswordFailed {
			log.Err(err).Str("func", "*Handler.changePassword").Msg("error changing password")
		}
	}

	if err = h.services.SessionService.AddFlash(ctx, sessionID, flash); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("error storing flash")
	}

	http.Redirect(w, r, profilePath, http.StatusSeeOther)
}

func passwordFailureFlash(err error) models.Flash {
	var validationErr *validators.ValidationError

	msg := flashPasswordFailed
	switch {
	case errors.Is(err, service.ErrWrongPassword):
		msg = flashWrongPassword
	case errors.Is(err, validators.ErrPasswordTooShort), errors.Is(err, validators.ErrEmptyPassword):
		msg = flashPasswordTooShort
	case errors.Is(err, validators.ErrPasswordTooLong):
		msg = flashPasswordTooLong
	case errors.As(err, &validationErr):
		msg = validationErr.Error()
	}

	return models.Flash{Kind: models.FlashError, Message: msg}
}

// profile returns the current user and consumes pending flash messages.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, sessionID, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.profile", err)
		return
	}

	user, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		writeError(w, r, "*Handler.profile", err)
		return
	}

	flashes, err := h.services.SessionService.PopFlashes(ctx, sessionID)
	if err != nil {
		writeError(w, r, "*Handler.profile", err)
		return
	}
	if flashes == nil {
		flashes = []models.Flash{}
	}

	utils.WriteJSON(w, models.Profile{User: user, Flashes: flashes}, http.StatusOK)
}
