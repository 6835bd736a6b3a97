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

var errorStatusMap = map[error]int{
	ErrInvalidBody:        http.StatusBadRequest,
	ErrInvalidID:          http.StatusNotFound,
	ErrNoSessionInContext: http.StatusUnauthorized,

	service.ErrUnauthorized:       http.StatusUnauthorized,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrWrongPassword:      http.StatusBadRequest,
	service.ErrPasswordMismatch:   http.StatusBadRequest,
	service.ErrDuplicateAccount:   http.StatusBadRequest,
	service.ErrDuplicateCategory:  http.StatusConflict,
	service.ErrNotFound:           http.StatusNotFound,

	validators.ErrUnsupportedType: http.StatusBadRequest,
	validators.ErrUnknownField:    http.StatusBadRequest,
}

// statusFromError maps err to an HTTP status. Validation failures are 400,
// anything unclassified is 500.
func statusFromError(err error) int {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text safe to show a client. Internal errors
// only expose the generic status text.
func messageFromError(err error, status int) string {
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(status)
}

// writeError logs err once and writes it as {"error": "..."}.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: messageFromError(err, status)}, status)
}
