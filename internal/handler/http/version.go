package http

import (
	"net/http"

	"github.com/MKhiriev/go-expense-ledger/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// health reports 503 while the database is unreachable.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK

	health, err := h.services.AppInfoService.Health(r.Context())
	if err != nil {
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, health, status)
}
