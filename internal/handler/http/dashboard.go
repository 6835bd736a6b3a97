package http

import (
	"net/http"

	"github.com/MKhiriev/go-expense-ledger/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.dashboard", err)
		return
	}

	dashboard, err := h.services.DashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		writeError(w, r, "*Handler.dashboard", err)
		return
	}

	utils.WriteJSON(w, dashboard, http.StatusOK)
}
