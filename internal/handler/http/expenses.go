package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-expense-ledger/internal/utils"
	"github.com/MKhiriev/go-expense-ledger/models"
)

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.createExpense", err)
		return
	}

	raw, err := decodeBody(w, r, expenseFromForm)
	if err != nil {
		writeError(w, r, "*Handler.createExpense", err)
		return
	}

	id, err := h.services.ExpenseService.CreateExpense(r.Context(), userID, raw)
	if err != nil {
		writeError(w, r, "*Handler.createExpense", err)
		return
	}

	utils.WriteJSON(w, models.IDResponse{ID: id}, http.StatusCreated)
}

// listExpenses accepts an optional ?limit=; the service clamps it.
func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.listExpenses", err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	expenses, err := h.services.ExpenseService.ListExpenses(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, "*Handler.listExpenses", err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	utils.WriteJSON(w, expenses, http.StatusOK)
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.getExpense", err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.getExpense", err)
		return
	}

	expense, err := h.services.ExpenseService.GetExpense(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, "*Handler.getExpense", err)
		return
	}

	utils.WriteJSON(w, expense, http.StatusOK)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.updateExpense", err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.updateExpense", err)
		return
	}

	raw, err := decodeBody(w, r, expenseFromForm)
	if err != nil {
		writeError(w, r, "*Handler.updateExpense", err)
		return
	}

	if err = h.services.ExpenseService.UpdateExpense(r.Context(), userID, id, raw); err != nil {
		writeError(w, r, "*Handler.updateExpense", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteExpense", err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteExpense", err)
		return
	}

	if err = h.services.ExpenseService.DeleteExpense(r.Context(), userID, id); err != nil {
		writeError(w, r, "*Handler.deleteExpense", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
