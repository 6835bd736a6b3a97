package http

import (
	"net/http"

	"github.com/MKhiriev/go-expense-ledger/internal/utils"
	"github.com/MKhiriev/go-expense-ledger/models"
)

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.createCategory", err)
		return
	}

	req, err := decodeBody(w, r, categoryFromForm)
	if err != nil {
		writeError(w, r, "*Handler.createCategory", err)
		return
	}

	id, err := h.services.CategoryService.CreateCategory(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.createCategory", err)
		return
	}

	utils.WriteJSON(w, models.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.listCategories", err)
		return
	}

	categories, err := h.services.CategoryService.ListCategories(r.Context(), userID)
	if err != nil {
		writeError(w, r, "*Handler.listCategories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	utils.WriteJSON(w, categories, http.StatusOK)
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.renameCategory", err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.renameCategory", err)
		return
	}

	req, err := decodeBody(w, r, categoryFromForm)
	if err != nil {
		writeError(w, r, "*Handler.renameCategory", err)
		return
	}

	if err = h.services.CategoryService.RenameCategory(r.Context(), userID, id, req); err != nil {
		writeError(w, r, "*Handler.renameCategory", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteCategory leaves the category's expenses in place as uncategorized.
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, _, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteCategory", err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteCategory", err)
		return
	}

	if err = h.services.CategoryService.DeleteCategory(r.Context(), userID, id); err != nil {
		writeError(w, r, "*Handler.deleteCategory", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
