package handler

import (
	"net/http"

	"github.com/Dan9191/budget-advisor/internal/models"
)

// SaveBudget replaces the user's active budget
func (h *Handler) SaveBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var snapshot models.BudgetSnapshot
	if !h.decode(w, r, &snapshot) {
		return
	}
	b, err := h.svc.SaveBudget(r.Context(), userID, snapshot)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) CurrentBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.CurrentBudget(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

// Overview returns the health report of the active budget
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Overview(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}
