package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/models"
)

type decisionRequest struct {
	Category string          `json:"category"`
	Params   json.RawMessage `json:"params"`
}

type analyzeRequest struct {
	Budget *models.BudgetSnapshot `json:"budget,omitempty"`
	decisionRequest
}

type decisionResponse struct {
	Record *models.DecisionRecord `json:"record"`
	Result decision.Result        `json:"result"`
}

// CreateDecision analyzes a decision against the active budget and stores it
func (h *Handler) CreateDecision(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req decisionRequest
	if !h.decode(w, r, &req) {
		return
	}
	rec, res, err := h.svc.AnalyzeDecision(r.Context(), userID, req.Category, req.Params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, decisionResponse{Record: rec, Result: res})
}

// ListDecisions returns recent decisions; ?limit=N overrides the default count
func (h *Handler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	records, err := h.svc.ListDecisions(r.Context(), userID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

// ExportDecisions downloads the decision history as XML
func (h *Handler) ExportDecisions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.ExportDecisions(r.Context(), userID, &buf); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="decisions.xml"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Errorf("Failed to write export: %v", err)
	}
}

// Analyze previews a decision without storing it
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.Preview(r.Context(), userID, req.Budget, req.Category, req.Params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
