// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// AssessHandler handles risk assessment requests.
type AssessHandler struct {
	deps Dependencies
}

// NewAssessHandler creates a new assessment handler.
func NewAssessHandler(deps Dependencies) *AssessHandler {
	return &AssessHandler{deps: deps}
}

// HandleAssess handles POST /assess requests.
func (h *AssessHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	var req metricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	assessment, err := h.deps.Assess(r.Context(), req.record())
	if err != nil {
		handleAssessmentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAssessmentResponse(assessment))
}
