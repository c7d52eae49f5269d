// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/emberwatch/emberwatch/internal/domain/risk"
)

// tipsRequest mirrors the JSON schema for POST /tips: the original metrics
// record plus the assessment results the tips are generated for.
type tipsRequest struct {
	metricsRequest

	Score    *float64      `json:"score"`
	Category risk.Category `json:"category"`
	Urgency  risk.Urgency  `json:"urgency,omitempty"`
}

var knownCategories = map[risk.Category]bool{
	risk.CategoryLow:         true,
	risk.CategoryLowModerate: true,
	risk.CategoryModerate:    true,
	risk.CategoryHigh:        true,
}

func (t tipsRequest) validate() error {
	if t.Score == nil {
		return errors.New("missing score")
	}
	if *t.Score < 0 || *t.Score > 1 {
		return fmt.Errorf("score must be within [0,1], got %g", *t.Score)
	}
	if !knownCategories[t.Category] {
		return fmt.Errorf("category must be one of Low, Low-Moderate, Moderate, High")
	}
	return nil
}

// tipsResponse mirrors the JSON schema for generated tips.
type tipsResponse struct {
	Tips        []string `json:"tips"`
	GeneratedAt string   `json:"generated_at"`
	ModelUsed   string   `json:"model_used"`
	RiskLevel   string   `json:"risk_level"`
	Confidence  float64  `json:"confidence"`
}

// TipsHandler handles wellness tip requests.
type TipsHandler struct {
	deps Dependencies
}

// NewTipsHandler creates a new tips handler.
func NewTipsHandler(deps Dependencies) *TipsHandler {
	return &TipsHandler{deps: deps}
}

// HandleTips handles POST /tips requests.
func (h *TipsHandler) HandleTips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	var req tipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	rec := req.record()
	if err := risk.Validate(rec); err != nil {
		handleAssessmentError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	assessment := risk.Assessment{
		Score:    *req.Score,
		Category: req.Category,
		Urgency:  req.Urgency,
	}
	result, err := h.deps.Tips(r.Context(), rec, assessment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, tipsResponse{
		Tips:        result.Tips,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ModelUsed:   result.Model,
		RiskLevel:   string(result.RiskLevel),
		Confidence:  result.Confidence,
	})
}
