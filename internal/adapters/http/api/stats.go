// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
)

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

// cacheStatsResponse mirrors the JSON schema for GET /cache/stats.
type cacheStatsResponse struct {
	TotalEntries int    `json:"total_entries"`
	ValidEntries int    `json:"valid_entries"`
	HitRate      string `json:"cache_hit_rate"`
}

// CacheStatsHandler exposes tip cache occupancy for monitoring.
type CacheStatsHandler struct {
	deps Dependencies
}

// NewCacheStatsHandler creates a new cache stats handler.
func NewCacheStatsHandler(deps Dependencies) *CacheStatsHandler {
	return &CacheStatsHandler{deps: deps}
}

// HandleCacheStats handles GET /cache/stats requests.
func (h *CacheStatsHandler) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	total, valid := h.deps.CacheStats(r.Context())
	denominator := total
	if denominator == 0 {
		denominator = 1
	}
	writeJSON(w, http.StatusOK, cacheStatsResponse{
		TotalEntries: total,
		ValidEntries: valid,
		HitRate:      fmt.Sprintf("%.1f%%", float64(valid)/float64(denominator)*100),
	})
}
