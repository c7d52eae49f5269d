// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/emberwatch/emberwatch/internal/domain/model"
	"github.com/emberwatch/emberwatch/internal/domain/risk"
	"github.com/emberwatch/emberwatch/internal/domain/tips"
	"github.com/emberwatch/emberwatch/internal/settings"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Assess validates a metrics record and computes its risk assessment.
	Assess(ctx context.Context, rec model.MetricsRecord) (risk.Assessment, error)

	// Tips generates wellness tips for an assessed record.
	Tips(ctx context.Context, rec model.MetricsRecord, a risk.Assessment) (tips.Result, error)

	// Settings returns the current user-facing settings.
	Settings(ctx context.Context) (settings.Settings, error)

	// OpenAIAvailable reports whether the upstream tips provider is usable.
	OpenAIAvailable() bool

	// Uptime reports how long the service has been running.
	Uptime() time.Duration

	// CacheStats exposes tip cache occupancy.
	CacheStats(ctx context.Context) (total, valid int)
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	assessHandler     *AssessHandler
	tipsHandler       *TipsHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	cacheStatsHandler *CacheStatsHandler
	settingsHandler   *SettingsHandler

	allowedOrigins []string
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS origin allowlist.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		assessHandler:     NewAssessHandler(deps),
		tipsHandler:       NewTipsHandler(deps),
		healthHandler:     NewHealthHandler(deps),
		statsHandler:      NewStatsHandler(statsProvider),
		cacheStatsHandler: NewCacheStatsHandler(deps),
		settingsHandler:   NewSettingsHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/assess", s.wrap(s.assessHandler.HandleAssess, "assess"))
	mux.HandleFunc("/tips", s.wrap(s.tipsHandler.HandleTips, "tips"))
	mux.HandleFunc("/health", s.wrap(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/cache/stats", s.wrap(s.cacheStatsHandler.HandleCacheStats, "cache_stats"))
	mux.HandleFunc("/settings", s.wrap(s.settingsHandler.HandleSettings, "settings"))
}

// wrap applies the standard middleware chain to a handler.
func (s *Server) wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	h := MetricsMiddleware(next, endpoint)
	h = SecurityHeadersMiddleware(h)
	h = CORSMiddleware(h, s.allowedOrigins)
	h = RequestLoggingMiddleware(h, endpoint)
	return h
}

// metricsRequest mirrors the JSON schema for POST /assess.
type metricsRequest struct {
	Sleep     *float64 `json:"sleep"`
	Work      *float64 `json:"work"`
	Screen    *float64 `json:"screen"`
	HeartRate *float64 `json:"heartRate"`
	Steps     *float64 `json:"steps"`
}

func (r metricsRequest) record() model.MetricsRecord {
	return model.MetricsRecord{
		SleepHours:  r.Sleep,
		WorkHours:   r.Work,
		ScreenHours: r.Screen,
		HeartRate:   r.HeartRate,
		Steps:       r.Steps,
	}
}

// assessmentResponse mirrors the JSON schema for a successful assessment.
type assessmentResponse struct {
	Score       float64       `json:"score"`
	Category    risk.Category `json:"category"`
	Description string        `json:"description"`
	Urgency     risk.Urgency  `json:"urgency"`
	Factors     risk.Factors  `json:"factors"`
	Timestamp   string        `json:"timestamp"`
}

func newAssessmentResponse(a risk.Assessment) assessmentResponse {
	return assessmentResponse{
		Score:       a.Score,
		Category:    a.Category,
		Description: a.Description,
		Urgency:     a.Urgency,
		Factors:     a.Factors,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeValidationError maps a risk.ValidationError onto the 400 envelope,
// carrying the failing field and enumerated reason.
func writeValidationError(w http.ResponseWriter, verr *risk.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    string(verr.Reason),
		Message: verr.Error(),
		Field:   verr.Field,
	})
}

// handleAssessmentError translates core errors to HTTP responses.
func handleAssessmentError(w http.ResponseWriter, err error) {
	var verr *risk.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
