// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberwatch/emberwatch/internal/adapters/openai"
	"github.com/emberwatch/emberwatch/internal/domain/model"
	"github.com/emberwatch/emberwatch/internal/domain/risk"
	"github.com/emberwatch/emberwatch/internal/domain/tipcache"
	"github.com/emberwatch/emberwatch/internal/domain/tips"
	"github.com/emberwatch/emberwatch/internal/settings"
	"github.com/emberwatch/emberwatch/pkg/logger"
	"github.com/emberwatch/emberwatch/pkg/metrics"
)

// Service identity reported by the health endpoint.
const (
	ServiceName = "emberwatch"
	Version     = "1.0.0"
)

// Tip response confidence by producing model.
const (
	modelConfidence    = 0.9
	fallbackConfidence = 0.7
	fallbackModel      = "fallback"
)

// Service wires the risk engine, the tips pipeline and the settings store
// behind the interfaces the HTTP API depends on.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine   risk.Assessor
	provider openai.Provider
	cache    tipcache.Cache
	store    settings.Store

	// Configuration
	cacheTTL  time.Duration
	cacheSize int

	// State
	started   bool
	startedAt time.Time

	// Counters
	assessments   atomic.Int64
	tipsServed    atomic.Int64
	categoryCount map[risk.Category]int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProvider sets the upstream tips provider.
func WithProvider(p openai.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithSettingsStore sets the settings store.
func WithSettingsStore(st settings.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithCacheTTL sets how long generated tips are reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithCacheSize bounds the tip cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL:      5 * time.Minute,
		cacheSize:     1000,
		categoryCount: make(map[risk.Category]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.engine = risk.New()
	s.cache = tipcache.New(
		tipcache.WithTTL(s.cacheTTL),
		tipcache.WithMaxSize(s.cacheSize),
	)
	if s.store == nil {
		s.store = settings.NewStaticStore()
	}
	if s.provider == nil {
		s.provider = openai.NewClient("")
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "risk assessment service started",
		logger.Bool("openai_available", s.provider.Available()),
		logger.Duration("tip_cache_ttl", s.cacheTTL),
		logger.Int("tip_cache_size", s.cacheSize),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	total, _ := s.cache.Stats(ctx)
	s.logger.Info(ctx, "risk assessment service stopped",
		logger.Int("cache_entries", total),
		logger.Int("assessments", int(s.assessments.Load())),
	)
	s.started = false
}

// Assess validates rec and computes its risk assessment.
func (s *Service) Assess(ctx context.Context, rec model.MetricsRecord) (risk.Assessment, error) {
	start := time.Now()
	a, err := s.engine.Assess(ctx, rec)
	if err != nil {
		var verr *risk.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationFailure(string(verr.Reason))
		}
		return risk.Assessment{}, err
	}

	metrics.RecordAssessment(string(a.Category))
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
	s.assessments.Add(1)
	s.mu.Lock()
	s.categoryCount[a.Category]++
	s.mu.Unlock()

	s.logger.Debug(ctx, "assessment computed",
		logger.Float64("score", a.Score),
		logger.String("category", string(a.Category)),
	)
	return a, nil
}

// Tips produces exactly three wellness tips for an assessed record, consulting
// the cache first and falling back to the built-in catalog when the upstream
// provider is unavailable or fails.
func (s *Service) Tips(ctx context.Context, rec model.MetricsRecord, a risk.Assessment) (tips.Result, error) {
	metrics.RecordTipsRequest()

	key := tipcache.Key(*rec.SleepHours, *rec.WorkHours, *rec.ScreenHours, a.Category)
	if entry, ok := s.cache.Get(ctx, key); ok {
		metrics.RecordTipCacheHit()
		s.logger.Debug(ctx, "returning cached tips", logger.String("model", entry.Model))
		return s.result(entry.Tips, entry.Model, a.Category, true), nil
	}
	metrics.RecordTipCacheMiss()

	list, producedBy := s.generate(ctx, rec, a)
	list = tips.Pad(list)

	s.cache.Put(ctx, key, tipcache.Entry{Tips: list, Model: producedBy})
	total, _ := s.cache.Stats(ctx)
	metrics.UpdateTipCacheEntries(total)
	metrics.RecordTipsGenerated(producedBy)

	return s.result(list, producedBy, a.Category, false), nil
}

// generate asks the upstream provider for tips, falling back on any failure.
func (s *Service) generate(ctx context.Context, rec model.MetricsRecord, a risk.Assessment) ([]string, string) {
	if !s.provider.Available() {
		return tips.Fallback(a.Category), fallbackModel
	}

	content, producedBy, err := s.provider.Generate(ctx, tips.SystemPrompt, tips.BuildPrompt(rec, a))
	if err != nil {
		metrics.RecordTipsProviderError()
		s.logger.Warn(ctx, "tips provider failed; using fallback", logger.Error(err))
		return tips.Fallback(a.Category), fallbackModel
	}

	parsed := tips.ParseCompletion(content)
	if len(parsed) == 0 {
		return tips.Fallback(a.Category), fallbackModel
	}
	return parsed, producedBy
}

func (s *Service) result(list []string, producedBy string, category risk.Category, cached bool) tips.Result {
	confidence := fallbackConfidence
	if producedBy != fallbackModel {
		confidence = modelConfidence
	}
	if !cached {
		s.tipsServed.Add(1)
	}
	return tips.Result{
		Tips:       list,
		Model:      producedBy,
		RiskLevel:  category,
		Confidence: confidence,
		Cached:     cached,
	}
}

// Settings returns the current (static) settings.
func (s *Service) Settings(ctx context.Context) (settings.Settings, error) {
	return s.store.Get(ctx)
}

// OpenAIAvailable reports whether the upstream provider can serve requests.
func (s *Service) OpenAIAvailable() bool {
	return s.provider != nil && s.provider.Available()
}

// Uptime returns how long the service has been running.
func (s *Service) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return time.Since(s.startedAt)
}

// CacheStats returns total and still-valid tip cache entry counts.
func (s *Service) CacheStats(ctx context.Context) (total, valid int) {
	return s.cache.Stats(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"assessments": s.assessments.Load(),
		"tipsServed":  s.tipsServed.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()
		byCategory := make(map[string]int64, len(s.categoryCount))
		for c, n := range s.categoryCount {
			byCategory[string(c)] = n
		}
		stats["assessmentsByCategory"] = byCategory

		total, valid := s.cache.Stats(context.Background())
		stats["cacheEntries"] = total
		stats["cacheValidEntries"] = valid
		metrics.UpdateTipCacheEntries(total)
	}
	return stats
}
