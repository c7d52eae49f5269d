// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and environment on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// OpenAIAPIKey enables model-backed tip generation when set.
	OpenAIAPIKey string `koanf:"openai_api_key"`

	// OpenAIBaseURL overrides the completions endpoint for compatible servers.
	OpenAIBaseURL string `koanf:"openai_base_url"`

	// OpenAIModel selects the completion model.
	OpenAIModel string `koanf:"openai_model"`

	// TipCacheTTLSeconds bounds how long generated tips are reused.
	TipCacheTTLSeconds int `koanf:"tip_cache_ttl_seconds"`

	// TipCacheSize bounds the number of cached tip responses.
	TipCacheSize int `koanf:"tip_cache_size"`

	// AllowedOrigins is the CORS origin allowlist.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8090",
		OpenAIModel:        "gpt-4",
		TipCacheTTLSeconds: 300,
		TipCacheSize:       1000,
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://localhost:5000",
		},
	}
}
