package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EMBERWATCH_CONFIG is set
//  3. env (prefix EMBERWATCH_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("EMBERWATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: EMBERWATCH_ADDR, EMBERWATCH_TIP_CACHE_SIZE, ...
	// Keys map to the flat koanf tags on the struct; underscores are preserved.
	envProvider := env.Provider("EMBERWATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "emberwatch_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.TipCacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("%w: tip_cache_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if cfg.TipCacheSize <= 0 {
		return nil, fmt.Errorf("%w: tip_cache_size must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
