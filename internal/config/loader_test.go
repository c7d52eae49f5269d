package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/emberwatch/emberwatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.OpenAIModel, convey.ShouldEqual, "gpt-4")
				convey.So(cfg.TipCacheTTLSeconds, convey.ShouldEqual, 300)
				convey.So(cfg.TipCacheSize, convey.ShouldEqual, 1000)
				convey.So(len(cfg.AllowedOrigins), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EMBERWATCH_ADDR", ":8080")
			_ = os.Setenv("EMBERWATCH_LOG_LEVEL", "debug")
			_ = os.Setenv("EMBERWATCH_OPENAI_API_KEY", "sk-test")
			_ = os.Setenv("EMBERWATCH_TIP_CACHE_TTL_SECONDS", "60")
			_ = os.Setenv("EMBERWATCH_TIP_CACHE_SIZE", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.OpenAIAPIKey, convey.ShouldEqual, "sk-test")
				convey.So(cfg.TipCacheTTLSeconds, convey.ShouldEqual, 60)
				convey.So(cfg.TipCacheSize, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9091"
log_level: warn
openai_model: gpt-4o-mini
tip_cache_ttl_seconds: 120
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EMBERWATCH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9091")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.OpenAIModel, convey.ShouldEqual, "gpt-4o-mini")
				convey.So(cfg.TipCacheTTLSeconds, convey.ShouldEqual, 120)
			})
		})

		convey.Convey("When file and environment variables disagree", func() {
			yamlContent := `
addr: ":9091"
log_level: warn
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EMBERWATCH_CONFIG", tmpFile)
			_ = os.Setenv("EMBERWATCH_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When validation fails", func() {
			_ = os.Setenv("EMBERWATCH_ADDR", "")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then an invalid-config error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"EMBERWATCH_CONFIG",
		"EMBERWATCH_ADDR",
		"EMBERWATCH_LOG_LEVEL",
		"EMBERWATCH_OPENAI_API_KEY",
		"EMBERWATCH_TIP_CACHE_TTL_SECONDS",
		"EMBERWATCH_TIP_CACHE_SIZE",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "emberwatch-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
