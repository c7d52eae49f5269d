package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/emberwatch/emberwatch/internal/adapters/http/api"
	"github.com/emberwatch/emberwatch/internal/adapters/http/site"
	"github.com/emberwatch/emberwatch/internal/adapters/openai"
	app "github.com/emberwatch/emberwatch/internal/app"
	"github.com/emberwatch/emberwatch/internal/config"
	"github.com/emberwatch/emberwatch/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("EMBERWATCH_ADDR", ":8080")
			_ = os.Setenv("EMBERWATCH_TIP_CACHE_TTL_SECONDS", "120")
			_ = os.Setenv("EMBERWATCH_OPENAI_MODEL", "gpt-4o-mini")
			defer func() {
				_ = os.Unsetenv("EMBERWATCH_ADDR")
				_ = os.Unsetenv("EMBERWATCH_TIP_CACHE_TTL_SECONDS")
				_ = os.Unsetenv("EMBERWATCH_OPENAI_MODEL")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TipCacheTTLSeconds, convey.ShouldEqual, 120)
				convey.So(cfg.OpenAIModel, convey.ShouldEqual, "gpt-4o-mini")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithProvider(openai.NewClient("test-key")),
					app.WithCacheTTL(time.Minute),
					app.WithCacheSize(100),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should be creatable", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("EMBERWATCH_ADDR", ":8080")
			defer func() { _ = os.Unsetenv("EMBERWATCH_ADDR") }()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				// Load configuration
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				// Create service (without starting to avoid logger dependency)
				svc := app.New(
					app.WithCacheTTL(time.Duration(cfg.TipCacheTTLSeconds)*time.Second),
					app.WithCacheSize(cfg.TipCacheSize),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				// Create HTTP server
				server := api.NewServer(svc, svc, api.WithAllowedOrigins(cfg.AllowedOrigins))
				convey.So(server, convey.ShouldNotBeNil)

				// Create HTTP mux and register routes
				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)
				server.Register(ctx, mux)
				site.Register(ctx, mux)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("EMBERWATCH_ADDR", "")
			defer func() { _ = os.Unsetenv("EMBERWATCH_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should handle invalid options gracefully", func() {
				svc := app.New(
					app.WithCacheTTL(0),
					app.WithCacheSize(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
