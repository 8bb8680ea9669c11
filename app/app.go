// Copyright 2026 The Anser Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package app assembles a router, observability and a lifecycle-managed HTTP
// server into a runnable service.
//
// The zero-ceremony path is three calls:
//
//	a, err := app.New(
//	    app.WithRoutes(
//	        router.Gateway("/ping", func(c *router.Context) error {
//	            return c.String(http.StatusOK, "pong")
//	        }),
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err = a.Start(ctx)
//
// Settings come from ANSER_-prefixed environment variables and a .env file,
// overridable with options. Everything the router validates is validated
// here too: New fails on the first misconfigured route or dependency.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anser-dev/anser/logging"
	"github.com/anser-dev/anser/metrics"
	"github.com/anser-dev/anser/router"
	"github.com/anser-dev/anser/scheduler"
	"github.com/anser-dev/anser/tracing"
)

// App is an assembled service: router, logger, observability, scheduler and
// lifecycle hooks behind one Start call.
type App struct {
	settings Settings
	logger   *slog.Logger
	router   *router.Router

	metrics     *metrics.Recorder
	metricsPath string
	tracing     *tracing.Recorder
	scheduler   *scheduler.Scheduler

	routerOpts []router.Option
	hooks      hooks
}

// New assembles an application. Settings load from the environment first;
// options override them. The router compiles eagerly, so New reports invalid
// routes, converters and dependency graphs before anything listens.
func New(opts ...Option) (*App, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	a := &App{settings: settings, metricsPath: "/metrics"}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.New(
			logging.WithService(a.settings.ServiceName, a.settings.ServiceVersion),
			logging.WithEnvironment(a.settings.Environment),
		)
	}

	routerOpts := []router.Option{router.WithLogger(a.logger)}
	if a.metrics != nil {
		routerOpts = append(routerOpts, router.WithObservability(a.metrics))
	}
	if a.tracing != nil {
		routerOpts = append(routerOpts, router.WithObservability(a.tracing))
	}
	routerOpts = append(routerOpts, a.routerOpts...)
	if a.metrics != nil && a.metricsPath != "" {
		routerOpts = append(routerOpts, router.WithRoutes(
			router.Gateway(a.metricsPath, WrapHandler(a.metrics.Handler())),
		))
	}

	a.router, err = router.New(routerOpts...)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	return a, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("app.MustNew: %v", err))
	}
	return a
}

// Router returns the compiled router, for tests and manual serving.
func (a *App) Router() *router.Router { return a.router }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Settings returns the effective settings.
func (a *App) Settings() Settings { return a.settings }

// WrapHandler adapts a plain http.Handler into a route handler, for mounting
// third-party handlers such as metrics or profiling endpoints.
func WrapHandler(h http.Handler) router.HandlerFunc {
	return func(c *router.Context) error {
		h.ServeHTTP(c.Writer, c.Request)
		return nil
	}
}
