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

package app

import (
	"log/slog"
	"time"

	"github.com/anser-dev/anser/metrics"
	"github.com/anser-dev/anser/router"
	"github.com/anser-dev/anser/scheduler"
	"github.com/anser-dev/anser/tracing"
)

// Option defines functional options for the application.
type Option func(*App)

// WithSettings replaces the environment-loaded settings entirely.
func WithSettings(s Settings) Option {
	return func(a *App) { a.settings = s }
}

// WithServiceName sets the service name used in logs and the banner.
func WithServiceName(name string) Option {
	return func(a *App) { a.settings.ServiceName = name }
}

// WithVersion sets the service version.
func WithVersion(version string) Option {
	return func(a *App) { a.settings.ServiceVersion = version }
}

// WithEnvironment sets the environment name, "development" or "production".
func WithEnvironment(env string) Option {
	return func(a *App) { a.settings.Environment = env }
}

// WithAddress sets the listen address, like ":8080".
func WithAddress(addr string) Option {
	return func(a *App) { a.settings.Address = addr }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) { a.settings.ShutdownTimeout = d }
}

// WithH2C serves HTTP/2 over cleartext alongside HTTP/1.1, for gRPC
// gateways and proxies that speak h2c.
func WithH2C() Option {
	return func(a *App) { a.settings.EnableH2C = true }
}

// WithoutBanner suppresses the startup banner.
func WithoutBanner() Option {
	return func(a *App) { a.settings.DisableBanner = true }
}

// WithLogger replaces the default structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithRoutes registers routes on the application's router.
func WithRoutes(entries ...router.Entry) Option {
	return func(a *App) { a.routerOpts = append(a.routerOpts, router.WithRoutes(entries...)) }
}

// WithRouterOptions forwards options to the underlying router.
func WithRouterOptions(opts ...router.Option) Option {
	return func(a *App) { a.routerOpts = append(a.routerOpts, opts...) }
}

// WithMetrics enables Prometheus request metrics, served on path.
// An empty path records metrics without mounting the endpoint.
func WithMetrics(rec *metrics.Recorder, path string) Option {
	return func(a *App) {
		a.metrics = rec
		a.metricsPath = path
	}
}

// WithTracing enables OpenTelemetry request tracing.
func WithTracing(rec *tracing.Recorder) Option {
	return func(a *App) { a.tracing = rec }
}

// WithScheduler attaches a cron scheduler started and stopped with the
// server.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(a *App) { a.scheduler = s }
}

// OnStart registers a hook that runs before the listener opens. A failing
// hook aborts startup.
func OnStart(hook Hook) Option {
	return func(a *App) { a.hooks.start = append(a.hooks.start, hook) }
}

// OnReady registers a hook that runs once the listener is accepting.
func OnReady(hook Hook) Option {
	return func(a *App) { a.hooks.ready = append(a.hooks.ready, hook) }
}

// OnShutdown registers a hook that runs during graceful shutdown, in reverse
// registration order.
func OnShutdown(hook Hook) Option {
	return func(a *App) { a.hooks.shutdown = append(a.hooks.shutdown, hook) }
}
