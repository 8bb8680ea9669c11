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

// Package accesslog writes one structured log line per request.
package accesslog

import (
	"log/slog"
	"time"

	"github.com/anser-dev/anser/logging"
	"github.com/anser-dev/anser/middleware/requestid"
	"github.com/anser-dev/anser/router"
)

// Option defines functional options for the middleware.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger to write access lines to. Defaults to a no-op
// logger, which effectively disables the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates the access log middleware. Lines are written after the inner
// chain returns, enriched with trace correlation when a span is active and
// the request id when the requestid middleware ran first.
//
// An error returned by the chain is logged here but still propagates; status
// 0 means a downstream error handler had not written the response yet.
func New(opts ...Option) router.Middleware {
	cfg := config{logger: logging.Noop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			start := time.Now()
			err := next(c)

			ctx := c.Request.Context()
			logger := logging.FromContext(ctx, cfg.logger)
			attrs := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"bytes", c.Writer.Size(),
				"duration", time.Since(start),
				"remote", c.Request.RemoteAddr,
			}
			if id := requestid.FromContext(ctx); id != "" {
				attrs = append(attrs, "request_id", id)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
				logger.ErrorContext(ctx, "request", attrs...)
				return err
			}
			logger.InfoContext(ctx, "request", attrs...)
			return nil
		}
	}
}
