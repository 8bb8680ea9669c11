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

// Package requestid assigns each request a unique id, echoed in the
// X-Request-ID response header and available to handlers through the
// request context.
package requestid

import (
	"context"

	"github.com/google/uuid"

	"github.com/anser-dev/anser/router"
)

// Header is the request and response header carrying the id.
const Header = "X-Request-ID"

type contextKey struct{}

// FromContext returns the request id, or "" when the middleware did not run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Option defines functional options for the middleware.
type Option func(*config)

type config struct {
	trustIncoming bool
	generate      func() string
}

// WithTrustedHeader reuses an incoming X-Request-ID instead of generating a
// fresh one. Only enable this behind a proxy that sets or strips the header.
func WithTrustedHeader() Option {
	return func(c *config) { c.trustIncoming = true }
}

// WithGenerator replaces the id generator. Defaults to random UUIDs.
func WithGenerator(generate func() string) Option {
	return func(c *config) { c.generate = generate }
}

// New creates the request id middleware.
func New(opts ...Option) router.Middleware {
	cfg := config{generate: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			id := ""
			if cfg.trustIncoming {
				id = c.Request.Header.Get(Header)
			}
			if id == "" {
				id = cfg.generate()
			}

			c.Request = c.Request.WithContext(
				context.WithValue(c.Request.Context(), contextKey{}, id))
			c.Writer.Header().Set(Header, id)
			return next(c)
		}
	}
}
