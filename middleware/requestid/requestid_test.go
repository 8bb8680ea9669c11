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

package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anser-dev/anser/router"
)

func TestAssignsAndEchoesID(t *testing.T) {
	t.Parallel()

	var seen string
	r := router.MustNew(
		router.WithMiddleware(New()),
		router.WithRoutes(
			router.Gateway("/", func(c *router.Context) error {
				seen = FromContext(c.Request.Context())
				return c.NoContent()
			}),
		),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(Header))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestIncomingHeaderIgnoredByDefault(t *testing.T) {
	t.Parallel()

	r := router.MustNew(
		router.WithMiddleware(New()),
		router.WithRoutes(router.Gateway("/", func(c *router.Context) error {
			return c.NoContent()
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "spoofed")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.NotEqual(t, "spoofed", rec.Header().Get(Header))
}

func TestTrustedHeader(t *testing.T) {
	t.Parallel()

	r := router.MustNew(
		router.WithMiddleware(New(WithTrustedHeader())),
		router.WithRoutes(router.Gateway("/", func(c *router.Context) error {
			return c.NoContent()
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "upstream-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id", rec.Header().Get(Header))
}

func TestCustomGenerator(t *testing.T) {
	t.Parallel()

	r := router.MustNew(
		router.WithMiddleware(New(WithGenerator(func() string { return "fixed" }))),
		router.WithRoutes(router.Gateway("/", func(c *router.Context) error {
			return c.NoContent()
		})),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fixed", rec.Header().Get(Header))
}
