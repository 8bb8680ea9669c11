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

package recovery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anser-dev/anser/router"
)

func TestPanicBecomesInternalServerError(t *testing.T) {
	t.Parallel()

	r := router.MustNew(
		router.WithMiddleware(New()),
		router.WithRoutes(router.Gateway("/boom", func(c *router.Context) error {
			panic("kaboom")
		})),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// The panic message stays server side.
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body["detail"])
}

func TestPanicReachesErrorHandlers(t *testing.T) {
	t.Parallel()

	r := router.MustNew(
		router.WithMiddleware(New()),
		router.WithErrorHandlers(router.OnType[*PanicError](func(c *router.Context, err error) error {
			return c.String(http.StatusServiceUnavailable, "try later")
		})),
		router.WithRoutes(router.Gateway("/boom", func(c *router.Context) error {
			panic("kaboom")
		})),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "try later", rec.Body.String())
}

func TestAbortHandlerPanicsThrough(t *testing.T) {
	t.Parallel()

	r := router.MustNew(
		router.WithMiddleware(New()),
		router.WithRoutes(router.Gateway("/abort", func(c *router.Context) error {
			panic(http.ErrAbortHandler)
		})),
	)

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}
