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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anser-dev/anser/logging"
	"github.com/anser-dev/anser/metrics"
	"github.com/anser-dev/anser/router"
)

func quiet() Option { return WithLogger(logging.Noop()) }

func TestNewServesRoutes(t *testing.T) {
	a, err := New(
		quiet(),
		WithRoutes(router.Gateway("/ping", func(c *router.Context) error {
			return c.String(http.StatusOK, "pong")
		})),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestNewRejectsInvalidRoutes(t *testing.T) {
	_, err := New(
		quiet(),
		WithRoutes(router.Gateway("no-slash", func(c *router.Context) error { return nil })),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, router.ErrInvalidPattern)
}

func TestMetricsEndpointMounted(t *testing.T) {
	a, err := New(
		quiet(),
		WithMetrics(metrics.MustNew(), "/metrics"),
		WithRoutes(router.Gateway("/ping", func(c *router.Context) error {
			return c.NoContent()
		})),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	mrec := httptest.NewRecorder()
	a.Router().ServeHTTP(mrec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "anser_http_requests_total")
}

func TestOptionOverridesEnvironmentSettings(t *testing.T) {
	a, err := New(
		quiet(),
		WithServiceName("orders"),
		WithEnvironment(EnvironmentProduction),
		WithAddress("127.0.0.1:9999"),
	)
	require.NoError(t, err)
	assert.Equal(t, "orders", a.Settings().ServiceName)
	assert.Equal(t, EnvironmentProduction, a.Settings().Environment)
	assert.Equal(t, "127.0.0.1:9999", a.Settings().Address)
}

func TestStartLifecycle(t *testing.T) {
	var order []string
	a, err := New(
		quiet(),
		WithoutBanner(),
		WithAddress("127.0.0.1:0"),
		WithShutdownTimeout(2*time.Second),
		OnStart(func(ctx context.Context) error {
			order = append(order, "start")
			return nil
		}),
		OnReady(func(ctx context.Context) error {
			order = append(order, "ready")
			return nil
		}),
		OnShutdown(func(ctx context.Context) error {
			order = append(order, "shutdown-a")
			return nil
		}),
		OnShutdown(func(ctx context.Context) error {
			order = append(order, "shutdown-b")
			return nil
		}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	// Shutdown hooks run in reverse registration order.
	assert.Equal(t, []string{"start", "ready", "shutdown-b", "shutdown-a"}, order)
}

func TestStartFailsWhenStartHookFails(t *testing.T) {
	a, err := New(
		quiet(),
		WithoutBanner(),
		WithAddress("127.0.0.1:0"),
		OnStart(func(ctx context.Context) error {
			return context.DeadlineExceeded
		}),
	)
	require.NoError(t, err)

	err = a.Start(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
