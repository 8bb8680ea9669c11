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

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anser-dev/anser/router"
)

func TestRecorderCountsRequests(t *testing.T) {
	t.Parallel()

	rec := MustNew()

	_, end := rec.StartRequest(context.Background(), http.MethodGet, "/users/{id:int}")
	end(http.StatusOK, 128, nil)
	_, end = rec.StartRequest(context.Background(), http.MethodGet, "/users/{id:int}")
	end(http.StatusNotFound, 32, nil)

	families, err := rec.Registry().Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				byName[mf.GetName()+label(m.GetLabel(), "status")] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, byName["anser_http_requests_total200"])
	assert.Equal(t, 1.0, byName["anser_http_requests_total404"])
}

func label(pairs []*dto.LabelPair, name string) string {
	for _, p := range pairs {
		if p.GetName() == name {
			return p.GetValue()
		}
	}
	return ""
}

func TestRecorderDefaultsUnwrittenStatusTo200(t *testing.T) {
	t.Parallel()

	rec := MustNew(WithNamespace("test"))

	_, end := rec.StartRequest(context.Background(), http.MethodGet, "/")
	end(0, 0, nil)

	families, err := rec.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "test_http_requests_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		assert.Equal(t, "200", label(mf.GetMetric()[0].GetLabel(), "status"))
	}
}

func TestRecorderEndToEnd(t *testing.T) {
	t.Parallel()

	rec := MustNew()
	r := router.MustNew(
		router.WithObservability(rec),
		router.WithRoutes(
			router.Gateway("/ping", func(c *router.Context) error {
				return c.String(http.StatusOK, "pong")
			}),
		),
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	mw := httptest.NewRecorder()
	rec.Handler().ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, mw.Code)
	assert.Contains(t, mw.Body.String(), `anser_http_requests_total{method="GET",route="/ping",status="200"} 1`)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := New(WithRegistry(reg))
	require.NoError(t, err)
	_, err = New(WithRegistry(reg))
	assert.Error(t, err)
}
