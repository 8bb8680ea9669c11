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

// Package metrics records per-route request metrics with Prometheus.
//
// The recorder plugs into the router as an observability recorder and
// exposes request counts, durations and response sizes labeled by method,
// route template and status class. Route templates, not raw paths, keep the
// label cardinality bounded.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anser-dev/anser/router"
)

// Option defines functional options for the recorder.
type Option func(*Recorder)

// WithRegistry sets the Prometheus registry to register collectors on.
// Defaults to a fresh registry exposed by Handler.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(r *Recorder) { r.registry = reg }
}

// WithNamespace sets the metric namespace. Defaults to "anser".
func WithNamespace(ns string) Option {
	return func(r *Recorder) { r.namespace = ns }
}

// WithDurationBuckets replaces the request duration histogram buckets.
func WithDurationBuckets(buckets []float64) Option {
	return func(r *Recorder) { r.durationBuckets = buckets }
}

// Recorder collects request metrics. Create one with New, hand it to the
// router with router.WithObservability, and serve Handler on a metrics
// endpoint.
type Recorder struct {
	registry        *prometheus.Registry
	namespace       string
	durationBuckets []float64

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	sizes     *prometheus.HistogramVec
	inflight  prometheus.Gauge
}

// New creates a recorder and registers its collectors.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		namespace:       "anser",
		durationBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	r.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "http_requests_total",
		Help:      "Requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	r.durations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Request duration from routing to response, by method and route.",
		Buckets:   r.durationBuckets,
	}, []string{"method", "route"})
	r.sizes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "http_response_size_bytes",
		Help:      "Response body size, by method and route.",
		Buckets:   prometheus.ExponentialBuckets(128, 4, 8),
	}, []string{"method", "route"})
	r.inflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})

	for _, c := range []prometheus.Collector{r.requests, r.durations, r.sizes, r.inflight} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// MustNew is like New but panics on registration errors.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}
	return r
}

// StartRequest implements router.ObservabilityRecorder.
func (r *Recorder) StartRequest(ctx context.Context, method, route string) (context.Context, router.EndFunc) {
	start := time.Now()
	r.inflight.Inc()
	return ctx, func(status, size int, err error) {
		r.inflight.Dec()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		r.durations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		r.sizes.WithLabelValues(method, route).Observe(float64(size))
	}
}

// Handler returns an HTTP handler exposing the recorder's registry in the
// Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, for registering application
// collectors alongside the router's.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
