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

// Package tracing opens an OpenTelemetry span per routed request.
//
// The recorder plugs into the router as an observability recorder. Spans are
// named "METHOD route-template" and carry the standard HTTP semantic
// attributes; pipeline errors mark the span as failed and are recorded as
// span events.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anser-dev/anser/router"
)

const tracerName = "github.com/anser-dev/anser/tracing"

// Option defines functional options for the recorder.
type Option func(*Recorder)

// WithTracerProvider sets the provider to create the tracer from.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Recorder) { r.provider = tp }
}

// Recorder opens a server span for each routed request.
type Recorder struct {
	provider trace.TracerProvider
	tracer   trace.Tracer
}

// New creates a recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	if r.provider == nil {
		r.provider = otel.GetTracerProvider()
	}
	r.tracer = r.provider.Tracer(tracerName)
	return r
}

// StartRequest implements router.ObservabilityRecorder.
func (r *Recorder) StartRequest(ctx context.Context, method, route string) (context.Context, router.EndFunc) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("%s %s", method, route),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
		),
	)
	return ctx, func(status, size int, err error) {
		span.SetAttributes(
			attribute.Int("http.response.status_code", status),
			attribute.Int("http.response.body.size", size),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		}
		span.End()
	}
}
