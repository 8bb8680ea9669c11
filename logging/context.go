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

package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Semantic convention field names for trace correlation.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// FromContext returns the logger enriched with trace and span IDs when the
// context carries an active OpenTelemetry span. Without a span the logger is
// returned unchanged, so the call is safe on every request path.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = Noop()
	}
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		slog.String(fieldTraceID, sc.TraceID().String()),
		slog.String(fieldSpanID, sc.SpanID().String()),
	)
}
