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

// Package background runs tasks queued during a request after the response
// has been written.
//
// Tasks run sequentially, in the order they were added, on the request's
// goroutine once the client has its response. A failing task is logged and
// does not stop the remaining tasks; the response is already on the wire, so
// there is nothing to surface to the client.
package background

import (
	"context"
	"log/slog"
)

// Task is a unit of deferred work with a name for log correlation.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Tasks is an ordered task queue. The zero value is ready to use.
// Tasks is not safe for concurrent mutation; a queue belongs to exactly one
// in-flight request.
type Tasks struct {
	queue []Task
}

// Add appends a task to the queue.
func (t *Tasks) Add(name string, run func(ctx context.Context) error) {
	t.queue = append(t.queue, Task{Name: name, Run: run})
}

// Len returns the number of queued tasks.
func (t *Tasks) Len() int { return len(t.queue) }

// Drain runs every queued task in order and empties the queue.
// Task failures are logged at error level and swallowed.
func (t *Tasks) Drain(ctx context.Context, logger *slog.Logger) {
	for _, task := range t.queue {
		if err := ctx.Err(); err != nil {
			logger.WarnContext(ctx, "background tasks abandoned", "remaining", t.Len(), "reason", err)
			break
		}
		if err := task.Run(ctx); err != nil {
			logger.ErrorContext(ctx, "background task failed", "task", task.Name, "error", err)
		}
	}
	t.queue = t.queue[:0]
}
