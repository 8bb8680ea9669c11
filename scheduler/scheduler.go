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

// Package scheduler binds named cron jobs to the application lifecycle.
//
// It wraps robfig/cron: jobs are registered with a cron expression before the
// scheduler starts, run with panic recovery and structured logging, and drain
// gracefully on shutdown. Timer internals belong to the cron library; this
// package only owns registration, logging and lifecycle.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/anser-dev/anser/logging"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Option defines functional options for scheduler configuration.
type Option func(*Scheduler)

// WithLogger sets the logger for job outcomes. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// Scheduler runs named jobs on cron expressions.
// Register every job before Start; registration after Start fails.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	names   map[string]struct{}
	started atomic.Bool
}

// New creates a scheduler with standard 5-field cron expressions.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:   cron.New(),
		logger: logging.Noop(),
		names:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddJob registers a named job under a cron expression.
// Names must be unique; an invalid expression or duplicate name is a
// configuration error and fails immediately.
func (s *Scheduler) AddJob(name, expr string, job Job) error {
	if s.started.Load() {
		return fmt.Errorf("scheduler already started, cannot add job %q", name)
	}
	if _, dup := s.names[name]; dup {
		return fmt.Errorf("job %q already registered", name)
	}
	_, err := s.cron.AddFunc(expr, s.wrap(name, job))
	if err != nil {
		return fmt.Errorf("invalid schedule for job %q: %w", name, err)
	}
	s.names[name] = struct{}{}
	return nil
}

// wrap adds panic recovery and outcome logging around a job.
func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		ctx := context.Background()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled job panicked", "job", name, "panic", r)
			}
		}()
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
			return
		}
		s.logger.Debug("scheduled job completed", "job", name)
	}
}

// Start begins running jobs in their own goroutines. Idempotent.
func (s *Scheduler) Start() {
	if s.started.CompareAndSwap(false, true) {
		s.cron.Start()
		s.logger.Info("scheduler started", "jobs", len(s.names))
	}
}

// Stop halts scheduling and waits for running jobs to finish or the context
// to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown: %w", ctx.Err())
	}
}
