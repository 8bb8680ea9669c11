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
	"fmt"
)

// Hook is a lifecycle callback. The context is the server's for start and
// ready hooks, and the shutdown deadline context for shutdown hooks.
type Hook func(ctx context.Context) error

type hooks struct {
	start    []Hook
	ready    []Hook
	shutdown []Hook
}

// runStartHooks runs OnStart hooks in order. The first failure aborts
// startup.
func (a *App) runStartHooks(ctx context.Context) error {
	for _, hook := range a.hooks.start {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("start hook: %w", err)
		}
	}
	return nil
}

// runReadyHooks runs OnReady hooks in order. The server is already
// accepting, so failures are logged rather than fatal.
func (a *App) runReadyHooks(ctx context.Context) {
	for _, hook := range a.hooks.ready {
		if err := hook(ctx); err != nil {
			a.logger.ErrorContext(ctx, "ready hook failed", "error", err)
		}
	}
}

// runShutdownHooks runs OnShutdown hooks in reverse registration order, so
// dependents release before their dependencies.
func (a *App) runShutdownHooks(ctx context.Context) {
	for i := len(a.hooks.shutdown) - 1; i >= 0; i-- {
		if err := a.hooks.shutdown[i](ctx); err != nil {
			a.logger.ErrorContext(ctx, "shutdown hook failed", "error", err)
		}
	}
}
