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

package inject

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// visit states for the depth-first graph walk.
const (
	unvisited = iota
	visiting
	visited
)

// Resolver evaluates a provider map on demand.
//
// A Resolver is immutable and safe for concurrent use; all per-pass state
// lives in the Values map created by Resolve. Only the providers reachable
// from the requested targets are evaluated, each at most once per pass.
type Resolver struct {
	providers Map
}

// NewResolver creates a resolver over the given provider map.
func NewResolver(providers Map) *Resolver {
	return &Resolver{providers: providers}
}

// Resolve evaluates the targets and their transitive requirements in
// dependency-first order and returns the resolved values.
//
// The seed map supplies request-scoped bindings (such as the current request)
// that satisfy requirements without a provider. Values are memoized for the
// duration of the pass: a binding required by several providers is computed
// once. The returned map contains the seeds plus every evaluated binding.
func (r *Resolver) Resolve(ctx context.Context, seed Values, targets ...string) (Values, error) {
	values := make(Values, len(seed)+len(targets))
	maps.Copy(values, seed)

	w := &walker{resolver: r, values: values, state: make(map[string]int)}
	for _, target := range targets {
		if err := w.resolve(ctx, target, targetRequester); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Validate walks the graph for the given targets without evaluating any
// provider. It reports cycles and missing bindings, assuming the named seeds
// will be present at resolution time. Intended for eager startup validation
// of registered dependency maps.
func (r *Resolver) Validate(seeds []string, targets ...string) error {
	w := &walker{resolver: r, seeds: seeds, state: make(map[string]int), dryRun: true}
	for _, target := range targets {
		if err := w.resolve(context.Background(), target, targetRequester); err != nil {
			return err
		}
	}
	return nil
}

// targetRequester names the root of a resolution pass in error messages.
const targetRequester = "handler"

// walker carries the state of one depth-first pass.
type walker struct {
	resolver *Resolver
	values   Values
	seeds    []string
	state    map[string]int
	stack    []string
	dryRun   bool
}

func (w *walker) resolve(ctx context.Context, name, requiredBy string) error {
	if !w.dryRun {
		if w.values.Has(name) {
			// Seeded or already memoized in this pass.
			return nil
		}
	} else if slices.Contains(w.seeds, name) {
		return nil
	}

	switch w.state[name] {
	case visited:
		return nil
	case visiting:
		return &CircularDependencyError{Cycle: w.cycleFrom(name)}
	}

	provider, ok := w.resolver.providers[name]
	if !ok {
		return &UnresolvedDependencyError{Name: name, RequiredBy: requiredBy}
	}

	w.state[name] = visiting
	w.stack = append(w.stack, name)

	for _, req := range provider.requires {
		if err := w.resolve(ctx, req, name); err != nil {
			return err
		}
	}

	if !w.dryRun {
		if err := ctx.Err(); err != nil {
			return err
		}
		value, err := provider.fn(ctx, w.values)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrProviderFailed, name, err)
		}
		w.values[name] = value
	}

	w.stack = w.stack[:len(w.stack)-1]
	w.state[name] = visited
	return nil
}

// cycleFrom extracts the cycle ending at name from the visiting stack.
func (w *walker) cycleFrom(name string) []string {
	start := slices.Index(w.stack, name)
	if start < 0 {
		start = 0
	}
	cycle := slices.Clone(w.stack[start:])
	return append(cycle, name)
}
