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
	"maps"
	"slices"
)

// ProviderFunc produces a dependency value. The deps map carries every
// binding the provider declared in its requires list, already resolved.
// Providers may block on I/O; the context is the request's context and is
// checked for cancellation between provider invocations.
type ProviderFunc func(ctx context.Context, deps Values) (any, error)

// Provider couples a producer function with its declared requirements.
// Requirements are binding names: either other providers in the same
// effective map or request-scoped seed values.
type Provider struct {
	fn       ProviderFunc
	requires []string
}

// Factory creates a provider from a function and its declared requirements.
func Factory(fn ProviderFunc, requires ...string) *Provider {
	return &Provider{fn: fn, requires: slices.Clone(requires)}
}

// Value creates a provider that always yields the given constant.
func Value(v any) *Provider {
	return &Provider{fn: func(context.Context, Values) (any, error) { return v, nil }}
}

// Requires returns the provider's declared requirement names.
func (p *Provider) Requires() []string {
	return slices.Clone(p.requires)
}

// Map is a named set of providers. A route's effective dependency map is the
// leaf-wins overlay of the maps declared along its scope chain.
type Map map[string]*Provider

// Overlay merges maps left to right; later (more specific) layers win on name
// collisions. A nil result is never returned; overlaying nothing yields an
// empty map.
func Overlay(layers ...Map) Map {
	merged := make(Map)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}
	return merged
}

// Values holds resolved binding values for one resolution pass.
type Values map[string]any

// Get returns the value bound under name, or nil.
func (v Values) Get(name string) any {
	return v[name]
}

// Has reports whether a binding is present.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// As returns the value bound under name asserted to type T.
// The second return is false if the binding is absent or has another type.
func As[T any](v Values, name string) (T, bool) {
	val, ok := v[name]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := val.(T)
	return typed, ok
}
