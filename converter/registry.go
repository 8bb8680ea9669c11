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

package converter

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Registry maps converter names to converters.
//
// Registration happens during application startup, in a single goroutine or
// under the registry's own lock. Before routing starts the registry is sealed;
// a sealed registry rejects further registration and is safe for concurrent
// lookups without coordination.
type Registry struct {
	mu         sync.Mutex
	converters map[string]*Converter
	sealed     atomic.Bool
}

// NewRegistry creates an empty registry.
// Most callers want Default, which includes the built-in converters.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]*Converter)}
}

// Default creates a registry preloaded with the built-in converters:
// str, int, float, uuid, path and datetime.
func Default() *Registry {
	r := NewRegistry()
	for name, c := range map[string]*Converter{
		String:   newStringConverter(),
		Int:      newIntConverter(),
		Float:    newFloatConverter(),
		UUID:     newUUIDConverter(),
		Path:     newPathConverter(),
		DateTime: newDateTimeConverter(),
	} {
		// Registration into a fresh registry cannot collide.
		if err := r.Register(name, c); err != nil {
			panic(fmt.Sprintf("converter.Default: %v", err))
		}
	}
	return r
}

// Register adds a converter under the given name.
// It returns ErrDuplicateConverter if the name is taken and ErrRegistrySealed
// if the registry has already been sealed.
func (r *Registry) Register(name string, c *Converter) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMatcher)
	}
	if c == nil {
		return fmt.Errorf("%w: nil converter for %q", ErrInvalidMatcher, name)
	}
	if r.sealed.Load() {
		return fmt.Errorf("%w: cannot register %q", ErrRegistrySealed, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.converters[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateConverter, name)
	}
	r.converters[name] = c
	return nil
}

// Resolve returns the converter registered under name.
// Pattern compilation calls Resolve eagerly so that a missing converter fails
// application startup rather than the first request.
func (r *Registry) Resolve(name string) (*Converter, error) {
	r.mu.Lock()
	c, ok := r.converters[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConverter, name)
	}
	return c, nil
}

// Seal marks the registry immutable. Lookups after Seal require no locking on
// the caller's side; further Register calls fail with ErrRegistrySealed.
// Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Sealed reports whether the registry has been sealed.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}
