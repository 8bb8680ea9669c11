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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircularDependency indicates that the dependency graph contains a cycle.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrUnresolvedDependency indicates that a required binding has no provider.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrProviderFailed indicates that a provider returned an error.
	ErrProviderFailed = errors.New("provider failed")
)

// CircularDependencyError reports a dependency cycle with the participating
// binding names in traversal order. It matches ErrCircularDependency under
// errors.Is.
type CircularDependencyError struct {
	// Cycle lists the binding names forming the cycle; the first name is
	// repeated at the end to close the loop.
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// UnresolvedDependencyError reports a binding name that no provider satisfies.
// It matches ErrUnresolvedDependency under errors.Is.
type UnresolvedDependencyError struct {
	// Name is the missing binding.
	Name string
	// RequiredBy is the provider or handler that requested the binding.
	RequiredBy string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("unresolved dependency: %q required by %q has no binding", e.Name, e.RequiredBy)
}

func (e *UnresolvedDependencyError) Unwrap() error { return ErrUnresolvedDependency }
