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

// Package inject resolves named dependency graphs per request.
//
// A Provider produces one named value and declares, by name, the other
// bindings it needs. Declarations are explicit lists attached at registration
// time, so graph construction is a static lookup rather than runtime
// reflection. The Resolver evaluates providers dependency-first, memoizes each
// value for the duration of a single resolution pass, and reports cycles and
// missing bindings as typed errors.
//
// Resolution is seeded with request-scoped values (for example the current
// request) that providers may require like any other binding.
//
// Example:
//
//	deps := inject.Map{
//	    "config":  inject.Factory(loadConfig),
//	    "limiter": inject.Factory(newLimiter, "config"),
//	}
//	values, err := inject.NewResolver(deps).Resolve(ctx, nil, "limiter")
package inject
