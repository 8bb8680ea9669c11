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

// Package converter provides the typed path-parameter converter registry used
// by route pattern compilation.
//
// A converter couples a segment matcher with a parse/serialize function pair.
// Converters are looked up by name when a route template such as
// "/users/{id:int}" is compiled, so an unknown or misused converter surfaces
// at registration time rather than at request time.
//
// The registry is process-wide state: it is populated during application
// startup, sealed before the first request, and read-only afterwards. A sealed
// registry is safe for concurrent use without locking.
//
// Example:
//
//	reg := converter.Default()
//	reg.Register("slug", converter.MustNew(`[a-z0-9-]+`, nil, nil))
//	reg.Seal()
package converter
