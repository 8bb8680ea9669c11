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

import "errors"

var (
	// ErrDuplicateConverter indicates that a converter name is already registered.
	// Re-registration is never silent: replacing a converter would change the
	// behavior of every pattern compiled against it.
	ErrDuplicateConverter = errors.New("converter already registered")

	// ErrUnknownConverter indicates that no converter is registered under the
	// requested name.
	ErrUnknownConverter = errors.New("unknown converter")

	// ErrRegistrySealed indicates an attempted registration after Seal.
	ErrRegistrySealed = errors.New("converter registry is sealed")

	// ErrInvalidMatcher indicates that a converter matcher expression does not compile.
	ErrInvalidMatcher = errors.New("invalid converter matcher")

	// ErrParse indicates that a raw path segment could not be parsed.
	ErrParse = errors.New("cannot parse path segment")

	// ErrSerialize indicates that a value could not be serialized into a path segment.
	ErrSerialize = errors.New("cannot serialize path value")
)
