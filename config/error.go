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

package config

import "errors"

var (
	// ErrInvalidSource indicates a nil or misconfigured source.
	ErrInvalidSource = errors.New("invalid configuration source")

	// ErrReadFile indicates a configuration file could not be read.
	ErrReadFile = errors.New("cannot read configuration file")

	// ErrParseFile indicates a configuration file could not be parsed.
	ErrParseFile = errors.New("cannot parse configuration file")

	// ErrBind indicates the merged values do not decode into the target struct.
	ErrBind = errors.New("cannot bind configuration")
)
