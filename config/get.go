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

import (
	"time"

	"github.com/spf13/cast"
)

// Get returns the value at the dotted key path as type T, or the zero value
// of T when the key is absent or not convertible.
//
// Example:
//
//	port := config.Get[int](cfg, "server.port")
//	timeout := config.Get[time.Duration](cfg, "server.read_timeout")
func Get[T any](c *Config, key string) T {
	var zero T
	return GetOr(c, key, zero)
}

// GetOr returns the value at the dotted key path as type T, falling back to
// defaultVal when the key is absent or not convertible. The type is inferred
// from the default.
func GetOr[T any](c *Config, key string, defaultVal T) T {
	if c == nil {
		return defaultVal
	}
	val := c.lookup(key)
	if val == nil {
		return defaultVal
	}
	if typed, ok := val.(T); ok {
		return typed
	}
	if converted, ok := convert[T](val); ok {
		return converted
	}
	return defaultVal
}

// convert coerces common scalar types through the cast library.
func convert[T any](val any) (T, bool) {
	var zero T
	var result any
	var err error

	switch any(zero).(type) {
	case string:
		result, err = cast.ToStringE(val)
	case bool:
		result, err = cast.ToBoolE(val)
	case int:
		result, err = cast.ToIntE(val)
	case int64:
		result, err = cast.ToInt64E(val)
	case uint:
		result, err = cast.ToUintE(val)
	case float64:
		result, err = cast.ToFloat64E(val)
	case time.Duration:
		result, err = cast.ToDurationE(val)
	case time.Time:
		result, err = cast.ToTimeE(val)
	case []string:
		result, err = cast.ToStringSliceE(val)
	case map[string]string:
		result, err = cast.ToStringMapStringE(val)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	typed, ok := result.(T)
	return typed, ok
}
