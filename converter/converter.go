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
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ParseFunc decodes a raw path segment into a typed value.
type ParseFunc func(raw string) (any, error)

// SerializeFunc encodes a typed value back into a path segment.
// It is the inverse of ParseFunc: for every value v in the converter's
// domain, Parse(Serialize(v)) must yield v again.
type SerializeFunc func(value any) (string, error)

// Converter couples a segment matcher with a parse/serialize pair.
// The matcher decides whether a raw segment is a candidate at all; Parse then
// decodes it. Converters are immutable once constructed.
type Converter struct {
	expr      string
	matcher   *regexp.Regexp
	parse     ParseFunc
	serialize SerializeFunc
}

// New creates a converter from a matcher expression and a parse/serialize pair.
// The expression is anchored to the full segment. A nil parse or serialize
// falls back to string identity.
func New(expr string, parse ParseFunc, serialize SerializeFunc) (*Converter, error) {
	matcher, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidMatcher, expr, err)
	}
	if parse == nil {
		parse = func(raw string) (any, error) { return raw, nil }
	}
	if serialize == nil {
		serialize = serializeString
	}
	return &Converter{
		expr:      expr,
		matcher:   matcher,
		parse:     parse,
		serialize: serialize,
	}, nil
}

// MustNew is like New but panics on an invalid matcher expression.
// Intended for package-level converter construction.
func MustNew(expr string, parse ParseFunc, serialize SerializeFunc) *Converter {
	c, err := New(expr, parse, serialize)
	if err != nil {
		panic(fmt.Sprintf("converter.MustNew: %v", err))
	}
	return c
}

// Expr returns the matcher expression the converter was built from.
func (c *Converter) Expr() string { return c.expr }

// Matches reports whether the raw segment is in the converter's textual domain.
func (c *Converter) Matches(raw string) bool { return c.matcher.MatchString(raw) }

// Parse decodes a raw segment into a typed value.
func (c *Converter) Parse(raw string) (any, error) { return c.parse(raw) }

// Serialize encodes a typed value into a path segment.
func (c *Converter) Serialize(value any) (string, error) { return c.serialize(value) }

func serializeString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %T is not a string", ErrSerialize, value)
	}
}

// Built-in converter names.
const (
	String   = "str"
	Int      = "int"
	Float    = "float"
	UUID     = "uuid"
	Path     = "path"
	DateTime = "datetime"
)

// newStringConverter matches any single segment.
func newStringConverter() *Converter {
	return MustNew(`[^/]+`, nil, nil)
}

// newIntConverter matches digit sequences and round-trips int values.
func newIntConverter() *Converter {
	return MustNew(`[0-9]+`,
		func(raw string) (any, error) {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as int: %w", ErrParse, raw, err)
			}
			return n, nil
		},
		func(value any) (string, error) {
			switch v := value.(type) {
			case int:
				return strconv.Itoa(v), nil
			case int64:
				return strconv.FormatInt(v, 10), nil
			default:
				return "", fmt.Errorf("%w: %T is not an integer", ErrSerialize, value)
			}
		})
}

// newFloatConverter matches decimal numbers and round-trips float64 values.
// Serialization uses the shortest decimal form that parses back exactly.
func newFloatConverter() *Converter {
	return MustNew(`[0-9]+(\.[0-9]+)?`,
		func(raw string) (any, error) {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as float: %w", ErrParse, raw, err)
			}
			return f, nil
		},
		func(value any) (string, error) {
			switch v := value.(type) {
			case float64:
				return strconv.FormatFloat(v, 'f', -1, 64), nil
			case float32:
				return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
			default:
				return "", fmt.Errorf("%w: %T is not a float", ErrSerialize, value)
			}
		})
}

// newUUIDConverter validates RFC 4122 textual form and yields uuid.UUID values.
func newUUIDConverter() *Converter {
	return MustNew(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
		func(raw string) (any, error) {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as uuid: %w", ErrParse, raw, err)
			}
			return id, nil
		},
		func(value any) (string, error) {
			switch v := value.(type) {
			case uuid.UUID:
				return v.String(), nil
			case string:
				id, err := uuid.Parse(v)
				if err != nil {
					return "", fmt.Errorf("%w: %q is not a uuid: %w", ErrSerialize, v, err)
				}
				return id.String(), nil
			default:
				return "", fmt.Errorf("%w: %T is not a uuid", ErrSerialize, value)
			}
		})
}

// newPathConverter matches the remaining path including slashes.
// Only legal in the terminal position of a pattern; the pattern compiler
// enforces that restriction.
func newPathConverter() *Converter {
	return MustNew(`.+`, nil, nil)
}

// newDateTimeConverter matches RFC 3339 timestamps and yields time.Time values.
func newDateTimeConverter() *Converter {
	return MustNew(`[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})`,
		func(raw string) (any, error) {
			t, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as datetime: %w", ErrParse, raw, err)
			}
			return t, nil
		},
		func(value any) (string, error) {
			t, ok := value.(time.Time)
			if !ok {
				return "", fmt.Errorf("%w: %T is not a time.Time", ErrSerialize, value)
			}
			return t.Format(time.RFC3339Nano), nil
		})
}
