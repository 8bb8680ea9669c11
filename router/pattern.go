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

package router

import (
	"fmt"
	"strings"

	"github.com/anser-dev/anser/converter"
)

// segment is one element of a compiled pattern: either a literal or a typed
// parameter slot.
type segment struct {
	literal  string
	name     string
	conv     *converter.Converter
	convName string
	param    bool
	catchAll bool
}

// Pattern is a compiled route template. Patterns are built once at
// registration time, resolve their converters eagerly, and are immutable
// afterwards.
type Pattern struct {
	template string
	segments []segment
}

// CompilePattern parses a template like "/users/{id:int}/posts/{slug}" into
// literal and parameter segments, resolving each slot's converter against the
// registry. The converter name defaults to "str". Compilation fails with
// ErrInvalidPattern for malformed slots, duplicate parameter names, unknown
// converters, or a path-typed slot before the final segment.
func CompilePattern(template string, registry *converter.Registry) (*Pattern, error) {
	if template == "" || template[0] != '/' {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, template)
	}

	p := &Pattern{template: template}
	if template == "/" {
		return p, nil
	}
	if strings.HasSuffix(template, "/") {
		return nil, fmt.Errorf("%w: %q must not end with '/'", ErrInvalidPattern, template)
	}

	seen := make(map[string]struct{})
	for i, raw := range strings.Split(template[1:], "/") {
		if raw == "" {
			return nil, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPattern, template)
		}
		if p.hasCatchAll() {
			return nil, fmt.Errorf("%w: %q has segments after a path-typed slot", ErrInvalidPattern, template)
		}

		if !strings.HasPrefix(raw, "{") {
			if strings.ContainsAny(raw, "{}") {
				return nil, fmt.Errorf("%w: %q segment %d mixes literal text with a slot", ErrInvalidPattern, template, i)
			}
			p.segments = append(p.segments, segment{literal: raw})
			continue
		}

		if !strings.HasSuffix(raw, "}") || strings.Count(raw, "{") != 1 || strings.Count(raw, "}") != 1 {
			return nil, fmt.Errorf("%w: %q segment %d has malformed slot syntax", ErrInvalidPattern, template, i)
		}

		name, convName := raw[1:len(raw)-1], converter.String
		if colon := strings.IndexByte(name, ':'); colon >= 0 {
			name, convName = name[:colon], name[colon+1:]
		}
		if !validParamName(name) {
			return nil, fmt.Errorf("%w: %q has invalid parameter name %q", ErrInvalidPattern, template, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q declares parameter %q twice", ErrInvalidPattern, template, name)
		}
		seen[name] = struct{}{}

		conv, err := registry.Resolve(convName)
		if err != nil {
			return nil, fmt.Errorf("%w: %q slot %q: %w", ErrInvalidPattern, template, name, err)
		}

		p.segments = append(p.segments, segment{
			name:     name,
			conv:     conv,
			convName: convName,
			param:    true,
			catchAll: convName == converter.Path,
		})
	}
	return p, nil
}

// validParamName accepts Go-identifier-style names.
func validParamName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Template returns the original template string.
func (p *Pattern) Template() string { return p.template }

// ParamNames returns the declared parameter names in pattern order.
func (p *Pattern) ParamNames() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.param {
			names = append(names, seg.name)
		}
	}
	return names
}

func (p *Pattern) hasCatchAll() bool {
	return len(p.segments) > 0 && p.segments[len(p.segments)-1].catchAll
}

func (p *Pattern) hasParams() bool {
	for _, seg := range p.segments {
		if seg.param {
			return true
		}
	}
	return false
}

// match consumes the pattern's segments from the front of path, left to
// right, decoding parameter slots through their converters. In prefix mode
// the unconsumed remainder is returned for continued matching by children; a
// leaf match requires the path to be fully consumed.
//
// Matching is strictly segment by segment with no backtracking: a converter
// either accepts its segment or the whole pattern fails.
func (p *Pattern) match(path string, prefix bool, params map[string]any) (rest string, ok bool) {
	if path == "" || path[0] != '/' {
		return "", false
	}

	// Bare "/" consumes nothing as a prefix and only the root path as a leaf.
	if len(p.segments) == 0 {
		if prefix {
			return path, true
		}
		return "", path == "/"
	}

	rest = path
	for _, seg := range p.segments {
		if rest == "" || rest[0] != '/' {
			return "", false
		}

		var raw string
		if seg.catchAll {
			raw, rest = rest[1:], ""
			if raw == "" {
				return "", false
			}
		} else if slash := strings.IndexByte(rest[1:], '/'); slash >= 0 {
			raw, rest = rest[1:1+slash], rest[1+slash:]
		} else {
			raw, rest = rest[1:], ""
		}
		if raw == "" {
			return "", false
		}

		if !seg.param {
			if raw != seg.literal {
				return "", false
			}
			continue
		}
		if !seg.conv.Matches(raw) {
			return "", false
		}
		value, err := seg.conv.Parse(raw)
		if err != nil {
			return "", false
		}
		if params != nil {
			params[seg.name] = value
		}
	}

	if prefix {
		return rest, true
	}
	return "", rest == ""
}
