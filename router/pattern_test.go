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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anser-dev/anser/converter"
)

func TestCompilePattern(t *testing.T) {
	t.Parallel()

	registry := converter.Default()

	t.Run("literal template", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/users/active", registry)
		require.NoError(t, err)
		assert.Equal(t, "/users/active", p.Template())
		assert.Empty(t, p.ParamNames())
	})

	t.Run("typed and untyped slots", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/users/{id:int}/posts/{slug}", registry)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "slug"}, p.ParamNames())
	})

	t.Run("invalid templates", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			template string
		}{
			{name: "missing leading slash", template: "users"},
			{name: "empty template", template: ""},
			{name: "trailing slash", template: "/users/"},
			{name: "empty segment", template: "/users//posts"},
			{name: "partial slot", template: "/users/v{id}"},
			{name: "unterminated slot", template: "/users/{id"},
			{name: "invalid parameter name", template: "/users/{1id}"},
			{name: "empty parameter name", template: "/users/{}"},
			{name: "duplicate parameter", template: "/{id}/x/{id}"},
			{name: "unknown converter", template: "/users/{id:bogus}"},
			{name: "path slot before the end", template: "/files/{rest:path}/meta"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := CompilePattern(tt.template, registry)
				assert.ErrorIs(t, err, ErrInvalidPattern, "template %q", tt.template)
			})
		}
	})

	t.Run("unknown converter wraps registry error", func(t *testing.T) {
		t.Parallel()

		_, err := CompilePattern("/users/{id:bogus}", registry)
		assert.ErrorIs(t, err, converter.ErrUnknownConverter)
	})
}

func TestPatternMatchLeaf(t *testing.T) {
	t.Parallel()

	registry := converter.Default()

	t.Run("decodes typed parameters", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/users/{id:int}", registry)
		require.NoError(t, err)

		params := make(map[string]any)
		_, ok := p.match("/users/42", false, params)
		require.True(t, ok)
		assert.Equal(t, 42, params["id"])
	})

	t.Run("untyped slot yields a string", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/users/{name}", registry)
		require.NoError(t, err)

		params := make(map[string]any)
		_, ok := p.match("/users/ada", false, params)
		require.True(t, ok)
		assert.Equal(t, "ada", params["name"])
	})

	t.Run("float and uuid converters", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/m/{ratio:float}/{key:uuid}", registry)
		require.NoError(t, err)

		id := uuid.New()
		params := make(map[string]any)
		_, ok := p.match("/m/0.5/"+id.String(), false, params)
		require.True(t, ok)
		assert.Equal(t, 0.5, params["ratio"])
		assert.Equal(t, id, params["key"])
	})

	t.Run("path converter captures the remainder", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/files/{rest:path}", registry)
		require.NoError(t, err)

		params := make(map[string]any)
		_, ok := p.match("/files/docs/2026/report.pdf", false, params)
		require.True(t, ok)
		assert.Equal(t, "docs/2026/report.pdf", params["rest"])
	})

	t.Run("converter rejects the segment", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/users/{id:int}", registry)
		require.NoError(t, err)

		for _, path := range []string{"/users/4x2", "/users/-1", "/users/"} {
			_, ok := p.match(path, false, nil)
			assert.False(t, ok, "path %q", path)
		}
	})

	t.Run("leaf must consume the whole path", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/users/{id:int}", registry)
		require.NoError(t, err)

		_, ok := p.match("/users/42/posts", false, nil)
		assert.False(t, ok)
	})

	t.Run("bare root matches only the root path", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/", registry)
		require.NoError(t, err)

		_, ok := p.match("/", false, nil)
		assert.True(t, ok)
		_, ok = p.match("/users", false, nil)
		assert.False(t, ok)
	})
}

func TestPatternMatchPrefix(t *testing.T) {
	t.Parallel()

	registry := converter.Default()

	t.Run("returns the remainder", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/api/v1", registry)
		require.NoError(t, err)

		rest, ok := p.match("/api/v1/users/42", true, nil)
		require.True(t, ok)
		assert.Equal(t, "/users/42", rest)
	})

	t.Run("exact prefix leaves an empty remainder", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/api", registry)
		require.NoError(t, err)

		rest, ok := p.match("/api", true, nil)
		require.True(t, ok)
		assert.Empty(t, rest)
	})

	t.Run("bare root consumes nothing", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/", registry)
		require.NoError(t, err)

		rest, ok := p.match("/users/42", true, nil)
		require.True(t, ok)
		assert.Equal(t, "/users/42", rest)
	})

	t.Run("non-matching prefix", func(t *testing.T) {
		t.Parallel()

		p, err := CompilePattern("/api", registry)
		require.NoError(t, err)

		_, ok := p.match("/apiv2/users", true, nil)
		assert.False(t, ok)
	})
}
