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

package permission

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAndRequiresEveryPermission mirrors header-gated permission combinations.
func TestAndRequiresEveryPermission(t *testing.T) {
	t.Parallel()

	p := And(RequireHeader("op1"), RequireHeader("op2"))

	req := httptest.NewRequest("GET", "/permissions", nil)
	assert.False(t, p.HasPermission(req))

	req.Header.Set("op1", "test")
	assert.False(t, p.HasPermission(req))

	req.Header.Set("op2", "test")
	assert.True(t, p.HasPermission(req))
}

// TestOrGrantsOnAnyPermission verifies a single grant suffices.
func TestOrGrantsOnAnyPermission(t *testing.T) {
	t.Parallel()

	p := Or(RequireHeader("op1"), RequireHeader("op2"))

	req := httptest.NewRequest("GET", "/", nil)
	assert.False(t, p.HasPermission(req))

	req.Header.Set("op2", "test")
	assert.True(t, p.HasPermission(req))
}

// TestNotInverts verifies inversion composes with And.
func TestNotInverts(t *testing.T) {
	t.Parallel()

	p := Not(And(RequireHeader("op1"), RequireHeader("op2")))

	req := httptest.NewRequest("GET", "/", nil)
	assert.True(t, p.HasPermission(req))

	req.Header.Set("op1", "test")
	req.Header.Set("op2", "test")
	assert.False(t, p.HasPermission(req))
}

// TestEmptyCombinators verifies the identity elements of the algebra.
func TestEmptyCombinators(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	assert.True(t, And().HasPermission(req))
	assert.False(t, Or().HasPermission(req))
	assert.True(t, AllowAny().HasPermission(req))
	assert.False(t, DenyAll().HasPermission(req))
}
