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

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHTTPErrorStatusAndUnwrap verifies status propagation and cause wrapping.
func TestHTTPErrorStatusAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("row not found")
	err := Wrap(http.StatusNotFound, "user does not exist", cause)

	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "user does not exist")
}

// TestHTTPErrorDefaultDetail verifies empty details fall back to status text.
func TestHTTPErrorDefaultDetail(t *testing.T) {
	t.Parallel()

	err := NewHTTP(http.StatusTeapot, "")
	assert.Equal(t, "I'm a teapot", err.Detail)
}

// TestSimpleFormatsHTTPError verifies detail and status of shaped errors.
func TestSimpleFormatsHTTPError(t *testing.T) {
	t.Parallel()

	f := NewSimple()
	req := httptest.NewRequest(http.MethodGet, "/users/9", nil)

	resp := f.Format(req, NewHTTP(http.StatusForbidden, "no access"))
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)
	assert.Equal(t, map[string]any{"detail": "no access"}, resp.Body)
}

// TestSimpleHidesInternalErrors verifies unknown errors render as generic 500s.
func TestSimpleHidesInternalErrors(t *testing.T) {
	t.Parallel()

	f := NewSimple()
	resp := f.Format(nil, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	body := resp.Body.(map[string]any)
	assert.Equal(t, "Internal Server Error", body["detail"])
}

// TestRFC9457ProblemShape verifies problem+json fields.
func TestRFC9457ProblemShape(t *testing.T) {
	t.Parallel()

	f := NewRFC9457("https://api.example.com/problems")
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)

	resp := f.Format(req, NewHTTP(http.StatusConflict, "already exists"))
	require.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "application/problem+json", resp.ContentType)

	problem := resp.Body.(ProblemDetail)
	assert.Equal(t, "https://api.example.com/problems/conflict", problem.Type)
	assert.Equal(t, "Conflict", problem.Title)
	assert.Equal(t, "already exists", problem.Detail)
	assert.Equal(t, "/items/1", problem.Instance)
	assert.NotEmpty(t, problem.ErrorID)
}

// TestRFC9457DisableErrorID verifies the error_id extension can be turned off.
func TestRFC9457DisableErrorID(t *testing.T) {
	t.Parallel()

	f := NewRFC9457("")
	f.DisableErrorID = true

	resp := f.Format(nil, NewHTTP(http.StatusBadRequest, "bad input"))
	problem := resp.Body.(ProblemDetail)
	assert.Equal(t, "about:blank", problem.Type)
	assert.Empty(t, problem.ErrorID)
}
