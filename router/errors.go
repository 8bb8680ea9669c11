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
	"errors"
	"fmt"
	"net/http"
	"strings"

	anserrors "github.com/anser-dev/anser/errors"
)

var (
	// ErrInvalidPattern indicates a malformed route template or converter
	// misuse. Raised at registration time and fatal to startup.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrNotFound indicates that no route matches the request path.
	ErrNotFound = errors.New("route not found")

	// ErrMethodNotAllowed indicates a path match without a method match.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrPermissionDenied indicates a permission check rejected the request.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNilHandler indicates a route registered without a handler.
	ErrNilHandler = errors.New("route handler is nil")

	// ErrResponseWriterNotHijacker indicates the underlying ResponseWriter
	// does not support connection hijacking (needed for websocket upgrades).
	ErrResponseWriterNotHijacker = errors.New("response writer does not implement http.Hijacker")
)

// permissionDeniedDetail is the client-facing message for denied requests.
const permissionDeniedDetail = "You do not have permission to perform this action."

// NotFoundError reports an unmatched request path.
// It matches ErrNotFound under errors.Is and renders as a 404.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no route matches %q", e.Path)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// HTTPStatus implements the status contract used by error formatters.
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// MethodNotAllowedError reports a path that matched at least one route whose
// method set excludes the request method. Allowed is the union of supported
// methods across every path-matching route, in registration order.
// It matches ErrMethodNotAllowed under errors.Is and renders as a 405 with an
// Allow header.
type MethodNotAllowedError struct {
	Path    string
	Method  string
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for %q (allowed: %s)",
		e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

func (e *MethodNotAllowedError) Unwrap() error { return ErrMethodNotAllowed }

// HTTPStatus implements the status contract used by error formatters.
func (e *MethodNotAllowedError) HTTPStatus() int { return http.StatusMethodNotAllowed }

// Details exposes the allowed method set in formatted responses.
func (e *MethodNotAllowedError) Details() any {
	return map[string]any{"allowed": e.Allowed}
}

// PermissionDeniedError reports a permission check failure.
// It matches ErrPermissionDenied under errors.Is and renders as a 403 with
// the standard denial detail.
type PermissionDeniedError struct {
	Path string
}

func (e *PermissionDeniedError) Error() string { return permissionDeniedDetail }

func (e *PermissionDeniedError) Unwrap() []error {
	return []error{
		ErrPermissionDenied,
		anserrors.NewHTTP(http.StatusForbidden, permissionDeniedDetail),
	}
}

// HTTPStatus implements the status contract used by error formatters.
func (e *PermissionDeniedError) HTTPStatus() int { return http.StatusForbidden }
