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
	"fmt"
	"net/http"
)

// HTTPError is an error with an HTTP status and a client-facing detail
// message. It may wrap an underlying cause that is never exposed to clients.
type HTTPError struct {
	Status int
	Detail string
	Err    error
}

// NewHTTP creates an HTTPError with the given status and detail.
// An empty detail falls back to the standard status text.
func NewHTTP(status int, detail string) *HTTPError {
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &HTTPError{Status: status, Detail: detail}
}

// Wrap creates an HTTPError around a cause.
func Wrap(status int, detail string, err error) *HTTPError {
	e := NewHTTP(status, detail)
	e.Err = err
	return e
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Detail, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Detail)
}

// HTTPStatus implements StatusCoder.
func (e *HTTPError) HTTPStatus() int { return e.Status }

// Unwrap returns the wrapped cause, if any.
func (e *HTTPError) Unwrap() error { return e.Err }
