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

// Package recovery converts handler panics into errors so a panicking route
// takes down one request, not the process.
package recovery

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/anser-dev/anser/router"
)

// PanicError wraps a recovered panic value with the goroutine stack captured
// at the recovery point.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// HTTPStatus reports panics as internal server errors.
func (e *PanicError) HTTPStatus() int { return http.StatusInternalServerError }

// New creates the recovery middleware. Recovered panics flow through the
// route's error-handler chain like any other error; http.ErrAbortHandler is
// re-raised so deliberate connection aborts keep working.
func New() router.Middleware {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				perr := &PanicError{Value: r, Stack: debug.Stack()}
				c.Logger().ErrorContext(c.Request.Context(), "handler panicked",
					"panic", fmt.Sprint(r),
					"path", c.Request.URL.Path,
					"stack", string(perr.Stack),
				)
				err = perr
			}()
			return next(c)
		}
	}
}
