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
	"errors"
	"net/http"
)

// Simple formats errors as a flat JSON object:
//
//	{"detail": "message", "details": {...}}
//
// Client-facing text comes from HTTPError.Detail when present; other errors
// render only the generic status text so internal messages never leak.
type Simple struct {
	// StatusResolver overrides status determination. If nil, StatusCoder
	// errors choose their own status and everything else is a 500.
	StatusResolver func(err error) int
}

// NewSimple creates a Simple formatter.
func NewSimple() *Simple { return &Simple{} }

// Format implements Formatter.
func (f *Simple) Format(_ *http.Request, err error) Response {
	status := f.status(err)

	detail := http.StatusText(status)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		detail = httpErr.Detail
	}

	body := map[string]any{"detail": detail}
	var detailed Detailer
	if errors.As(err, &detailed) {
		body["details"] = detailed.Details()
	}

	return Response{
		Status:      status,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}

func (f *Simple) status(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}
	var coded StatusCoder
	if errors.As(err, &coded) {
		return coded.HTTPStatus()
	}
	return http.StatusInternalServerError
}
