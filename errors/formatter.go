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

// Package errors shapes Go errors into HTTP error responses.
//
// It provides the HTTPError type for errors that carry a status code and
// client-facing detail, plus two response formatters: Simple (plain JSON
// object) and RFC9457 (application/problem+json problem details). The router's
// default error handler feeds unhandled errors through a Formatter; custom
// error handlers may use one directly.
package errors

import "net/http"

// Formatter converts an error into the components of an HTTP error response.
// Implementations must not write to the network; the caller owns the response.
type Formatter interface {
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response ready to be written.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body, marshaled by the caller.
	Body any

	// Headers holds additional headers to set, such as Allow on 405.
	Headers http.Header
}

// StatusCoder lets domain errors declare their own HTTP status code.
// Errors without it format as 500.
type StatusCoder interface {
	error
	HTTPStatus() int
}

// Detailer lets domain errors expose structured detail in the response body.
type Detailer interface {
	error
	Details() any
}
