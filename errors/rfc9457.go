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

	"github.com/google/uuid"
)

// RFC9457 formats errors as RFC 9457 problem details with Content-Type
// "application/problem+json".
type RFC9457 struct {
	// BaseURL is prepended to problem type slugs. Empty leaves Type as
	// "about:blank".
	BaseURL string

	// ErrorIDGenerator generates unique IDs for error correlation.
	// Defaults to UUID generation; DisableErrorID turns the field off.
	ErrorIDGenerator func() string

	// DisableErrorID omits the error_id extension.
	DisableErrorID bool
}

// NewRFC9457 creates an RFC9457 formatter with the given problem-type base URL.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// ProblemDetail is the wire form of an RFC 9457 problem.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	ErrorID  string `json:"error_id,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// Format implements Formatter.
func (f *RFC9457) Format(req *http.Request, err error) Response {
	status := http.StatusInternalServerError
	var coded StatusCoder
	if errors.As(err, &coded) {
		status = coded.HTTPStatus()
	}

	detail := http.StatusText(status)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		detail = httpErr.Detail
	}

	problem := ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
	if f.BaseURL != "" {
		problem.Type = f.BaseURL + "/" + slugify(http.StatusText(status))
	}
	if req != nil {
		problem.Instance = req.URL.Path
	}
	if !f.DisableErrorID {
		gen := f.ErrorIDGenerator
		if gen == nil {
			gen = func() string { return uuid.NewString() }
		}
		problem.ErrorID = gen()
	}

	var detailed Detailer
	if errors.As(err, &detailed) {
		problem.Errors = detailed.Details()
	}

	return Response{
		Status:      status,
		ContentType: "application/problem+json",
		Body:        problem,
	}
}

// slugify lowercases a status text into a problem-type slug,
// e.g. "Not Found" -> "not-found".
func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
