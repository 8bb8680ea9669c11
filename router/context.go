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
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/anser-dev/anser/background"
	"github.com/anser-dev/anser/inject"
)

// Context carries a single request through the matched route's pipeline.
// Contexts are pooled; handlers must not retain one past their return.
type Context struct {
	Request *http.Request
	Writer  *ResponseWriter

	router *Router
	route  *Route
	params map[string]any
	values inject.Values
	tasks  background.Tasks
	logger *slog.Logger
}

func newContext(r *Router) *Context {
	return &Context{
		router: r,
		Writer: &ResponseWriter{},
	}
}

func (r *Router) acquireContext(w http.ResponseWriter, req *http.Request, m *Match) *Context {
	c := r.contextPool.Get().(*Context)
	c.Request = req
	c.Writer.reset(w)
	if m != nil {
		c.route = m.Route
		c.params = m.Params
	}
	c.logger = r.logger
	return c
}

func (r *Router) releaseContext(c *Context) {
	c.Request = nil
	c.Writer.reset(nil)
	c.route = nil
	c.params = nil
	c.values = nil
	c.tasks = background.Tasks{}
	c.logger = nil
	r.contextPool.Put(c)
}

// Route returns the matched route, or nil when no route matched.
func (c *Context) Route() *Route { return c.route }

// Logger returns the request logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Param returns the decoded path parameter with the given name. The value's
// dynamic type is whatever the slot's converter produced.
func (c *Context) Param(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// ParamString returns a string-typed path parameter, or "" when the
// parameter is absent or not a string.
func (c *Context) ParamString(name string) string {
	s, _ := c.params[name].(string)
	return s
}

// ParamInt returns an int-typed path parameter, or 0 when the parameter is
// absent or not an int.
func (c *Context) ParamInt(name string) int {
	n, _ := c.params[name].(int)
	return n
}

// ParamFloat returns a float64-typed path parameter, or 0 when the parameter
// is absent or not a float64.
func (c *Context) ParamFloat(name string) float64 {
	f, _ := c.params[name].(float64)
	return f
}

// Dependency returns the resolved dependency bound under name. Only names
// the route declared through Requires are resolved and available.
func (c *Context) Dependency(name string) (any, bool) {
	return c.values.Get(name), c.values.Has(name)
}

// Background queues a task to run after the response is written. Tasks run
// sequentially in queue order; a failing task is logged and does not stop
// the rest.
func (c *Context) Background(name string, run func(ctx context.Context) error) {
	c.tasks.Add(name, run)
}

// Status writes the given status code with an empty body.
func (c *Context) Status(status int) error {
	c.Writer.WriteHeader(status)
	return nil
}

// String writes a text/plain response.
func (c *Context) String(status int, body string) error {
	c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Writer.WriteHeader(status)
	_, err := c.Writer.Write([]byte(body))
	return err
}

// JSON writes an application/json response.
func (c *Context) JSON(status int, v any) error {
	c.Writer.Header().Set("Content-Type", "application/json")
	c.Writer.WriteHeader(status)
	return json.NewEncoder(c.Writer).Encode(v)
}

// NoContent writes a 204 response.
func (c *Context) NoContent() error {
	c.Writer.WriteHeader(http.StatusNoContent)
	return nil
}

// ResponseWriter wraps http.ResponseWriter and records the status and size
// of the written response.
type ResponseWriter struct {
	http.ResponseWriter

	status  int
	size    int
	written bool
}

func (w *ResponseWriter) reset(inner http.ResponseWriter) {
	w.ResponseWriter = inner
	w.status = 0
	w.size = 0
	w.written = false
}

// WriteHeader records the status code and forwards it. Repeated calls after
// the header is written are ignored.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

// Write writes the response body, defaulting the status to 200.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Status returns the written status code, or 0 before the header is written.
func (w *ResponseWriter) Status() int { return w.status }

// Size returns the number of body bytes written so far.
func (w *ResponseWriter) Size() int { return w.size }

// Written reports whether the header has been written.
func (w *ResponseWriter) Written() bool { return w.written }

// Flush forwards to the underlying writer when it supports flushing.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack takes over the underlying connection, for protocol upgrades.
// A hijacked response counts as written with status 101.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, ErrResponseWriterNotHijacker
	}
	conn, rw, err := h.Hijack()
	if err == nil && !w.written {
		w.status = http.StatusSwitchingProtocols
		w.written = true
	}
	return conn, rw, err
}
