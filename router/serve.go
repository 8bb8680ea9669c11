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
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/anser-dev/anser/inject"
)

// ServeHTTP routes the request and runs the matched pipeline:
// global, scope and route middleware wrap the permission check, dependency
// resolution and finally the handler. Errors, match failures included, are
// dispatched through the registered error handlers before the default error
// handler writes whatever survives. Background tasks queued on the context
// run after the response is on the wire.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	method := req.Method
	if websocket.IsWebSocketUpgrade(req) {
		method = MethodWebSocket
	}

	m, err := r.Match(method, req.URL.Path)
	if err != nil {
		c := r.acquireContext(w, req, nil)
		defer r.releaseContext(c)
		// No route means no route-level registrations, but application-level
		// handlers still get a shot at 404s and 405s.
		if err = r.dispatchError(c, [][]ErrorRegistration{r.errorHandlers}, err); err != nil {
			r.respondError(c, err)
		}
		c.tasks.Drain(c.Request.Context(), r.logger)
		return
	}

	c := r.acquireContext(w, req, m)
	defer r.releaseContext(c)

	// Recorders only see matched requests: the route label comes from the
	// route, not the raw path, so cardinality stays bounded.
	ctx := req.Context()
	ends := make([]EndFunc, 0, len(r.observability))
	for _, rec := range r.observability {
		var end EndFunc
		ctx, end = rec.StartRequest(ctx, req.Method, m.Route.Name())
		if end == nil {
			end = nopEnd
		}
		ends = append(ends, end)
	}
	if len(ends) > 0 {
		c.Request = req.WithContext(ctx)
	}

	err = m.compiled.pipeline(c)
	if err != nil {
		err = r.dispatchError(c, m.compiled.errorLayers, err)
	}
	if err != nil {
		r.respondError(c, err)
	} else if !c.Writer.Written() {
		c.Writer.WriteHeader(http.StatusOK)
	}

	for i := len(ends) - 1; i >= 0; i-- {
		ends[i](c.Writer.Status(), c.Writer.Size(), err)
	}
	c.tasks.Drain(c.Request.Context(), r.logger)
}

// buildPipeline assembles the compiled route's request pipeline once, at
// startup. Middleware wraps outermost ancestor first; the innermost stage
// checks permissions, resolves declared dependencies and calls the handler.
func (r *Router) buildPipeline(cr *compiledRoute) HandlerFunc {
	final := func(c *Context) error {
		for _, p := range cr.permissions {
			if !p.HasPermission(c.Request) {
				return &PermissionDeniedError{Path: c.Request.URL.Path}
			}
		}
		if len(cr.route.requires) > 0 {
			seed := inject.Values{"request": c.Request}
			values, err := cr.resolver.Resolve(c.Request.Context(), seed, cr.route.requires...)
			if err != nil {
				return err
			}
			c.values = values
		}
		if cr.route.isWebSocket() {
			return r.serveWebSocket(c)
		}
		return cr.route.handler(c)
	}
	for i := len(cr.middleware) - 1; i >= 0; i-- {
		final = cr.middleware[i](final)
	}
	return final
}

// dispatchError walks the error handler layers from the route outward to the
// application. Within a layer the first registration matching the error runs;
// a nil return means handled, a non-nil return replaces the error and
// continues to the next outer layer. Whatever survives goes to the default
// error handler.
func (r *Router) dispatchError(c *Context, layers [][]ErrorRegistration, err error) error {
	for i := len(layers) - 1; i >= 0; i-- {
		reg, ok := matchRegistration(layers[i], err)
		if !ok {
			continue
		}
		if err = reg.handler(c, err); err == nil {
			return nil
		}
	}
	return err
}

func matchRegistration(layer []ErrorRegistration, err error) (ErrorRegistration, bool) {
	for _, reg := range layer {
		if reg.matches(err) {
			return reg, true
		}
	}
	return ErrorRegistration{}, false
}

// respondError writes err through the configured formatter. Server errors
// are logged; client errors are the client's problem.
func (r *Router) respondError(c *Context, err error) {
	var mna *MethodNotAllowedError
	if errors.As(err, &mna) {
		c.Writer.Header().Set("Allow", strings.Join(mna.Allowed, ", "))
	}

	resp := r.formatter.Format(c.Request, err)
	if resp.Status >= http.StatusInternalServerError {
		r.logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", resp.Status,
			"error", err,
		)
	}
	if c.Writer.Written() {
		// The response is already committed; all we can do is log.
		return
	}

	for key, values := range resp.Headers {
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	c.Writer.Header().Set("Content-Type", resp.ContentType)
	c.Writer.WriteHeader(resp.Status)
	if resp.Body != nil {
		if encErr := json.NewEncoder(c.Writer).Encode(resp.Body); encErr != nil {
			r.logger.ErrorContext(c.Request.Context(), "error response write failed", "error", encErr)
		}
	}
}
