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
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/anser-dev/anser/inject"
	"github.com/anser-dev/anser/permission"
)

// HandlerFunc handles one matched HTTP request. Returned errors flow through
// the route's error-handler chain.
type HandlerFunc func(c *Context) error

// WebSocketHandlerFunc handles one upgraded websocket connection.
// The connection is closed when the handler returns.
type WebSocketHandlerFunc func(c *Context, conn *websocket.Conn) error

// Middleware wraps a handler. The merged chain executes in root-to-leaf
// order on the way in and, being wrap style, leaf-to-root on the way out.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler converts an error into a response. Returning nil means the
// error was handled; returning an error passes it to the next, less specific
// layer of the chain.
type ErrorHandler func(c *Context, err error) error

// ErrorRegistration pairs an error matcher with its handler.
// Build registrations with On, OnType or OnAny.
type ErrorRegistration struct {
	matches func(error) bool
	handler ErrorHandler
}

// On registers a handler for errors matching target under errors.Is.
func On(target error, handler ErrorHandler) ErrorRegistration {
	return ErrorRegistration{
		matches: func(err error) bool { return errors.Is(err, target) },
		handler: handler,
	}
}

// OnType registers a handler for errors matching *T under errors.As.
func OnType[T error](handler ErrorHandler) ErrorRegistration {
	return ErrorRegistration{
		matches: func(err error) bool {
			var target T
			return errors.As(err, &target)
		},
		handler: handler,
	}
}

// OnAny registers a catch-all handler.
func OnAny(handler ErrorHandler) ErrorRegistration {
	return ErrorRegistration{
		matches: func(error) bool { return true },
		handler: handler,
	}
}

// MethodWebSocket is the pseudo-method routed for websocket upgrade requests.
const MethodWebSocket = "WEBSOCKET"

// allMethods are the HTTP verbs accepted in a route's method set.
var allMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodHead, http.MethodOptions, http.MethodTrace,
}

// Entry is a node in the registration forest: a *Route leaf or a *Scope.
type Entry interface {
	isEntry()
}

// localConf is the inheritable configuration a route or scope contributes to
// the effective context: middleware and permissions concatenate root to leaf,
// dependency and error-handler maps overlay leaf-wins.
type localConf struct {
	middleware    []Middleware
	permissions   []permission.Permission
	dependencies  inject.Map
	errorHandlers []ErrorRegistration
}

func (c *localConf) provide(name string, p *inject.Provider) {
	if c.dependencies == nil {
		c.dependencies = make(inject.Map)
	}
	c.dependencies[name] = p
}

// Route binds a path template and method set to a handler, along with the
// route's local configuration. Routes are built fluently and become immutable
// once the owning router compiles them.
//
// Example:
//
//	router.Gateway("/users/{id:int}", getUser).
//	    Methods(http.MethodGet, http.MethodHead).
//	    Requires("db")
type Route struct {
	template  string
	methods   []string
	handler   HandlerFunc
	wsHandler WebSocketHandlerFunc
	requires  []string
	name      string
	conf      localConf

	// Set by the owning router at compile time.
	pattern  *Pattern
	absolute string
}

func (*Route) isEntry() {}

// Gateway creates an HTTP route for the given template and handler.
// Without an explicit Methods call the route answers GET only.
func Gateway(template string, handler HandlerFunc) *Route {
	return &Route{
		template: template,
		handler:  handler,
		methods:  []string{http.MethodGet},
	}
}

// WebSocketGateway creates a websocket route for the given template.
// The router upgrades matching requests and closes the connection when the
// handler returns.
func WebSocketGateway(template string, handler WebSocketHandlerFunc) *Route {
	return &Route{
		template:  template,
		wsHandler: handler,
		methods:   []string{MethodWebSocket},
	}
}

// Methods replaces the route's method set.
func (r *Route) Methods(methods ...string) *Route {
	r.methods = make([]string, 0, len(methods))
	for _, m := range methods {
		r.methods = append(r.methods, strings.ToUpper(m))
	}
	return r
}

// Use appends route-local middleware, executed after every ancestor's.
func (r *Route) Use(mw ...Middleware) *Route {
	r.conf.middleware = append(r.conf.middleware, mw...)
	return r
}

// Permit appends route-local permissions, checked after every ancestor's.
func (r *Route) Permit(perms ...permission.Permission) *Route {
	r.conf.permissions = append(r.conf.permissions, perms...)
	return r
}

// Provide binds a named dependency provider on the route. A route-level
// binding overrides any ancestor binding of the same name.
func (r *Route) Provide(name string, p *inject.Provider) *Route {
	r.conf.provide(name, p)
	return r
}

// Requires declares the dependency names injected into the handler.
// The names must resolve through the route's effective dependency map; the
// router validates that eagerly at startup.
func (r *Route) Requires(names ...string) *Route {
	r.requires = append(r.requires, names...)
	return r
}

// OnError appends route-local error handlers, consulted before any ancestor's.
func (r *Route) OnError(regs ...ErrorRegistration) *Route {
	r.conf.errorHandlers = append(r.conf.errorHandlers, regs...)
	return r
}

// Named sets the route name used in logs and observability labels.
func (r *Route) Named(name string) *Route {
	r.name = name
	return r
}

// Template returns the route's template as registered.
func (r *Route) Template() string { return r.template }

// Name returns the route name, falling back to the absolute template.
func (r *Route) Name() string {
	if r.name != "" {
		return r.name
	}
	if r.absolute != "" {
		return r.absolute
	}
	return r.template
}

// isWebSocket reports whether the route answers websocket upgrades.
func (r *Route) isWebSocket() bool { return r.wsHandler != nil }

// allowsMethod reports whether the request method is in the route's set.
func (r *Route) allowsMethod(method string) bool {
	return slices.Contains(r.methods, method)
}

// Scope groups child entries under a shared path prefix and contributes
// inheritable configuration to all of them. Scope prefixes are literal:
// parameter slots are rejected at compile time.
type Scope struct {
	prefix  string
	entries []Entry
	conf    localConf

	pattern *Pattern
}

func (*Scope) isEntry() {}

// Include creates a scope grouping the given entries under prefix.
//
// Example:
//
//	router.Include("/api",
//	    router.Gateway("/users", listUsers),
//	    router.Include("/admin", adminRoutes...).Permit(adminOnly),
//	)
func Include(prefix string, entries ...Entry) *Scope {
	return &Scope{prefix: prefix, entries: entries}
}

// Use appends scope middleware, inherited by every descendant.
func (s *Scope) Use(mw ...Middleware) *Scope {
	s.conf.middleware = append(s.conf.middleware, mw...)
	return s
}

// Permit appends scope permissions, inherited by every descendant.
func (s *Scope) Permit(perms ...permission.Permission) *Scope {
	s.conf.permissions = append(s.conf.permissions, perms...)
	return s
}

// Provide binds a named dependency provider on the scope, inherited by every
// descendant unless a more specific binding overrides it.
func (s *Scope) Provide(name string, p *inject.Provider) *Scope {
	s.conf.provide(name, p)
	return s
}

// OnError appends scope error handlers, consulted after any descendant's and
// before any ancestor's.
func (s *Scope) OnError(regs ...ErrorRegistration) *Scope {
	s.conf.errorHandlers = append(s.conf.errorHandlers, regs...)
	return s
}

// Prefix returns the scope's path prefix as registered.
func (s *Scope) Prefix() string { return s.prefix }

// Controller is a reusable group of routes under a common prefix, typically
// implemented by a struct whose methods are the handlers.
type Controller interface {
	Prefix() string
	Routes() []Entry
}

// Mount converts a controller into a scope entry.
func Mount(c Controller) *Scope {
	return Include(c.Prefix(), c.Routes()...)
}

// Nest grafts another router's registration forest under prefix. The nested
// router's global middleware, permissions, dependencies and error handlers
// become scope-level configuration of the graft.
func Nest(prefix string, child *Router) *Scope {
	s := Include(prefix, child.entries...)
	s.conf = localConf{
		middleware:    child.middleware,
		permissions:   child.permissions,
		dependencies:  child.dependencies,
		errorHandlers: child.errorHandlers,
	}
	return s
}
