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
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/anser-dev/anser/converter"
	anserrors "github.com/anser-dev/anser/errors"
	"github.com/anser-dev/anser/inject"
	"github.com/anser-dev/anser/logging"
	"github.com/anser-dev/anser/permission"
)

// Option defines functional options for router configuration.
type Option func(*Router)

// WithConverters sets the converter registry used to compile route patterns.
// The registry is sealed when New returns. Defaults to converter.Default().
func WithConverters(registry *converter.Registry) Option {
	return func(r *Router) { r.registry = registry }
}

// WithRoutes appends entries to the registration forest, in order.
func WithRoutes(entries ...Entry) Option {
	return func(r *Router) { r.entries = append(r.entries, entries...) }
}

// WithMiddleware appends global middleware, executed before any scope or
// route middleware.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) { r.middleware = append(r.middleware, mw...) }
}

// WithPermissions appends global permissions, checked before any scope or
// route permissions.
func WithPermissions(perms ...permission.Permission) Option {
	return func(r *Router) { r.permissions = append(r.permissions, perms...) }
}

// WithDependencies binds application-level dependency providers, overridable
// by scope- and route-level bindings of the same name.
func WithDependencies(deps inject.Map) Option {
	return func(r *Router) { r.dependencies = inject.Overlay(r.dependencies, deps) }
}

// WithErrorHandlers appends application-level error handlers, consulted after
// every scope- and route-level handler.
func WithErrorHandlers(regs ...ErrorRegistration) Option {
	return func(r *Router) { r.errorHandlers = append(r.errorHandlers, regs...) }
}

// WithErrorFormatter sets the formatter used by the default error handler.
// Defaults to the simple JSON formatter.
func WithErrorFormatter(f anserrors.Formatter) Option {
	return func(r *Router) { r.formatter = f }
}

// WithLogger sets the router's logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithObservability appends request observability recorders.
func WithObservability(recorders ...ObservabilityRecorder) Option {
	return func(r *Router) { r.observability = append(r.observability, recorders...) }
}

// WithWebSocketUpgrader replaces the upgrader used for websocket routes,
// for custom buffer sizes or origin checks.
func WithWebSocketUpgrader(u *websocket.Upgrader) Option {
	return func(r *Router) { r.upgrader = u }
}

// Router matches requests against a sealed forest of routes and runs the
// matched route's pipeline.
//
// A Router is built in one shot: New compiles every pattern, merges every
// route's effective configuration, and validates every dependency graph
// before returning. Configuration errors abort startup; nothing is deferred
// to request time. After New the router is immutable and safe for concurrent
// use without locking.
//
// Matching follows registration order: the first structurally matching route
// in document order wins. The single exception is the bare "/" route, which
// is tried after its siblings so a root catch-all cannot shadow more specific
// patterns.
type Router struct {
	registry      *converter.Registry
	entries       []Entry
	middleware    []Middleware
	permissions   []permission.Permission
	dependencies  inject.Map
	errorHandlers []ErrorRegistration
	formatter     anserrors.Formatter
	logger        *slog.Logger
	observability []ObservabilityRecorder

	upgrader *websocket.Upgrader

	forest      []compiledEntry
	contextPool sync.Pool
}

// New creates a router, compiling and validating the whole registration
// forest eagerly. Any invalid pattern, converter reference, scope prefix or
// dependency graph fails here, at startup.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		formatter: anserrors.NewSimple(),
		logger:    logging.Noop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = converter.Default()
	}
	if r.upgrader == nil {
		r.upgrader = &websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		}
	}

	root := inheritance{
		middleware:  r.middleware,
		permissions: r.permissions,
		depLayers:   []inject.Map{r.dependencies},
		errorLayers: [][]ErrorRegistration{r.errorHandlers},
	}
	forest, err := r.compileEntries(r.entries, "/", root)
	if err != nil {
		return nil, err
	}
	r.forest = forest
	r.registry.Seal()
	r.contextPool.New = func() any { return newContext(r) }
	return r, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}
	return r
}

// Logger returns the router's logger.
func (r *Router) Logger() *slog.Logger { return r.logger }

// compiledRoute is a leaf with its fully merged effective configuration.
// Everything here is computed once at startup; requests only read it.
type compiledRoute struct {
	route       *Route
	pattern     *Pattern
	middleware  []Middleware
	permissions []permission.Permission
	errorLayers [][]ErrorRegistration
	resolver    *inject.Resolver
	pipeline    HandlerFunc
}

type compiledScope struct {
	pattern  *Pattern
	children []compiledEntry
}

// compiledEntry is either a route or a scope.
type compiledEntry struct {
	route *compiledRoute
	scope *compiledScope
}

// inheritance accumulates ancestor configuration during compilation.
type inheritance struct {
	middleware  []Middleware
	permissions []permission.Permission
	depLayers   []inject.Map
	errorLayers [][]ErrorRegistration
}

// reservedBindings are request-scoped names seeded into every resolution.
var reservedBindings = []string{"request"}

func (r *Router) compileEntries(entries []Entry, prefix string, inherited inheritance) ([]compiledEntry, error) {
	compiled := make([]compiledEntry, 0, len(entries))
	demoted := make([]compiledEntry, 0, 1)

	for _, entry := range entries {
		switch e := entry.(type) {
		case *Route:
			cr, err := r.compileRoute(e, prefix, inherited)
			if err != nil {
				return nil, err
			}
			// The bare root is tried last among its siblings so it cannot
			// shadow more specific patterns.
			if e.absolute == "/" {
				demoted = append(demoted, compiledEntry{route: cr})
			} else {
				compiled = append(compiled, compiledEntry{route: cr})
			}
		case *Scope:
			cs, err := r.compileScope(e, prefix, inherited)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, compiledEntry{scope: cs})
		default:
			return nil, fmt.Errorf("%w: unsupported entry type %T", ErrInvalidPattern, entry)
		}
	}
	return append(compiled, demoted...), nil
}

func (r *Router) compileRoute(route *Route, prefix string, inherited inheritance) (*compiledRoute, error) {
	if route.handler == nil && route.wsHandler == nil {
		return nil, fmt.Errorf("%w: route %q", ErrNilHandler, route.template)
	}
	if len(route.methods) == 0 {
		return nil, fmt.Errorf("%w: route %q has an empty method set", ErrInvalidPattern, route.template)
	}
	for _, m := range route.methods {
		if m != MethodWebSocket && !slices.Contains(allMethods, m) {
			return nil, fmt.Errorf("%w: route %q has unsupported method %q", ErrInvalidPattern, route.template, m)
		}
	}

	pattern, err := CompilePattern(route.template, r.registry)
	if err != nil {
		return nil, err
	}
	route.pattern = pattern
	route.absolute = joinTemplates(prefix, route.template)

	deps := inject.Overlay(slices.Concat(inherited.depLayers, []inject.Map{route.conf.dependencies})...)
	cr := &compiledRoute{
		route:       route,
		pattern:     pattern,
		middleware:  slices.Concat(inherited.middleware, route.conf.middleware),
		permissions: slices.Concat(inherited.permissions, route.conf.permissions),
		errorLayers: appendLayer(inherited.errorLayers, route.conf.errorHandlers),
		resolver:    inject.NewResolver(deps),
	}

	// Validate the whole effective graph eagerly: every provider and every
	// handler requirement must resolve, acyclically, at startup.
	targets := slices.Concat(providerNames(deps), route.requires)
	if err := cr.resolver.Validate(reservedBindings, targets...); err != nil {
		return nil, fmt.Errorf("route %q: %w", route.absolute, err)
	}

	cr.pipeline = r.buildPipeline(cr)
	return cr, nil
}

func (r *Router) compileScope(scope *Scope, prefix string, inherited inheritance) (*compiledScope, error) {
	pattern, err := CompilePattern(scope.prefix, r.registry)
	if err != nil {
		return nil, err
	}
	if pattern.hasParams() {
		return nil, fmt.Errorf("%w: scope prefix %q must not contain parameter slots", ErrInvalidPattern, scope.prefix)
	}
	scope.pattern = pattern

	child := inheritance{
		middleware:  slices.Concat(inherited.middleware, scope.conf.middleware),
		permissions: slices.Concat(inherited.permissions, scope.conf.permissions),
		depLayers:   appendLayer(inherited.depLayers, scope.conf.dependencies),
		errorLayers: appendLayer(inherited.errorLayers, scope.conf.errorHandlers),
	}
	children, err := r.compileEntries(scope.entries, joinTemplates(prefix, scope.prefix), child)
	if err != nil {
		return nil, err
	}
	return &compiledScope{pattern: pattern, children: children}, nil
}

// appendLayer copies the layer stack before appending so sibling branches do
// not share backing arrays.
func appendLayer[T any](layers []T, layer T) []T {
	out := make([]T, len(layers), len(layers)+1)
	copy(out, layers)
	return append(out, layer)
}

func providerNames(deps inject.Map) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// joinTemplates concatenates a scope prefix and a child template.
func joinTemplates(prefix, child string) string {
	if prefix == "" || prefix == "/" {
		return child
	}
	if child == "" || child == "/" {
		return prefix
	}
	return prefix + child
}

// Match finds the first route matching the request method and path in
// registration order and returns it with its decoded path parameters.
//
// A path that matches at least one route whose method set excludes the
// request method yields a MethodNotAllowedError carrying the union of the
// matching routes' methods; a path matching nothing yields a NotFoundError.
func (r *Router) Match(method, path string) (*Match, error) {
	websocket := method == MethodWebSocket
	var allowed []string
	if m := matchEntries(r.forest, method, path, websocket, &allowed); m != nil {
		return m, nil
	}
	if len(allowed) > 0 {
		return nil, &MethodNotAllowedError{Path: path, Method: method, Allowed: allowed}
	}
	return nil, &NotFoundError{Path: path}
}

// Match is a successful routing decision: the winning route, its decoded
// path parameters, and the compiled pipeline to run.
type Match struct {
	Route  *Route
	Params map[string]any

	compiled *compiledRoute
}

func matchEntries(entries []compiledEntry, method, path string, websocket bool, allowed *[]string) *Match {
	for i := range entries {
		if scope := entries[i].scope; scope != nil {
			rest, ok := scope.pattern.match(path, true, nil)
			if !ok {
				continue
			}
			if rest == "" {
				rest = "/"
			}
			if m := matchEntries(scope.children, method, rest, websocket, allowed); m != nil {
				return m
			}
			continue
		}

		cr := entries[i].route
		params := make(map[string]any)
		if _, ok := cr.pattern.match(path, false, params); !ok {
			continue
		}
		if cr.route.isWebSocket() != websocket {
			continue
		}
		if !cr.route.allowsMethod(method) {
			// Keep scanning: a later route may serve this path and method.
			for _, m := range cr.route.methods {
				if !slices.Contains(*allowed, m) {
					*allowed = append(*allowed, m)
				}
			}
			continue
		}
		return &Match{Route: cr.route, Params: params, compiled: cr}
	}
	return nil
}
