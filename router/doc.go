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

// Package router matches HTTP and websocket requests against templated
// routes and runs each matched route through a compiled pipeline of
// middleware, permissions and injected dependencies.
//
// Routes are declared as a forest of entries: Gateway and WebSocketGateway
// create leaves, Include groups entries under a literal prefix, and Nest
// grafts one router's forest into another. Every level can contribute
// middleware, permissions, dependency providers and error handlers; the
// router merges them root to leaf at startup so requests pay no merge cost.
//
//	r := router.MustNew(
//	    router.WithRoutes(
//	        router.Gateway("/", home),
//	        router.Include("/users",
//	            router.Gateway("/{id:int}", getUser).Requires("db"),
//	        ),
//	    ),
//	    router.WithDependencies(inject.Map{"db": inject.Value(db)}),
//	)
//	http.ListenAndServe(":8080", r)
//
// # Matching
//
// Templates are absolute slash-separated paths whose dynamic segments are
// written {name} or {name:converter}. Matching is first-match-wins in
// registration order, with one exception: a bare "/" route is tried after
// its siblings, so registering a root fallback first cannot shadow later,
// more specific routes. A path that only matches routes with the wrong
// method produces a 405 carrying the union of their methods in Allow; a
// path matching nothing produces a 404.
//
// # Startup validation
//
// New compiles every template, resolves every converter reference, checks
// every scope prefix and validates every route's effective dependency graph
// for missing or circular bindings. A misconfigured forest never serves a
// single request.
package router
