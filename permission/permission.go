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

// Package permission defines request permissions and their boolean algebra.
//
// A Permission inspects the incoming request and grants or denies access.
// Permissions compose with And, Or and Not, so a route can require
// combinations such as And(Authenticated(), Or(Admin(), Owner())).
//
// Permissions attached along a route's scope chain are evaluated in
// root-to-leaf registration order; the first denial stops the request.
package permission

import "net/http"

// Permission decides whether a request may proceed to the matched handler.
// Implementations must be safe for concurrent use; one Permission value is
// shared by every request that traverses its route.
type Permission interface {
	HasPermission(r *http.Request) bool
}

// Func adapts a plain function to the Permission interface.
type Func func(r *http.Request) bool

// HasPermission implements Permission.
func (f Func) HasPermission(r *http.Request) bool { return f(r) }

// AllowAny grants every request.
func AllowAny() Permission {
	return Func(func(*http.Request) bool { return true })
}

// DenyAll denies every request.
func DenyAll() Permission {
	return Func(func(*http.Request) bool { return false })
}

// And grants only when every permission grants. An empty And grants.
func And(perms ...Permission) Permission {
	return Func(func(r *http.Request) bool {
		for _, p := range perms {
			if !p.HasPermission(r) {
				return false
			}
		}
		return true
	})
}

// Or grants when at least one permission grants. An empty Or denies.
func Or(perms ...Permission) Permission {
	return Func(func(r *http.Request) bool {
		for _, p := range perms {
			if p.HasPermission(r) {
				return true
			}
		}
		return false
	})
}

// Not inverts a permission.
func Not(p Permission) Permission {
	return Func(func(r *http.Request) bool { return !p.HasPermission(r) })
}

// RequireHeader grants requests that carry a non-empty value for the header.
func RequireHeader(name string) Permission {
	return Func(func(r *http.Request) bool { return r.Header.Get(name) != "" })
}
