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

import "context"

// EndFunc completes a request observation with the response status, the body
// size in bytes, and the pipeline error, if any.
type EndFunc func(status, size int, err error)

// ObservabilityRecorder observes request lifecycles. Implementations record
// metrics, spans or logs; the router calls StartRequest as soon as routing
// finishes and the returned EndFunc exactly once after the response is
// written.
//
// The route label is the matched route's name or absolute template, never
// the raw request path, so recorder cardinality stays bounded.
type ObservabilityRecorder interface {
	StartRequest(ctx context.Context, method, route string) (context.Context, EndFunc)
}

// nopEnd is returned by recorders that decline a request.
func nopEnd(int, int, error) {}
