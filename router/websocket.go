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

	"github.com/gorilla/websocket"
)

// serveWebSocket runs after the full pipeline, so middleware, permissions
// and dependency resolution apply to websocket routes exactly as to HTTP
// routes. The upgrade happens last; once it succeeds the HTTP response is
// out of our hands and handler errors can only be logged.
func (r *Router) serveWebSocket(c *Context) error {
	conn, err := r.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		return fmt.Errorf("websocket upgrade: %w", err)
	}
	defer conn.Close()

	if err := c.route.wsHandler(c, conn); err != nil {
		r.logger.ErrorContext(c.Request.Context(), "websocket handler failed",
			"route", c.route.Name(),
			"error", err,
		)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "internal error")
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
	}
	return nil
}
