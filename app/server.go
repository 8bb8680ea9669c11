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

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully within the configured shutdown timeout. Callers typically pass
// a context from signal.NotifyContext so SIGINT drains in-flight requests
// instead of dropping them.
func (a *App) Start(ctx context.Context) error {
	if err := a.runStartHooks(ctx); err != nil {
		return err
	}
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	var handler http.Handler = a.router
	protocol := "HTTP/1.1"
	if a.settings.EnableH2C {
		handler = h2c.NewHandler(a.router, &http2.Server{})
		protocol = "h2c"
	}

	server := &http.Server{
		Addr:         a.settings.Address,
		Handler:      handler,
		ReadTimeout:  a.settings.ReadTimeout,
		WriteTimeout: a.settings.WriteTimeout,
		IdleTimeout:  a.settings.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	return a.runServer(ctx, server, protocol)
}

func (a *App) runServer(ctx context.Context, server *http.Server, protocol string) error {
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	if !a.settings.DisableBanner {
		a.printStartupBanner(listener.Addr().String(), protocol)
	}
	a.logger.InfoContext(ctx, "server starting",
		"address", listener.Addr().String(),
		"environment", a.settings.Environment,
		"protocol", protocol,
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("serve: %w", err)
		}
	}()
	a.runReadyHooks(ctx)

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "server shutting down", "reason", ctx.Err())
	}

	// The parent context is already canceled; the fresh context holds the
	// shutdown deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.settings.ShutdownTimeout)
	defer cancel()

	a.runShutdownHooks(shutdownCtx)
	if a.scheduler != nil {
		if err := a.scheduler.Stop(shutdownCtx); err != nil {
			a.logger.WarnContext(shutdownCtx, "scheduler shutdown incomplete", "error", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shut down: %w", err)
	}

	a.logger.InfoContext(shutdownCtx, "server exited")
	return nil
}
