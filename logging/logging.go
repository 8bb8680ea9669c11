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

// Package logging provides structured logging on top of log/slog.
//
// It configures a slog.Logger with a handler type (json or text), a level,
// and service identity fields that are attached to every entry. The package
// also offers trace-aware loggers that enrich entries with OpenTelemetry
// trace and span IDs extracted from the request context.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
)

// Level aliases slog.Level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// noop is the singleton discard logger handed out by Noop.
var noop = slog.New(slog.NewTextHandler(io.Discard, nil))

// Noop returns a logger that discards everything. Components use it when no
// logger is configured, so logging calls never need nil checks.
func Noop() *slog.Logger { return noop }

// Option defines functional options for logger configuration.
type Option func(*config)

type config struct {
	handlerType    HandlerType
	output         io.Writer
	level          Level
	addSource      bool
	serviceName    string
	serviceVersion string
	environment    string
}

// WithHandlerType selects the output format. The default is JSON.
func WithHandlerType(t HandlerType) Option {
	return func(c *config) { c.handlerType = t }
}

// WithOutput sets the destination writer. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum level. The default is Info.
func WithLevel(l Level) Option {
	return func(c *config) { c.level = l }
}

// WithSource adds source file and line to every entry.
func WithSource() Option {
	return func(c *config) { c.addSource = true }
}

// WithService attaches service identity fields to every entry.
func WithService(name, version string) Option {
	return func(c *config) {
		c.serviceName = name
		c.serviceVersion = version
	}
}

// WithEnvironment attaches the deployment environment to every entry.
func WithEnvironment(env string) Option {
	return func(c *config) { c.environment = env }
}

// New creates a configured slog.Logger.
//
// Example:
//
//	log := logging.New(
//	    logging.WithHandlerType(logging.TextHandler),
//	    logging.WithService("orders", "1.4.2"),
//	    logging.WithLevel(logging.LevelDebug),
//	)
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		handlerType: JSONHandler,
		output:      os.Stdout,
		level:       LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}

	var handler slog.Handler
	switch cfg.handlerType {
	case TextHandler:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	logger := slog.New(handler)
	attrs := make([]any, 0, 6)
	if cfg.serviceName != "" {
		attrs = append(attrs, slog.String("service", cfg.serviceName))
	}
	if cfg.serviceVersion != "" {
		attrs = append(attrs, slog.String("version", cfg.serviceVersion))
	}
	if cfg.environment != "" {
		attrs = append(attrs, slog.String("environment", cfg.environment))
	}
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return logger
}
