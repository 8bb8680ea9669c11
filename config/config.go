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

// Package config loads application configuration from layered sources.
//
// Sources are applied in option order with later sources overriding earlier
// ones, so the conventional stack is defaults, then a YAML file, then the
// environment. Values are accessed with dotted key paths via the generic Get
// and GetOr helpers, or bound to a struct with Bind.
//
// Example:
//
//	cfg, err := config.New(
//	    config.WithDefaults(map[string]any{"server": map[string]any{"port": 8080}}),
//	    config.WithFile("app.yaml"),
//	    config.WithEnv("APP_"),
//	)
//	port := config.GetOr(cfg, "server.port", 8080)
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
)

// Option is a functional option that configures a Config instance.
type Option func(c *Config) error

// Source loads one layer of configuration values.
type Source interface {
	Load() (map[string]any, error)
}

// Config holds merged configuration values.
// It is safe for concurrent reads after New returns.
type Config struct {
	mu     sync.RWMutex
	values map[string]any
}

// New creates a Config by loading every source in option order and merging
// the layers, later layers overriding earlier ones. Any source failure aborts
// with an error; configuration problems surface at startup, never later.
func New(opts ...Option) (*Config, error) {
	c := &Config{values: make(map[string]any)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Config {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("config.MustNew: %v", err))
	}
	return c
}

// WithSource merges a custom source's values as the next layer.
func WithSource(src Source) Option {
	return func(c *Config) error {
		if src == nil {
			return fmt.Errorf("%w: nil source", ErrInvalidSource)
		}
		layer, err := src.Load()
		if err != nil {
			return err
		}
		return c.merge(layer)
	}
}

// WithDefaults merges a literal value map as the next layer.
func WithDefaults(values map[string]any) Option {
	return func(c *Config) error { return c.merge(values) }
}

// WithFile merges a YAML file as the next layer. The path supports
// environment variable expansion with ${VAR} syntax.
func WithFile(path string) Option {
	return WithSource(fileSource{path: os.ExpandEnv(path)})
}

// WithEnv merges environment variables carrying the given prefix as the next
// layer. Variable names are lowercased and underscores become key-path
// separators: APP_SERVER_PORT=9000 yields server.port = "9000".
func WithEnv(prefix string) Option {
	return WithSource(envSource{prefix: prefix})
}

func (c *Config) merge(layer map[string]any) error {
	if layer == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := mergo.Merge(&c.values, layer, mergo.WithOverride); err != nil {
		return fmt.Errorf("merging configuration layer: %w", err)
	}
	return nil
}

// Bind decodes the merged values into out, which must be a pointer to a
// struct. Fields are matched by the "config" tag with weakly typed
// conversions, so string values from the environment decode into ints,
// durations and booleans.
func (c *Config) Bind(out any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := decoder.Decode(c.values); err != nil {
		return fmt.Errorf("%w: %w", ErrBind, err)
	}
	return nil
}

// lookup walks the nested value maps along a dotted key path.
func (c *Config) lookup(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	current := any(c.values)
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// fileSource loads a YAML document into a value map.
type fileSource struct {
	path string
}

func (s fileSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrReadFile, s.path, err)
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrParseFile, s.path, err)
	}
	return values, nil
}

// envSource loads prefixed environment variables into a nested value map.
type envSource struct {
	prefix string
}

func (s envSource) Load() (map[string]any, error) {
	values := make(map[string]any)
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		if s.prefix != "" && !strings.HasPrefix(name, s.prefix) {
			continue
		}
		path := strings.Split(strings.ToLower(strings.TrimPrefix(name, s.prefix)), "_")
		setPath(values, path, value)
	}
	return values, nil
}

// setPath writes value into the nested map following the key path,
// creating intermediate maps as needed.
func setPath(m map[string]any, path []string, value string) {
	for i, part := range path {
		if part == "" {
			return
		}
		if i == len(path)-1 {
			m[part] = value
			return
		}
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
}
