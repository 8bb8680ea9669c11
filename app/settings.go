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
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment names recognized by the framework.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Settings is the server configuration, loadable from the environment with
// the ANSER_ prefix. Programmatic options override loaded values.
type Settings struct {
	ServiceName    string `env:"SERVICE_NAME" envDefault:"anser"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"dev"`
	Environment    string `env:"ENV" envDefault:"development"`

	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	EnableH2C     bool `env:"ENABLE_H2C" envDefault:"false"`
	DisableBanner bool `env:"DISABLE_BANNER" envDefault:"false"`
}

// LoadSettings reads settings from ANSER_-prefixed environment variables,
// after loading a .env file from the working directory when one exists.
func LoadSettings() (Settings, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: "ANSER_"}); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	switch s.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		return fmt.Errorf("unknown environment %q", s.Environment)
	}
	if s.Address == "" {
		return fmt.Errorf("address must not be empty")
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}
