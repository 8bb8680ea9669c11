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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "anser", s.ServiceName)
	assert.Equal(t, EnvironmentDevelopment, s.Environment)
	assert.Equal(t, ":8080", s.Address)
	assert.Equal(t, 10*time.Second, s.ShutdownTimeout)
	assert.False(t, s.EnableH2C)
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	t.Setenv("ANSER_SERVICE_NAME", "billing")
	t.Setenv("ANSER_ENV", "production")
	t.Setenv("ANSER_ADDRESS", ":9001")
	t.Setenv("ANSER_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("ANSER_ENABLE_H2C", "true")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "billing", s.ServiceName)
	assert.Equal(t, EnvironmentProduction, s.Environment)
	assert.Equal(t, ":9001", s.Address)
	assert.Equal(t, 30*time.Second, s.ShutdownTimeout)
	assert.True(t, s.EnableH2C)
}

func TestLoadSettingsRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("ANSER_ENV", "staging")

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestLoadSettingsRejectsBadDuration(t *testing.T) {
	t.Setenv("ANSER_READ_TIMEOUT", "soon")

	_, err := LoadSettings()
	assert.Error(t, err)
}
