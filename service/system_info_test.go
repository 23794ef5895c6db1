// Copyright 2024-2025 NetCracker Technology Corporation
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

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemInfoService(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(VALIDATION_API_URL, "http://validation:8080")
		t.Setenv(DB_HOST, "")
		t.Setenv(LISTEN_ADDRESS, "")
		t.Setenv(VALIDATION_API_TIMEOUT_SEC, "")
		t.Setenv(API_KEYS, "")

		s, err := NewSystemInfoService()
		require.NoError(t, err)
		assert.Equal(t, ":8080", s.GetListenAddress())
		assert.Equal(t, 60*time.Second, s.GetValidationApiTimeout())
		assert.False(t, s.IsPersistenceEnabled())
		assert.Empty(t, s.GetApiKeys())
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv(VALIDATION_API_URL, "http://validation:8080")
		t.Setenv(VALIDATION_API_TIMEOUT_SEC, "5")
		t.Setenv(DB_HOST, "postgres")
		t.Setenv(DB_PORT, "6432")
		t.Setenv(DB_NAME, "dashboard")
		t.Setenv(API_KEYS, "ui=abc, batch=def")

		s, err := NewSystemInfoService()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, s.GetValidationApiTimeout())
		assert.True(t, s.IsPersistenceEnabled())
		creds := s.GetCredsFromEnv()
		assert.Equal(t, "postgres", creds.Host)
		assert.Equal(t, 6432, creds.Port)
		assert.Equal(t, "dashboard", creds.Database)
		assert.Equal(t, "disable", creds.SSLMode)
		assert.Equal(t, []string{"ui=abc", "batch=def"}, s.GetApiKeys())
	})

	t.Run("missing api url", func(t *testing.T) {
		t.Setenv(VALIDATION_API_URL, "")
		_, err := NewSystemInfoService()
		assert.Error(t, err)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv(VALIDATION_API_URL, "http://validation:8080")
		t.Setenv(VALIDATION_API_TIMEOUT_SEC, "soon")
		_, err := NewSystemInfoService()
		assert.Error(t, err)
	})
}
