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

package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/token"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	log "github.com/sirupsen/logrus"
)

const ApiKeyHeader = "api-key"

var strategy auth.Strategy

type apiKey struct {
	name  string
	value string
}

// SetupGoGuardian enables api key authentication for Secure handlers. Keys are
// "name=key" pairs or bare keys; no keys leaves the API open.
func SetupGoGuardian(apiKeys []string) error {
	keys, err := parseApiKeys(apiKeys)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		log.Warn("No api keys configured, API is not protected")
		strategy = nil
		return nil
	}

	cache := libcache.LRU.New(1000)
	cache.SetTTL(time.Minute * 10)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})

	strategy = token.New(apiKeyAuthFunc(keys), cache, token.SetParser(token.XHeaderParser(ApiKeyHeader)))
	log.Infof("Api key authentication enabled with %d key(s)", len(keys))
	return nil
}

func parseApiKeys(apiKeys []string) ([]apiKey, error) {
	keys := make([]apiKey, 0, len(apiKeys))
	for i, item := range apiKeys {
		name, value, found := strings.Cut(item, "=")
		if !found {
			name, value = fmt.Sprintf("api-key-%d", i+1), item
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("api key '%s' has empty value", name)
		}
		keys = append(keys, apiKey{name: name, value: value})
	}
	return keys, nil
}

func apiKeyAuthFunc(keys []apiKey) token.AuthenticateFunc {
	return func(ctx context.Context, r *http.Request, tkn string) (auth.Info, time.Time, error) {
		for _, key := range keys {
			if subtle.ConstantTimeCompare([]byte(key.value), []byte(tkn)) == 1 {
				return auth.NewDefaultUser(key.name, key.name, []string{}, auth.Extensions{}), time.Now().Add(time.Minute * 10), nil
			}
		}
		return nil, time.Time{}, fmt.Errorf("authentication failed: %v is not valid", ApiKeyHeader)
	}
}
