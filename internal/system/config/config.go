/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"strings"
	"time"
)

type APIConfig struct {
	// BaseURL is the canonical API root, /api prefix included.
	BaseURL string `yaml:"base_url"`
	// FallbackBaseURL is the server root without the /api prefix. It is only
	// used for the payment-sheet fallback retry.
	FallbackBaseURL string `yaml:"fallback_base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type SessionConfig struct {
	TokenStorePath string `yaml:"token_store_path"`
	DeviceSecret   string `yaml:"device_secret"`
	PersistToken   bool   `yaml:"persist_token"`
}

type BiometricConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type Config struct {
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	Biometric BiometricConfig `yaml:"biometric"`
	Cache     CacheConfig     `yaml:"cache"`
}

const defaultRequestTimeout = 10 * time.Second

// RequestTimeout returns the configured gateway timeout, defaulting to 10s.
func (c APIConfig) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FallbackURL returns the configured fallback root, derived from BaseURL by
// trimming the /api suffix when not set explicitly.
func (c APIConfig) FallbackURL() string {
	if c.FallbackBaseURL != "" {
		return strings.TrimSuffix(c.FallbackBaseURL, "/")
	}
	return strings.TrimSuffix(strings.TrimSuffix(c.BaseURL, "/"), "/api")
}

// CacheTTL returns the configured cache TTL, defaulting to 5 minutes.
func (c CacheConfig) CacheTTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}
