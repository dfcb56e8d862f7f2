/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

package integration

import (
	"os"
	"testing"

	"github.com/consentapp/consent-client-core/internal/biometric"
	"github.com/consentapp/consent-client-core/internal/consent"
	"github.com/consentapp/consent-client-core/internal/gateway"
	"github.com/consentapp/consent-client-core/internal/notification"
	"github.com/consentapp/consent-client-core/internal/payment"
	"github.com/consentapp/consent-client-core/internal/session"
	"github.com/consentapp/consent-client-core/internal/system/config"
	"github.com/consentapp/consent-client-core/internal/system/log"
	"github.com/consentapp/consent-client-core/internal/system/securestore"
	"github.com/consentapp/consent-client-core/test/setup"
)

func TestMain(m *testing.M) {
	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "DEBUG",
		},
	}
	config.OverrideClientRuntime(conf)
	_ = log.Init("DEBUG")

	os.Exit(m.Run())
}

// client bundles the full client stack wired against one fake backend.
type client struct {
	backend       *setup.FakeBackend
	tokens        *securestore.MemoryStore
	gateway       *gateway.Client
	sessions      *session.Store
	consents      *consent.Lifecycle
	notifications *notification.Service
	payments      *payment.Service
}

// newClient builds the stack the way cmd/client does, with an in-memory
// token store and an always-approving biometric verifier unless one is given.
func newClient(t *testing.T, backend *setup.FakeBackend, verifier biometric.Verifier) *client {
	t.Helper()
	if verifier == nil {
		verifier = biometric.Static{OK: true}
	}

	cfg := config.Config{
		API: config.APIConfig{BaseURL: backend.BaseURL()},
	}
	tokens := securestore.NewMemoryStore()
	gw := gateway.NewClient(cfg, tokens)
	sessions := session.NewStore(gw, tokens)
	return &client{
		backend:       backend,
		tokens:        tokens,
		gateway:       gw,
		sessions:      sessions,
		consents:      consent.NewLifecycle(gw, sessions, verifier),
		notifications: notification.NewService(gw),
		payments:      payment.NewService(gw, sessions),
	}
}
