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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consentapp/consent-client-core/internal/model"
	"github.com/consentapp/consent-client-core/internal/session"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/test/setup"
)

func Test_Auth(t *testing.T) {
	ctx := context.Background()
	backend := setup.StartFakeBackend()
	defer backend.Close()

	backend.Seed("ana@example.com", "pw-ana", "Ana", 0)

	t.Run("Invalid_credentials_are_classified", func(t *testing.T) {
		c := newClient(t, backend, nil)
		_, err := c.sessions.Login(ctx, "ana@example.com", "wrong")
		require.Error(t, err)
		assert.True(t, errors2.HasCode(err, errors2.INVALID_CREDENTIALS.Code))
		assert.Equal(t, session.RouteLogin, c.sessions.Route())
	})

	t.Run("Login_routes_through_onboarding_to_dashboard", func(t *testing.T) {
		c := newClient(t, backend, nil)
		user, err := c.sessions.Login(ctx, "ana@example.com", "pw-ana")
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.DisplayName("x"))
		assert.Equal(t, session.RouteOnboarding, c.sessions.Route())

		c.sessions.CompleteOnboarding()
		assert.Equal(t, session.RouteDashboard, c.sessions.Route())
	})

	t.Run("Signup_rejects_duplicate_email", func(t *testing.T) {
		c := newClient(t, backend, nil)
		_, err := c.gateway.Signup(ctx, model.SignupRequest{
			FirstName: "Ana", Email: "ana@example.com", Password: "pw",
		})
		require.Error(t, err)
		assert.True(t, errors2.HasCode(err, errors2.DUPLICATE_EMAIL.Code))
	})

	t.Run("Signup_then_fetch_user_info", func(t *testing.T) {
		c := newClient(t, backend, nil)
		resp, err := c.gateway.Signup(ctx, model.SignupRequest{
			FirstName: "Ben", Email: "ben@example.com", Password: "pw-ben",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		require.NoError(t, c.tokens.Save(resp.Token))

		info, err := c.gateway.FetchUserInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ben@example.com", info.User.Email)
	})

	t.Run("Profile_update_returns_the_fresh_user", func(t *testing.T) {
		c := newClient(t, backend, nil)
		_, err := c.sessions.Login(ctx, "ana@example.com", "pw-ana")
		require.NoError(t, err)

		updated, err := c.gateway.UpdateProfile(ctx, model.ProfileUpdate{FirstName: "Anna"})
		require.NoError(t, err)
		assert.Equal(t, "Anna", updated.DisplayName("x"))
	})

	t.Run("Protected_route_without_token_is_classified", func(t *testing.T) {
		c := newClient(t, backend, nil)
		_, err := c.gateway.FetchUserInfo(ctx)
		require.Error(t, err)
		assert.True(t, errors2.HasCode(err, errors2.UNAUTHORIZED_NO_TOKEN.Code))
	})

	t.Run("Session_restores_from_the_shared_token_store", func(t *testing.T) {
		c := newClient(t, backend, nil)
		_, err := c.sessions.Login(ctx, "ana@example.com", "pw-ana")
		require.NoError(t, err)

		// A fresh store over the same token store stands in for an app
		// relaunch on the same device.
		relaunched := session.NewStore(c.gateway, c.tokens)
		require.NoError(t, relaunched.Restore(ctx))
		snapshot := relaunched.Snapshot()
		require.NotNil(t, snapshot.User)
		assert.Equal(t, "ana@example.com", snapshot.User.Email)
	})

	t.Run("Logout_clears_the_session_and_token", func(t *testing.T) {
		c := newClient(t, backend, nil)
		_, err := c.sessions.Login(ctx, "ana@example.com", "pw-ana")
		require.NoError(t, err)

		c.sessions.Logout()
		assert.Equal(t, session.RouteLogin, c.sessions.Route())

		token, err := c.tokens.Load()
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func Test_ContactsListing(t *testing.T) {
	ctx := context.Background()
	backend := setup.StartFakeBackend()
	defer backend.Close()

	backend.Seed("ana@example.com", "pw-ana", "Ana", 0)
	backend.Seed("ben@example.com", "pw-ben", "Ben", 0)

	c := newClient(t, backend, nil)
	_, err := c.sessions.Login(ctx, "ana@example.com", "pw-ana")
	require.NoError(t, err)

	contacts, err := c.gateway.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "ben@example.com", contacts[0].Email)
}
