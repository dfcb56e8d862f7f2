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

package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/consentapp/consent-client-core/internal/model"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/internal/system/log"
	"github.com/consentapp/consent-client-core/internal/system/securestore"
)

// API is the slice of the gateway the session store depends on.
type API interface {
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	FetchUserInfo(ctx context.Context) (*model.UserInfo, error)
}

// Store is the single source of truth for who is logged in. It owns the
// Session state and is the only writer of the persisted token. It is an
// explicitly constructed object with a defined lifecycle: built at app
// start, torn down by Logout.
type Store struct {
	api    API
	tokens securestore.TokenStore

	mutex          sync.RWMutex
	token          string
	user           *model.User
	loading        bool
	onboardingDone bool
}

// Session is a read-only copy of the current state.
type Session struct {
	Token          string
	User           *model.User
	Loading        bool
	OnboardingDone bool
}

// NewStore builds a session store over the gateway and token store.
func NewStore(api API, tokens securestore.TokenStore) *Store {
	return &Store{
		api:    api,
		tokens: tokens,
	}
}

// Login exchanges credentials for a session. On success the token is
// persisted to the secure store and the user is kept in memory; on failure
// the user stays unset and the classified error propagates.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.clearState()
		return nil, err
	}
	if resp.Token == "" {
		s.clearState()
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RESPONSE_DECODE.Code,
			Message:     errors2.RESPONSE_DECODE.Message,
			Description: "Login response contained no token.",
		}, nil)
	}

	// The token must be persisted before it is observable in memory, so the
	// gateway's interceptor never races a half-written credential.
	if err := s.tokens.Save(resp.Token); err != nil {
		s.clearState()
		return nil, err
	}

	user := resp.User
	s.mutex.Lock()
	s.token = resp.Token
	s.user = &user
	s.mutex.Unlock()

	log.GetLogger().Info("Logged in", log.String("userId", user.ID.String()))
	return &user, nil
}

// Logout clears the session and the persisted token. Safe to call when
// already logged out.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		log.GetLogger().Warn("Failed to clear the persisted token", log.Error(err))
	}
	s.clearState()
}

// Restore bootstraps the session at launch from the persisted token. A
// missing or locally-expired token leaves the session logged out; a failed
// user fetch degrades to logged out rather than retrying.
func (s *Store) Restore(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.tokens.Load()
	if err != nil {
		s.clearState()
		return err
	}
	if token == "" {
		s.clearState()
		return nil
	}
	if tokenExpired(token) {
		log.GetLogger().Info("Persisted token is expired; starting logged out")
		s.Logout()
		return nil
	}

	s.mutex.Lock()
	s.token = token
	s.mutex.Unlock()

	if err := s.fetchUser(ctx); err != nil {
		log.GetLogger().Warn("Session restore failed; starting logged out", log.Error(err))
		s.Logout()
	}
	return nil
}

// ReloadUser re-fetches the user with the stored token, refreshing derived
// fields such as the credit balance. On failure the session is cleared and
// the caller must log in again.
func (s *Store) ReloadUser(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.tokens.Load()
	if err != nil || token == "" {
		s.clearState()
		if err != nil {
			return err
		}
		return errors2.NewClientErrorWithoutCode(errors2.ErrorMessage{
			Code:        errors2.UNAUTHORIZED_NO_TOKEN.Code,
			Message:     errors2.UNAUTHORIZED_NO_TOKEN.Message,
			Description: "Cannot reload the user without a stored token.",
		})
	}

	s.mutex.Lock()
	s.token = token
	s.mutex.Unlock()

	if err := s.fetchUser(ctx); err != nil {
		s.Logout()
		return err
	}
	return nil
}

// CompleteOnboarding flips the one-way onboarding flag. No network call.
func (s *Store) CompleteOnboarding() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.onboardingDone = true
}

// Snapshot returns a copy of the session for readers.
func (s *Store) Snapshot() Session {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var user *model.User
	if s.user != nil {
		copied := *s.user
		user = &copied
	}
	return Session{
		Token:          s.token,
		User:           user,
		Loading:        s.loading,
		OnboardingDone: s.onboardingDone,
	}
}

func (s *Store) fetchUser(ctx context.Context) error {
	info, err := s.api.FetchUserInfo(ctx)
	if err != nil {
		return err
	}

	user := info.User
	if info.PackQuantity > 0 {
		user.PackQuantity = info.PackQuantity
	}

	s.mutex.Lock()
	s.user = &user
	s.mutex.Unlock()
	return nil
}

func (s *Store) setLoading(loading bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.loading = loading
}

func (s *Store) clearState() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = ""
	s.user = nil
}

// tokenExpired checks the exp claim of a JWT without verifying the
// signature; validity is the server's concern, this only avoids restoring a
// session the server is guaranteed to reject. Opaque tokens pass through.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(time.Now())
}
