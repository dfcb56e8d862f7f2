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

package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/consentapp/consent-client-core/internal/model"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/internal/system/log"
)

const (
	charterCacheKey  = "consent:charter"
	contactsCacheKey = "user:contacts"
)

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", model.LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account and returns the same token/user pair as Login.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchUserInfo fetches the authenticated user's profile. Some backend
// versions wrap the user in {user, packQuantity}, others return the user
// object bare, so both shapes are accepted.
func (c *Client) FetchUserInfo(ctx context.Context) (*model.UserInfo, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user/info", nil, &raw); err != nil {
		return nil, err
	}

	var out model.UserInfo
	if err := json.Unmarshal(raw, &out); err == nil && !out.User.ID.IsZero() {
		return &out, nil
	}

	var bare model.User
	if err := json.Unmarshal(raw, &bare); err != nil || bare.ID.IsZero() {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RESPONSE_DECODE.Code,
			Message:     errors2.RESPONSE_DECODE.Message,
			Description: "User info response has no recognizable user object.",
		}, err)
	}
	return &model.UserInfo{User: bare, PackQuantity: bare.PackQuantity}, nil
}

// UpdateProfile updates the editable profile fields and returns the fresh user.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/user/profile", update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListContacts lists the potential partners for the current user. Results
// are cached per bearer token for the configured TTL.
func (c *Client) ListContacts(ctx context.Context) ([]model.User, error) {
	key := c.scopedCacheKey(contactsCacheKey)
	if cached, ok := c.cache.Get(key); ok {
		if contacts, ok := cached.([]model.User); ok {
			return contacts, nil
		}
	}

	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/user/contacts", nil, &out); err != nil {
		return nil, err
	}
	c.cache.Set(key, out)
	return out, nil
}

// CreateConsent creates a consent request addressed to a partner email.
func (c *Client) CreateConsent(ctx context.Context, req model.CreateConsentRequest) (*model.CreateConsentResponse, error) {
	var out model.CreateConsentResponse
	if err := c.do(ctx, http.MethodPost, "/consent", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptConsent requests the PENDING → ACCEPTED transition. The caller must
// have passed the biometric guard first.
func (c *Client) AcceptConsent(ctx context.Context, consentID, userID model.ID) error {
	path := fmt.Sprintf("/consent/%s/accept", consentID)
	return c.do(ctx, http.MethodPut, path, map[string]model.ID{"userId": userID}, nil)
}

// DeclineConsent requests the PENDING → REFUSED transition.
func (c *Client) DeclineConsent(ctx context.Context, consentID, userID model.ID) error {
	path := fmt.Sprintf("/consent/%s/decline", consentID)
	return c.do(ctx, http.MethodPut, path, map[string]model.ID{"userId": userID}, nil)
}

// ConfirmBiometric reports a successful device biometric confirmation for a
// consent to the backend.
func (c *Client) ConfirmBiometric(ctx context.Context, consentID, userID model.ID) error {
	path := fmt.Sprintf("/consent/%s/confirm-biometric", consentID)
	return c.do(ctx, http.MethodPut, path, map[string]model.ID{"userId": userID}, nil)
}

// ConsentHistory lists the consents involving the current user.
func (c *Client) ConsentHistory(ctx context.Context) ([]model.Consent, error) {
	var out []model.Consent
	if err := c.do(ctx, http.MethodGet, "/consent/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConsentCharter fetches the static consent policy text, cached for the
// configured TTL.
func (c *Client) ConsentCharter(ctx context.Context) (*model.Charter, error) {
	if cached, ok := c.cache.Get(charterCacheKey); ok {
		if charter, ok := cached.(*model.Charter); ok {
			return charter, nil
		}
	}

	var out model.Charter
	if err := c.do(ctx, http.MethodGet, "/consent/charter", nil, &out); err != nil {
		return nil, err
	}
	c.cache.Set(charterCacheKey, &out)
	return &out, nil
}

// UnreadNotifications lists the unread notification set.
func (c *Client) UnreadNotifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/unread", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationsRead marks the given notifications read in bulk.
func (c *Client) MarkNotificationsRead(ctx context.Context, ids []model.ID) error {
	if ids == nil {
		ids = []model.ID{}
	}
	return c.do(ctx, http.MethodPut, "/notifications/mark-as-read",
		map[string][]model.ID{"notificationIds": ids}, nil)
}

// CreatePaymentSheet creates a payment-provider checkout session for a pack
// purchase. A 404 on the canonical route triggers exactly one retry against
// the root-path fallback route before surfacing failure.
func (c *Client) CreatePaymentSheet(ctx context.Context, quantity int) (*model.PaymentSheet, error) {
	payload := map[string]int{"quantity": quantity}

	var out model.PaymentSheet
	err := c.doURL(ctx, http.MethodPost, c.BaseURL+"/packs/payment-sheet", payload, &out)
	if err != nil && errors2.StatusOf(err) == http.StatusNotFound {
		log.GetLogger().Debug("Payment sheet route returned 404; retrying fallback route",
			log.String("fallback", c.FallbackURL))
		err = c.doURL(ctx, http.MethodPost, c.FallbackURL+"/packs/payment-sheet", payload, &out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FlushCache drops cached reads. Called on logout.
func (c *Client) FlushCache() {
	c.cache.Flush()
}

// scopedCacheKey namespaces a cache key by the current bearer token so one
// account never reads another account's cached data. The key carries a short
// digest of the token, never the token itself: cache keys end up in debug
// logs.
func (c *Client) scopedCacheKey(prefix string) string {
	token, err := c.tokens.Load()
	if err != nil || token == "" {
		return prefix + ":anonymous"
	}
	sum := sha256.Sum256([]byte(token))
	return prefix + ":" + hex.EncodeToString(sum[:8])
}
