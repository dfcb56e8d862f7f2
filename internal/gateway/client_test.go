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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consentapp/consent-client-core/internal/model"
	"github.com/consentapp/consent-client-core/internal/system/config"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/internal/system/securestore"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *securestore.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := securestore.NewMemoryStore()
	cfg := config.Config{
		API: config.APIConfig{
			BaseURL:         server.URL + "/api",
			FallbackBaseURL: server.URL,
		},
	}
	return NewClient(cfg, tokens), tokens
}

func TestRequestCarriesBearerAndRequestID(t *testing.T) {
	var authHeader, requestID string
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`[]`))
	}))
	require.NoError(t, tokens.Save("tok-42"))

	_, err := client.ConsentHistory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-42", authHeader)
	assert.NotEmpty(t, requestID)
}

func TestRequestWithoutTokenGoesUnauthenticated(t *testing.T) {
	var authHeader string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ConsentHistory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestInvalidCredentialsClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))

	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.INVALID_CREDENTIALS.Code))
	assert.Equal(t, http.StatusUnauthorized, errors2.StatusOf(err))
}

func TestDuplicateEmailClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"duplicate key value violates unique constraint \"users_email_key\""}`))
	}))

	_, err := client.Signup(context.Background(), model.SignupRequest{
		FirstName: "Ana", Email: "ana@example.com", Password: "pw",
	})
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.DUPLICATE_EMAIL.Code))
}

func TestValidationErrorClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Validation failed: email is required"}`))
	}))

	_, err := client.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.VALIDATION_ERROR.Code))
}

func TestUnauthorizedWithoutTokenClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
	}))

	_, err := client.FetchUserInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.UNAUTHORIZED_NO_TOKEN.Code))
}

func TestUnknownServerErrorClassification(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	require.NoError(t, tokens.Save("tok"))

	_, err := client.FetchUserInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.UNKNOWN_SERVER_ERROR.Code))
	assert.Equal(t, http.StatusBadGateway, errors2.StatusOf(err))
}

func TestNetworkErrorClassification(t *testing.T) {
	tokens := securestore.NewMemoryStore()
	client := NewClient(config.Config{
		API: config.APIConfig{BaseURL: "http://127.0.0.1:1/api"},
	}, tokens)

	_, err := client.ConsentHistory(context.Background())
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.NETWORK_ERROR.Code))
}

func TestTimeoutClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ConsentHistory(ctx)
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.REQUEST_TIMEOUT.Code))
}

func TestFetchUserInfoAcceptsBothShapes(t *testing.T) {
	wrapped := `{"user":{"id":1,"email":"ana@example.com"},"packQuantity":4}`
	bare := `{"id":2,"email":"ben@example.com","packQuantity":7}`

	body := wrapped
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	require.NoError(t, tokens.Save("tok"))

	info, err := client.FetchUserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ID("1"), info.User.ID)
	assert.Equal(t, 4, info.PackQuantity)

	body = bare
	info, err = client.FetchUserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ID("2"), info.User.ID)
	assert.Equal(t, 7, info.PackQuantity)

	body = `"not a user"`
	_, err = client.FetchUserInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.RESPONSE_DECODE.Code))
}

func TestPaymentSheetFallsBackOn404(t *testing.T) {
	var apiHits, rootHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/packs/payment-sheet", func(w http.ResponseWriter, r *http.Request) {
		apiHits++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
	})
	mux.HandleFunc("/packs/payment-sheet", func(w http.ResponseWriter, r *http.Request) {
		rootHits++
		_, _ = w.Write([]byte(`{"paymentIntent":"pi_1","customer":"cus_1"}`))
	})
	client, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.Save("tok"))

	sheet, err := client.CreatePaymentSheet(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", sheet.PaymentIntent)
	assert.Equal(t, 1, apiHits)
	assert.Equal(t, 1, rootHits)
}

func TestPaymentSheetDoesNotFallBackOnOtherErrors(t *testing.T) {
	var rootHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/packs/payment-sheet", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})
	mux.HandleFunc("/packs/payment-sheet", func(w http.ResponseWriter, r *http.Request) {
		rootHits++
	})
	client, tokens := newTestClient(t, mux)
	require.NoError(t, tokens.Save("tok"))

	_, err := client.CreatePaymentSheet(context.Background(), 2)
	require.Error(t, err)
	assert.Zero(t, rootHits)
}

func TestCharterIsCached(t *testing.T) {
	var hits int
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"title":"Charter","content":"Consent is revocable."}`))
	}))
	require.NoError(t, tokens.Save("tok"))

	first, err := client.ConsentCharter(context.Background())
	require.NoError(t, err)
	second, err := client.ConsentCharter(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first.Title.String(), second.Title.String())
}

func TestContactsCacheIsScopedPerToken(t *testing.T) {
	var hits int
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[{"id":1,"email":"ana@example.com"}]`))
	}))
	require.NoError(t, tokens.Save("tok-ana"))

	_, err := client.ListContacts(context.Background())
	require.NoError(t, err)
	_, err = client.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// A different account must not read the previous account's cache entry.
	require.NoError(t, tokens.Save("tok-ben"))
	_, err = client.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestCacheKeysNeverContainTheToken(t *testing.T) {
	const token = "eyJ-super-secret-bearer-token"
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"email":"ana@example.com"}]`))
	}))
	require.NoError(t, tokens.Save(token))

	// Cache keys are written to debug logs, so the live credential must
	// never be part of one.
	key := client.scopedCacheKey(contactsCacheKey)
	assert.NotContains(t, key, token)
	assert.NotEqual(t, contactsCacheKey+":anonymous", key)

	_, err := client.ListContacts(context.Background())
	require.NoError(t, err)
	cached, ok := client.cache.Get(key)
	require.True(t, ok)
	assert.Len(t, cached, 1)
}

func TestMarkNotificationsReadSendsEmptyArray(t *testing.T) {
	var body string
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
	}))
	require.NoError(t, tokens.Save("tok"))

	require.NoError(t, client.MarkNotificationsRead(context.Background(), nil))
	assert.JSONEq(t, `{"notificationIds":[]}`, body)
}
