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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/consentapp/consent-client-core/internal/system/cache"
	"github.com/consentapp/consent-client-core/internal/system/config"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/internal/system/log"
	"github.com/consentapp/consent-client-core/internal/system/securestore"
)

// Client is the API gateway for the consent service. It owns request
// construction, bearer-token injection and error normalization for every
// backend operation the application uses.
type Client struct {
	BaseURL     string
	FallbackURL string
	HTTPClient  *http.Client
	tokens      securestore.TokenStore
	cache       *cache.Cache
}

// NewClient builds the gateway from configuration. The token store is read
// before every request; the cache fronts the charter and contact reads.
func NewClient(cfg config.Config, tokens securestore.TokenStore) *Client {
	base := strings.TrimSuffix(cfg.API.BaseURL, "/")
	log.GetLogger().Info("Creating consent service client", log.String("baseURL", base))

	return &Client{
		BaseURL:     base,
		FallbackURL: cfg.API.FallbackURL(),
		HTTPClient:  newOutboundHTTPClient(cfg.API.RequestTimeout()),
		tokens:      tokens,
		cache:       cache.NewCache(cfg.Cache.CacheTTL()),
	}
}

// newOutboundHTTPClient builds the HTTP client shared by all operations. The
// timeout is the gateway-level request ceiling from the configuration; the
// caller's context can always cancel earlier.
func newOutboundHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     60 * time.Second,
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// do issues one request against the canonical base URL.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doURL(ctx, method, c.BaseURL+path, body, out)
}

// doURL issues one request, injecting the bearer token when one is stored,
// and normalizes every failure into the error taxonomy.
func (c *Client) doURL(ctx context.Context, method, rawURL string, body, out interface{}) error {
	logger := log.GetLogger()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.RESPONSE_DECODE.Code,
				Message:     errors2.RESPONSE_DECODE.Message,
				Description: "Failed to encode the request payload.",
			}, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.NETWORK_ERROR.Code,
			Message:     errors2.NETWORK_ERROR.Message,
			Description: "Failed to build the request.",
		}, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	// Request interceptor: read the persisted token before every call and
	// attach it as a bearer credential if present. Without a token the
	// request goes out unauthenticated and the server rejects protected
	// routes.
	token, err := c.tokens.Load()
	if err != nil {
		logger.Warn("Failed to read the token store; sending unauthenticated request",
			log.Error(err))
		token = ""
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RESPONSE_DECODE.Code,
			Message:     errors2.RESPONSE_DECODE.Message,
			Description: "Failed to read the response body.",
		}, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyServerError(resp.StatusCode, respBody, token != "")
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		logger.Debug("Failed to parse response body",
			log.String("url", rawURL), log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RESPONSE_DECODE.Code,
			Message:     errors2.RESPONSE_DECODE.Message,
			Description: "Failed to parse the response body.",
		}, errors.Wrapf(err, "decoding %s %s", method, rawURL))
	}
	return nil
}

// classifyTransportError distinguishes timeouts from connectivity failures.
func classifyTransportError(ctx context.Context, cause error) error {
	timedOut := errors.Is(cause, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
	if t, ok := errors.Cause(cause).(interface{ Timeout() bool }); !timedOut && ok {
		timedOut = t.Timeout()
	}

	if timedOut {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REQUEST_TIMEOUT.Code,
			Message:     errors2.REQUEST_TIMEOUT.Message,
			Description: "The request exceeded the gateway timeout.",
		}, cause)
	}
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.NETWORK_ERROR.Code,
		Message:     errors2.NETWORK_ERROR.Message,
		Description: "The consent service could not be reached.",
	}, cause)
}

// serverErrorBody is the error envelope the backend uses. Some routes fill
// message, others fill error.
type serverErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// classifyServerError maps a non-2xx response onto the error taxonomy by
// inspecting the server-provided message content.
func classifyServerError(status int, body []byte, hadToken bool) error {
	var envelope serverErrorBody
	_ = json.Unmarshal(body, &envelope)
	detail := strings.ToLower(envelope.Message + " " + envelope.Error)

	switch {
	case strings.Contains(detail, "invalid credentials"):
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_CREDENTIALS.Code,
			Message:     errors2.INVALID_CREDENTIALS.Message,
			Description: strings.TrimSpace(envelope.Message),
		}, status)
	case strings.Contains(detail, "unique constraint"):
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.DUPLICATE_EMAIL.Code,
			Message:     errors2.DUPLICATE_EMAIL.Message,
			Description: strings.TrimSpace(envelope.Error),
		}, status)
	case strings.Contains(detail, "validation"):
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.VALIDATION_ERROR.Code,
			Message:     errors2.VALIDATION_ERROR.Message,
			Description: strings.TrimSpace(envelope.Message),
		}, status)
	case (status == http.StatusUnauthorized || status == http.StatusForbidden) && !hadToken:
		// A message-classified rejection such as invalid credentials takes
		// precedence; this only catches protected routes hit while logged out.
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UNAUTHORIZED_NO_TOKEN.Code,
			Message:     errors2.UNAUTHORIZED_NO_TOKEN.Message,
			Description: "The route requires authentication and no token is stored.",
		}, status)
	default:
		description := strings.TrimSpace(envelope.Message)
		if description == "" {
			description = strings.TrimSpace(string(body))
		}
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UNKNOWN_SERVER_ERROR.Code,
			Message:     errors2.UNKNOWN_SERVER_ERROR.Message,
			Description: description,
		}, status)
	}
}
