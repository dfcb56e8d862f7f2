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

package payment

import (
	"context"
	"net/http"

	"github.com/consentapp/consent-client-core/internal/model"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/internal/system/log"
)

// API is the slice of the gateway the payment service depends on. The 404
// fallback retry lives inside the gateway operation.
type API interface {
	CreatePaymentSheet(ctx context.Context, quantity int) (*model.PaymentSheet, error)
}

// SessionReloader refreshes the session user after external state changes.
type SessionReloader interface {
	ReloadUser(ctx context.Context) error
}

// Service runs the credit purchase flow.
type Service struct {
	api      API
	sessions SessionReloader
}

func NewService(api API, sessions SessionReloader) *Service {
	return &Service{api: api, sessions: sessions}
}

// PurchasePacks creates a payment-provider checkout session for the given
// pack quantity, then reloads the session user so derived fields such as
// the credit balance refresh.
func (s *Service) PurchasePacks(ctx context.Context, quantity int) (*model.PaymentSheet, error) {
	if quantity < 1 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_PACK_QUANTITY.Code,
			Message:     errors2.INVALID_PACK_QUANTITY.Message,
			Description: "Pack quantity must be at least 1.",
		}, http.StatusBadRequest)
	}

	sheet, err := s.api.CreatePaymentSheet(ctx, quantity)
	if err != nil {
		return nil, err
	}

	// The sheet is already created server-side; a failed refresh only
	// leaves the displayed balance stale until the next reload.
	if err := s.sessions.ReloadUser(ctx); err != nil {
		log.GetLogger().Warn("Failed to reload the user after purchase", log.Error(err))
	}
	return sheet, nil
}
