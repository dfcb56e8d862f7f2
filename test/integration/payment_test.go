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

	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/test/setup"
)

func Test_PackPurchase(t *testing.T) {
	ctx := context.Background()
	backend := setup.StartFakeBackend()
	defer backend.Close()

	backend.Seed("ana@example.com", "pw-ana", "Ana", 1)

	ana := newClient(t, backend, nil)
	_, err := ana.sessions.Login(ctx, "ana@example.com", "pw-ana")
	require.NoError(t, err)

	t.Run("Purchase_falls_back_to_the_root_route_on_404", func(t *testing.T) {
		sheet, err := ana.payments.PurchasePacks(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "pi_test_1", sheet.PaymentIntent)
		assert.Equal(t, "pk_test_1", sheet.PublishableKey)

		assert.Equal(t, 1, backend.PaymentSheetAPIHits)
		assert.Equal(t, 1, backend.PaymentSheetRootHits)
	})

	t.Run("Session_user_reflects_the_new_balance", func(t *testing.T) {
		snapshot := ana.sessions.Snapshot()
		require.NotNil(t, snapshot.User)
		assert.Equal(t, 3, snapshot.User.PackQuantity)
	})

	t.Run("Non_positive_quantity_never_reaches_the_backend", func(t *testing.T) {
		before := backend.PaymentSheetAPIHits
		_, err := ana.payments.PurchasePacks(ctx, 0)
		require.Error(t, err)
		assert.True(t, errors2.HasCode(err, errors2.INVALID_PACK_QUANTITY.Code))
		assert.Equal(t, before, backend.PaymentSheetAPIHits)
	})
}
