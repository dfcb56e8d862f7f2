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

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecoding(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected ID
	}{
		{"string id", `"abc-1"`, ID("abc-1")},
		{"numeric id", `17`, ID("17")},
		{"null id", `null`, ID("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &id))
			assert.Equal(t, tt.expected, id)
		})
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &id))
}

func TestIDMarshalPreservesNumbers(t *testing.T) {
	encoded, err := json.Marshal(ID("17"))
	require.NoError(t, err)
	assert.Equal(t, "17", string(encoded))

	encoded, err = json.Marshal(ID("abc-1"))
	require.NoError(t, err)
	assert.Equal(t, `"abc-1"`, string(encoded))
}

func TestFlexTextDecoding(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"string", `"hello"`, "hello"},
		{"number", `12`, "12"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"array", `["a","b"]`, "a, b"},
		{"object", `{"firstName":"Lea"}`, "Lea"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexText
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &f))
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, f.Display("test"))
			})
		})
	}
}

func TestConsentDecodingWithLooseFields(t *testing.T) {
	payload := `{
		"id": 3,
		"userId": 1,
		"partnerId": 2,
		"user": {"id": 1, "email": "ana@example.com", "firstName": "Ana"},
		"partner": {"id": 2, "email": "ben@example.com", "firstName": {"weird": true}},
		"status": "PENDING",
		"message": ["several", "parts"],
		"type": 7,
		"emoji": null
	}`

	var c Consent
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	assert.Equal(t, ID("3"), c.ID)
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, "several, parts", c.Message.String())
	assert.Equal(t, "7", c.Type.String())
	assert.True(t, c.Emoji.IsZero())
	// A non-string firstName falls back to the email local part.
	assert.Equal(t, "ben", c.Partner.DisplayName("x"))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusAccepted))
	assert.True(t, StatusPending.CanTransitionTo(StatusRefused))
	assert.False(t, StatusAccepted.CanTransitionTo(StatusRefused))
	assert.False(t, StatusRefused.CanTransitionTo(StatusAccepted))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRefused.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestUserDisplayName(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "fallback", nilUser.DisplayName("fallback"))

	withName := &User{FirstName: NewFlexText("Ana"), Email: "ana@example.com"}
	assert.Equal(t, "Ana", withName.DisplayName("fallback"))

	emailOnly := &User{Email: "ben@example.com"}
	assert.Equal(t, "ben", emailOnly.DisplayName("fallback"))

	empty := &User{}
	assert.Equal(t, "fallback", empty.DisplayName("fallback"))
}

func TestSignupRequestOmitsEmptyLastName(t *testing.T) {
	encoded, err := json.Marshal(SignupRequest{FirstName: "Ana", Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "lastName")
}
