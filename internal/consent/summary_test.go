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

package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consentapp/consent-client-core/internal/model"
)

func namedConsent(status model.Status) *model.Consent {
	return &model.Consent{
		ID:        model.ID("10"),
		UserID:    model.ID("1"),
		PartnerID: model.ID("2"),
		User:      &model.User{ID: model.ID("1"), FirstName: model.NewFlexText("Ana"), Email: "ana@example.com"},
		Partner:   &model.User{ID: model.ID("2"), FirstName: model.NewFlexText("Ben"), Email: "ben@example.com"},
		Status:    status,
		Message:   model.NewFlexText("dinner"),
		CreatedAt: "2026-03-14T18:30:00Z",
	}
}

func TestSummarizeRoles(t *testing.T) {
	c := namedConsent(model.StatusPending)

	assert.Equal(t, RoleInitiator, Summarize(c, model.ID("1")).Role)
	assert.Equal(t, RolePartner, Summarize(c, model.ID("2")).Role)
	assert.Equal(t, RoleObserver, Summarize(c, model.ID("99")).Role)
}

func TestSummarizeHeadlines(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		viewerID model.ID
		expected string
	}{
		{"pending seen by initiator", model.StatusPending, model.ID("1"),
			"Waiting for Ben to confirm with biometrics"},
		{"pending seen by partner", model.StatusPending, model.ID("2"),
			"Ana is waiting for your biometric confirmation"},
		{"accepted seen by initiator", model.StatusAccepted, model.ID("1"),
			"You and Ben confirmed this consent with biometrics"},
		{"accepted seen by partner", model.StatusAccepted, model.ID("2"),
			"You and Ana confirmed this consent with biometrics"},
		{"accepted seen by observer", model.StatusAccepted, model.ID("99"),
			"Ana and Ben confirmed this consent with biometrics"},
		{"refused seen by initiator", model.StatusRefused, model.ID("1"),
			"Consent refused by Ben"},
		{"refused seen by partner", model.StatusRefused, model.ID("2"),
			"You refused this consent"},
		{"unknown status", model.Status("ARCHIVED"), model.ID("1"),
			"Unknown status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(namedConsent(tt.status), tt.viewerID).Headline)
		})
	}
}

func TestSummarizeFallsBackOnMissingProfiles(t *testing.T) {
	c := namedConsent(model.StatusPending)
	c.User = &model.User{ID: model.ID("1")}
	c.Partner = &model.User{ID: model.ID("2")}

	s := Summarize(c, model.ID("2"))
	assert.Equal(t, "Someone is waiting for your biometric confirmation", s.Headline)
	assert.Equal(t, "Someone", s.InitiatorLabel)
	assert.Equal(t, "a contact", s.PartnerLabel)
}

func TestSummarizeNilConsent(t *testing.T) {
	assert.NotPanics(t, func() {
		s := Summarize(nil, model.ID("1"))
		assert.Equal(t, "Unknown status", s.Headline)
	})
}

func TestSummarizeWhen(t *testing.T) {
	c := namedConsent(model.StatusPending)
	assert.Equal(t, "Mar 14, 2026 18:30", Summarize(c, model.ID("1")).When)

	c.DateTime = "2026-04-01T09:00:00Z"
	assert.Equal(t, "Apr 1, 2026 09:00", Summarize(c, model.ID("1")).When)

	c.DateTime = "next friday"
	assert.Equal(t, "next friday", Summarize(c, model.ID("1")).When)

	c.DateTime = ""
	c.CreatedAt = ""
	assert.Empty(t, Summarize(c, model.ID("1")).When)
}
