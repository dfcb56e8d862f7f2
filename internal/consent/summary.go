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
	"fmt"
	"time"

	"github.com/consentapp/consent-client-core/internal/model"
)

// Role is the viewer's relationship to a consent.
type Role string

const (
	RoleInitiator Role = "initiator"
	RolePartner   Role = "partner"
	RoleObserver  Role = "observer"
)

// Summary is the derived presentation state for one consent, a pure
// function of the consent and the viewer identity.
type Summary struct {
	Role           Role
	Headline       string
	Message        string
	InitiatorLabel string
	PartnerLabel   string
	When           string
}

const (
	fallbackInitiator = "Someone"
	fallbackPartner   = "a contact"
)

// Summarize computes the human-readable summary of a consent for a viewer.
// Missing or oddly-shaped profile fields fall back to masked placeholders;
// this function never panics on absent nested objects.
func Summarize(c *model.Consent, viewerID model.ID) Summary {
	if c == nil {
		return Summary{Role: RoleObserver, Headline: "Unknown status"}
	}

	initiator := c.User.DisplayName(fallbackInitiator)
	partner := c.Partner.DisplayName(fallbackPartner)

	role := RoleObserver
	switch viewerID {
	case c.UserID:
		role = RoleInitiator
	case c.PartnerID:
		role = RolePartner
	}

	counterpart := partner
	if role == RolePartner {
		counterpart = initiator
	}

	var headline string
	switch c.Status {
	case model.StatusPending:
		if role == RolePartner {
			headline = fmt.Sprintf("%s is waiting for your biometric confirmation", initiator)
		} else {
			headline = fmt.Sprintf("Waiting for %s to confirm with biometrics", partner)
		}
	case model.StatusAccepted:
		if role == RoleObserver {
			headline = fmt.Sprintf("%s and %s confirmed this consent with biometrics", initiator, partner)
		} else {
			headline = fmt.Sprintf("You and %s confirmed this consent with biometrics", counterpart)
		}
	case model.StatusRefused:
		if role == RolePartner {
			headline = "You refused this consent"
		} else {
			headline = fmt.Sprintf("Consent refused by %s", partner)
		}
	default:
		headline = "Unknown status"
	}

	return Summary{
		Role:           role,
		Headline:       headline,
		Message:        c.Message.Display("message"),
		InitiatorLabel: initiator,
		PartnerLabel:   partner,
		When:           formatWhen(c.DateTime, c.CreatedAt),
	}
}

// formatWhen renders the consent date, preferring the scheduled dateTime
// over the creation timestamp, and passing unparsable values through.
func formatWhen(dateTime, createdAt string) string {
	raw := dateTime
	if raw == "" {
		raw = createdAt
	}
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006 15:04")
		}
	}
	return raw
}
