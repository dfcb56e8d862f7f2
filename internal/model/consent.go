/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

// Status is the lifecycle state of a consent request. PENDING is the only
// non-terminal state; a resolved consent is never re-opened.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRefused  Status = "REFUSED"
)

// IsTerminal reports whether the status admits no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRefused
}

// CanTransitionTo reports whether the server-authoritative transition the
// client is about to request is one the state machine allows.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// Consent is one party's request for the other party's agreement. Status
// transitions are server-authoritative; the client only requests them after
// a successful local biometric check.
type Consent struct {
	ID        ID       `json:"id"`
	UserID    ID       `json:"userId"`
	PartnerID ID       `json:"partnerId"`
	User      *User    `json:"user"`
	Partner   *User    `json:"partner"`
	Status    Status   `json:"status"`
	Message   FlexText `json:"message"`
	Type      FlexText `json:"type"`
	Emoji     FlexText `json:"emoji"`
	CreatedAt string   `json:"createdAt"`
	DateTime  string   `json:"dateTime"`
}
