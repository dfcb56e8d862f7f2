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

import "github.com/consentapp/consent-client-core/internal/system/utils"

// User is the backend account entity. It is received verbatim on login and
// user-info fetches and is replaced, never mutated, on the client.
type User struct {
	ID           ID       `json:"id"`
	Email        string   `json:"email"`
	FirstName    FlexText `json:"firstName"`
	LastName     FlexText `json:"lastName"`
	AvatarURL    string   `json:"avatarUrl"`
	Score        int      `json:"score"`
	PackQuantity int      `json:"packQuantity"`
}

// DisplayName returns the label screens show for a user: first name, else
// the local part of the email, else the given fallback. Never panics on a
// nil user or missing fields.
func (u *User) DisplayName(fallback string) string {
	if u == nil {
		return fallback
	}
	if name, ok := u.FirstName.AsString(); ok && name != "" {
		return name
	}
	if u.Email != "" {
		return utils.EmailLocalPart(u.Email)
	}
	return fallback
}
