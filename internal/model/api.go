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

// Request and response payloads for the consent service API.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest creates an account. LastName is optional and omitted from
// the payload when empty.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is the body of both login and signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UserInfo is the body of GET /user/info.
type UserInfo struct {
	User         User `json:"user"`
	PackQuantity int  `json:"packQuantity"`
}

// ProfileUpdate carries the editable profile fields. Zero-valued fields are
// left untouched by the backend.
type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ConsentDraft is the client-authored part of a consent request.
type ConsentDraft struct {
	Message  string `json:"message"`
	Type     string `json:"type,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
}

type CreateConsentRequest struct {
	PartnerEmail string       `json:"partnerEmail"`
	ConsentData  ConsentDraft `json:"consentData"`
}

type CreateConsentResponse struct {
	Message   string `json:"message"`
	ConsentID ID     `json:"consentId"`
}

// Charter is the static consent policy text.
type Charter struct {
	Title   FlexText `json:"title"`
	Content FlexText `json:"content"`
}

// PaymentSheet holds the provider-hosted checkout session handles for a
// credit purchase.
type PaymentSheet struct {
	PaymentIntent  string `json:"paymentIntent"`
	EphemeralKey   string `json:"ephemeralKey"`
	Customer       string `json:"customer"`
	PublishableKey string `json:"publishableKey"`
}
