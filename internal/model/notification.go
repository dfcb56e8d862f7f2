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

// NotificationType values the client knows how to present. Unknown types
// are passed through untouched.
type NotificationType string

const (
	NotificationConsentRequest   NotificationType = "CONSENT_REQUEST"
	NotificationBiometricConfirm NotificationType = "BIOMETRIC_CONFIRMATION"
	NotificationConsentAccepted  NotificationType = "CONSENT_ACCEPTED"
	NotificationConsentRefused   NotificationType = "CONSENT_REFUSED"
)

// Notification is one entry of the unread set.
type Notification struct {
	ID        ID               `json:"id"`
	Type      NotificationType `json:"type"`
	Sender    *User            `json:"sender"`
	Receiver  *User            `json:"receiver"`
	ConsentID ID               `json:"consentId"`
	Message   FlexText         `json:"message"`
	Read      bool             `json:"read"`
}
