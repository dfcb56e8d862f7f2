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

// Package setup hosts the in-memory consent backend the integration tests
// run against. It speaks the same routes and quirks as the real service:
// numeric ids, the {message}/{error} error envelopes, and the payment-sheet
// route that only exists at the server root.
package setup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

type backendUser struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName,omitempty"`
	PackQuantity int    `json:"packQuantity"`

	password string
}

type backendConsent struct {
	ID        int          `json:"id"`
	UserID    int          `json:"userId"`
	PartnerID int          `json:"partnerId"`
	User      *backendUser `json:"user"`
	Partner   *backendUser `json:"partner"`
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Type      string       `json:"type,omitempty"`
	CreatedAt string       `json:"createdAt"`
}

type backendNotification struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	ConsentID int    `json:"consentId"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`

	receiverID int
}

// FakeBackend is one test instance of the consent service.
type FakeBackend struct {
	Server *httptest.Server

	mutex         sync.Mutex
	nextID        int
	users         map[string]*backendUser
	consents      []*backendConsent
	notifications []*backendNotification

	// Route hit counters the tests assert on.
	PaymentSheetAPIHits  int
	PaymentSheetRootHits int
	MarkReadCalls        int
}

// StartFakeBackend boots the in-memory service on an ephemeral port.
func StartFakeBackend() *FakeBackend {
	b := &FakeBackend{
		nextID: 1,
		users:  make(map[string]*backendUser),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/auth/signup", b.handleSignup)
	mux.HandleFunc("GET /api/user/info", b.handleUserInfo)
	mux.HandleFunc("PUT /api/user/profile", b.handleUpdateProfile)
	mux.HandleFunc("GET /api/user/contacts", b.handleContacts)
	mux.HandleFunc("POST /api/consent", b.handleCreateConsent)
	mux.HandleFunc("PUT /api/consent/{id}/accept", b.handleTransition("ACCEPTED"))
	mux.HandleFunc("PUT /api/consent/{id}/decline", b.handleTransition("REFUSED"))
	mux.HandleFunc("PUT /api/consent/{id}/confirm-biometric", b.handleConfirmBiometric)
	mux.HandleFunc("GET /api/consent/history", b.handleHistory)
	mux.HandleFunc("GET /api/consent/charter", b.handleCharter)
	mux.HandleFunc("GET /api/notifications/unread", b.handleUnread)
	mux.HandleFunc("PUT /api/notifications/mark-as-read", b.handleMarkRead)
	mux.HandleFunc("POST /api/packs/payment-sheet", b.handlePaymentSheetAPI)
	mux.HandleFunc("POST /packs/payment-sheet", b.handlePaymentSheetRoot)

	b.Server = httptest.NewServer(mux)
	return b
}

// Close shuts the backend down.
func (b *FakeBackend) Close() {
	b.Server.Close()
}

// BaseURL returns the canonical API root, /api prefix included.
func (b *FakeBackend) BaseURL() string {
	return b.Server.URL + "/api"
}

// Seed registers an account directly, bypassing the signup route.
func (b *FakeBackend) Seed(email, password, firstName string, packQuantity int) int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	user := &backendUser{
		ID:           b.nextID,
		Email:        email,
		FirstName:    firstName,
		PackQuantity: packQuantity,
		password:     password,
	}
	b.nextID++
	b.users[email] = user
	return user.ID
}

// ConsentStatus reports the stored status of a consent, or "" when unknown.
func (b *FakeBackend) ConsentStatus(id int) string {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, c := range b.consents {
		if c.ID == id {
			return c.Status
		}
	}
	return ""
}

func (b *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: email and password are required"})
		return
	}

	b.mutex.Lock()
	user, ok := b.users[req.Email]
	b.mutex.Unlock()
	if !ok || user.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"token": tokenFor(user.ID), "user": user})
}

func (b *FakeBackend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" || req.FirstName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: firstName, email and password are required"})
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	if _, exists := b.users[req.Email]; exists {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": `duplicate key value violates unique constraint "users_email_key"`,
		})
		return
	}
	user := &backendUser{
		ID:        b.nextID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		password:  req.Password,
	}
	b.nextID++
	b.users[req.Email] = user
	writeJSON(w, http.StatusCreated, map[string]interface{}{"token": tokenFor(user.ID), "user": user})
}

func (b *FakeBackend) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "packQuantity": user.PackQuantity})
}

func (b *FakeBackend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: malformed profile payload"})
		return
	}

	b.mutex.Lock()
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	b.mutex.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (b *FakeBackend) handleContacts(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	contacts := make([]*backendUser, 0, len(b.users))
	for _, u := range b.users {
		if u.ID != user.ID {
			contacts = append(contacts, u)
		}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (b *FakeBackend) handleCreateConsent(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	var req struct {
		PartnerEmail string `json:"partnerEmail"`
		ConsentData  struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"consentData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PartnerEmail == "" || req.ConsentData.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: partnerEmail and message are required"})
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	partner, ok := b.users[req.PartnerEmail]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Partner not found"})
		return
	}

	consent := &backendConsent{
		ID:        b.nextID,
		UserID:    user.ID,
		PartnerID: partner.ID,
		User:      user,
		Partner:   partner,
		Status:    "PENDING",
		Message:   req.ConsentData.Message,
		Type:      req.ConsentData.Type,
		CreatedAt: "2026-03-14T18:30:00Z",
	}
	b.nextID++
	b.consents = append(b.consents, consent)

	b.notifications = append(b.notifications, &backendNotification{
		ID:         b.nextID,
		Type:       "CONSENT_REQUEST",
		ConsentID:  consent.ID,
		Message:    fmt.Sprintf("%s sent you a consent request", user.FirstName),
		receiverID: partner.ID,
	})
	b.nextID++

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Consent request created",
		"consentId": consent.ID,
	})
}

func (b *FakeBackend) handleTransition(next string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := b.authenticated(w, r)
		if user == nil {
			return
		}
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: consent id must be numeric"})
			return
		}

		b.mutex.Lock()
		defer b.mutex.Unlock()
		for _, c := range b.consents {
			if c.ID != id {
				continue
			}
			if c.Status != "PENDING" {
				writeJSON(w, http.StatusConflict, map[string]string{"message": "Consent already resolved"})
				return
			}
			c.Status = next
			writeJSON(w, http.StatusOK, map[string]string{"message": "Consent " + strings.ToLower(next)})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Consent not found"})
	}
}

// handleConfirmBiometric records a device biometric confirmation and notifies
// the other party of the consent.
func (b *FakeBackend) handleConfirmBiometric(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: consent id must be numeric"})
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, c := range b.consents {
		if c.ID != id {
			continue
		}
		receiverID := c.UserID
		if user.ID == c.UserID {
			receiverID = c.PartnerID
		}
		b.notifications = append(b.notifications, &backendNotification{
			ID:         b.nextID,
			Type:       "BIOMETRIC_CONFIRMATION",
			ConsentID:  c.ID,
			Message:    fmt.Sprintf("%s confirmed with biometrics", user.FirstName),
			receiverID: receiverID,
		})
		b.nextID++
		writeJSON(w, http.StatusOK, map[string]string{"message": "Biometric confirmation recorded"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Consent not found"})
}

func (b *FakeBackend) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	history := make([]*backendConsent, 0, len(b.consents))
	for _, c := range b.consents {
		if c.UserID == user.ID || c.PartnerID == user.ID {
			history = append(history, c)
		}
	}
	writeJSON(w, http.StatusOK, history)
}

func (b *FakeBackend) handleCharter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"title":   "Consent Charter",
		"content": "Consent is explicit, informed and revocable at any time.",
	})
}

func (b *FakeBackend) handleUnread(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	unread := make([]*backendNotification, 0, len(b.notifications))
	for _, n := range b.notifications {
		if n.receiverID == user.ID && !n.Read {
			unread = append(unread, n)
		}
	}
	writeJSON(w, http.StatusOK, unread)
}

func (b *FakeBackend) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	var req struct {
		NotificationIDs []json.Number `json:"notificationIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NotificationIDs == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: notificationIds is required"})
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.MarkReadCalls++
	for _, raw := range req.NotificationIDs {
		id, err := strconv.Atoi(raw.String())
		if err != nil {
			continue
		}
		for _, n := range b.notifications {
			if n.ID == id && n.receiverID == user.ID {
				n.Read = true
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notifications marked as read"})
}

// handlePaymentSheetAPI mirrors the production quirk: the payment route was
// mounted at the server root, so the /api-prefixed path 404s.
func (b *FakeBackend) handlePaymentSheetAPI(w http.ResponseWriter, r *http.Request) {
	b.mutex.Lock()
	b.PaymentSheetAPIHits++
	b.mutex.Unlock()
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
}

func (b *FakeBackend) handlePaymentSheetRoot(w http.ResponseWriter, r *http.Request) {
	user := b.authenticated(w, r)
	if user == nil {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Validation failed: quantity must be at least 1"})
		return
	}

	b.mutex.Lock()
	b.PaymentSheetRootHits++
	user.PackQuantity += req.Quantity
	b.mutex.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"paymentIntent":  "pi_test_1",
		"ephemeralKey":   "ek_test_1",
		"customer":       "cus_test_1",
		"publishableKey": "pk_test_1",
	})
}

// authenticated resolves the bearer token to a user, writing the standard
// rejection envelope when the credential is absent or unknown.
func (b *FakeBackend) authenticated(w http.ResponseWriter, r *http.Request) *backendUser {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return nil
	}

	id, err := strconv.Atoi(strings.TrimPrefix(header, "Bearer tok-"))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return nil
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, u := range b.users {
		if u.ID == id {
			return u
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	return nil
}

func tokenFor(userID int) string {
	return "tok-" + strconv.Itoa(userID)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
