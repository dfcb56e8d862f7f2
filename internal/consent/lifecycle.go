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
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/consentapp/consent-client-core/internal/biometric"
	"github.com/consentapp/consent-client-core/internal/model"
	"github.com/consentapp/consent-client-core/internal/session"
	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
	"github.com/consentapp/consent-client-core/internal/system/log"
)

// API is the slice of the gateway the lifecycle depends on.
type API interface {
	CreateConsent(ctx context.Context, req model.CreateConsentRequest) (*model.CreateConsentResponse, error)
	AcceptConsent(ctx context.Context, consentID, userID model.ID) error
	DeclineConsent(ctx context.Context, consentID, userID model.ID) error
	ConsentHistory(ctx context.Context) ([]model.Consent, error)
}

// SessionReader exposes the session snapshot the lifecycle needs to know
// who the current device user is.
type SessionReader interface {
	Snapshot() session.Session
}

// Lifecycle drives the consent status state machine from the client side:
// PENDING → ACCEPTED or REFUSED, terminal. A transition request is only
// submitted after the local biometric guard passes, and at most one request
// per consent id is in flight at a time.
type Lifecycle struct {
	api      API
	sessions SessionReader
	verifier biometric.Verifier

	mutex    sync.Mutex
	inFlight map[model.ID]struct{}
}

// NewLifecycle builds the lifecycle service.
func NewLifecycle(api API, sessions SessionReader, verifier biometric.Verifier) *Lifecycle {
	if verifier == nil {
		verifier = biometric.Passthrough{}
	}
	return &Lifecycle{
		api:      api,
		sessions: sessions,
		verifier: verifier,
		inFlight: make(map[model.ID]struct{}),
	}
}

// Create validates the draft, passes the biometric guard and submits a new
// consent request addressed to partnerEmail.
func (l *Lifecycle) Create(ctx context.Context, partnerEmail string, draft model.ConsentDraft) (*model.CreateConsentResponse, error) {
	if _, err := l.currentUser(); err != nil {
		return nil, err
	}

	if !strings.Contains(partnerEmail, "@") {
		return nil, validationError("A valid partner email is required.")
	}
	if strings.TrimSpace(draft.Message) == "" {
		return nil, validationError("A consent message is required.")
	}

	if err := l.verify(ctx); err != nil {
		return nil, err
	}

	return l.api.CreateConsent(ctx, model.CreateConsentRequest{
		PartnerEmail: partnerEmail,
		ConsentData:  draft,
	})
}

// Accept requests the PENDING → ACCEPTED transition.
func (l *Lifecycle) Accept(ctx context.Context, c *model.Consent) error {
	return l.transition(ctx, c, model.StatusAccepted, l.api.AcceptConsent)
}

// Refuse requests the PENDING → REFUSED transition.
func (l *Lifecycle) Refuse(ctx context.Context, c *model.Consent) error {
	return l.transition(ctx, c, model.StatusRefused, l.api.DeclineConsent)
}

// transition enforces the guard ordering: state check, in-flight lock,
// biometric verification, then the network call, then the local update.
func (l *Lifecycle) transition(
	ctx context.Context,
	c *model.Consent,
	next model.Status,
	call func(ctx context.Context, consentID, userID model.ID) error,
) error {
	viewer, err := l.currentUser()
	if err != nil {
		return err
	}
	if err := Validate(c); err != nil {
		return err
	}
	if !c.Status.CanTransitionTo(next) {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONSENT_RESOLVED.Code,
			Message:     errors2.CONSENT_RESOLVED.Message,
			Description: "Consent " + c.ID.String() + " is already " + string(c.Status) + ".",
		}, http.StatusConflict)
	}

	if !l.acquire(c.ID) {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONSENT_IN_FLIGHT.Code,
			Message:     errors2.CONSENT_IN_FLIGHT.Message,
			Description: "Consent " + c.ID.String() + " already has a request in flight.",
		}, http.StatusConflict)
	}
	defer l.release(c.ID)

	if err := l.verify(ctx); err != nil {
		return err
	}

	if err := call(ctx, c.ID, viewer.ID); err != nil {
		return err
	}

	// Local update strictly after the server accepted the transition.
	c.Status = next
	log.GetLogger().Info("Consent transitioned",
		log.String("consentId", c.ID.String()), log.String("status", string(next)))
	return nil
}

// History lists the viewer's consents. A fetch failure degrades to an empty
// list so the screen renders instead of blocking.
func (l *Lifecycle) History(ctx context.Context) []model.Consent {
	consents, err := l.api.ConsentHistory(ctx)
	if err != nil {
		log.GetLogger().Warn("Failed to fetch consent history; showing empty list",
			log.Error(err))
		return []model.Consent{}
	}
	if consents == nil {
		return []model.Consent{}
	}
	return consents
}

// verify runs the biometric guard. Nothing is submitted to the backend when
// the guard does not report success.
func (l *Lifecycle) verify(ctx context.Context) error {
	result, err := l.verifier.Verify(ctx)
	if err != nil || !result.OK {
		description := result.Reason
		if description == "" {
			description = "Biometric verification did not succeed."
		}
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BIOMETRIC_REQUIRED.Code,
			Message:     errors2.BIOMETRIC_REQUIRED.Message,
			Description: description,
		}, http.StatusForbidden)
	}
	return nil
}

func (l *Lifecycle) currentUser() (*model.User, error) {
	snapshot := l.sessions.Snapshot()
	if snapshot.User == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UNAUTHORIZED_NO_TOKEN.Code,
			Message:     errors2.UNAUTHORIZED_NO_TOKEN.Message,
			Description: "Consent actions require a logged-in user.",
		}, http.StatusUnauthorized)
	}
	return snapshot.User, nil
}

func (l *Lifecycle) acquire(id model.ID) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, busy := l.inFlight[id]; busy {
		return false
	}
	l.inFlight[id] = struct{}{}
	return true
}

func (l *Lifecycle) release(id model.ID) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	delete(l.inFlight, id)
}

// Validate flags malformed consent entities so callers can render an error
// block instead of crashing on absent nested objects.
func Validate(c *model.Consent) error {
	if c == nil || c.ID.IsZero() || c.User == nil || c.Partner == nil || c.Status == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MALFORMED_CONSENT.Code,
			Message:     errors2.MALFORMED_CONSENT.Message,
			Description: "Consent entry is missing its id, status or nested user objects.",
		}, http.StatusUnprocessableEntity)
	}
	return nil
}

func validationError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.VALIDATION_ERROR.Code,
		Message:     errors2.VALIDATION_ERROR.Message,
		Description: description,
	}, http.StatusBadRequest)
}
