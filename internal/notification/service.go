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

package notification

import (
	"context"

	"github.com/consentapp/consent-client-core/internal/model"
	"github.com/consentapp/consent-client-core/internal/system/log"
)

// API is the slice of the gateway the notification service depends on.
type API interface {
	UnreadNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, ids []model.ID) error
}

// Service surfaces the unread notification set and marks entries read.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// Unread returns the unread notifications. A fetch failure degrades to an
// empty list so the screen renders instead of blocking.
func (s *Service) Unread(ctx context.Context) []model.Notification {
	notifications, err := s.api.UnreadNotifications(ctx)
	if err != nil {
		log.GetLogger().Warn("Failed to fetch unread notifications; showing empty list",
			log.Error(err))
		return []model.Notification{}
	}
	if notifications == nil {
		return []model.Notification{}
	}
	return notifications
}

// MarkAllRead marks the whole current unread set as read. Idempotent:
// calling it again after the set has drained is a no-op on the server.
func (s *Service) MarkAllRead(ctx context.Context) error {
	unread := s.Unread(ctx)
	ids := make([]model.ID, 0, len(unread))
	for _, n := range unread {
		ids = append(ids, n.ID)
	}
	return s.api.MarkNotificationsRead(ctx, ids)
}

// MarkRead marks specific notifications read.
func (s *Service) MarkRead(ctx context.Context, ids ...model.ID) error {
	return s.api.MarkNotificationsRead(ctx, ids)
}

// FilterByType returns the notifications of one type, preserving order.
func FilterByType(notifications []model.Notification, t model.NotificationType) []model.Notification {
	filtered := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.Type == t {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
