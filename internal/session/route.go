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

package session

// Route is the navigation decision derived from session state.
type Route string

const (
	// RouteNone means the session is indeterminate (still loading) and no
	// redirect decision may be made yet.
	RouteNone       Route = ""
	RouteLogin      Route = "login"
	RouteOnboarding Route = "onboarding"
	RouteDashboard  Route = "dashboard"
)

// Route computes the navigation guard decision. While the store is loading
// the session is indeterminate and the guard returns RouteNone.
func (s *Store) Route() Route {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.loading {
		return RouteNone
	}
	if s.user == nil {
		return RouteLogin
	}
	if !s.onboardingDone {
		return RouteOnboarding
	}
	return RouteDashboard
}
