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

package securestore

import "sync"

// TokenStore holds the single bearer token the application persists. It is
// read by the gateway before every request and written only by the session
// store on login, logout and restore.
type TokenStore interface {
	// Load returns the stored token, or an empty string when none is stored.
	Load() (string, error)
	Save(token string) error
	// Clear removes the token. Clearing an empty store succeeds.
	Clear() error
}

// MemoryStore keeps the token for the process lifetime only. It backs the
// memory-only session strategy and tests.
type MemoryStore struct {
	mutex sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = ""
	return nil
}
