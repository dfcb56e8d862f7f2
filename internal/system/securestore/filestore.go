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

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/scrypt"

	errors2 "github.com/consentapp/consent-client-core/internal/system/errors"
)

// Fixed application salt for the scrypt derivation. The device secret is the
// variable input; the salt only namespaces the key to this store.
const keySalt = "consent-client-core/token-store"

// FileStore seals the bearer token with AES-GCM before writing it to disk.
// The sealing key is derived from a per-device secret so a copied token file
// is useless on another device.
type FileStore struct {
	path  string
	key   []byte
	mutex sync.Mutex
}

// NewFileStore derives the sealing key and returns a store writing to path.
func NewFileStore(path, deviceSecret string) (*FileStore, error) {
	if path == "" || deviceSecret == "" {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TOKEN_STORE.Code,
			Message:     errors2.TOKEN_STORE.Message,
			Description: "Token store path and device secret are required.",
		}, nil)
	}

	key, err := scrypt.Key([]byte(deviceSecret), []byte(keySalt), 32768, 8, 1, 32)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TOKEN_STORE.Code,
			Message:     errors2.TOKEN_STORE.Message,
			Description: "Failed to derive the token sealing key.",
		}, err)
	}

	return &FileStore{path: path, key: key}, nil
}

func (s *FileStore) Load() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", s.storeError("Failed to read the token file.", err)
	}

	token, err := s.open(string(raw))
	if err != nil {
		return "", s.storeError("Stored token is unreadable or has been tampered with.", err)
	}
	return token, nil
}

func (s *FileStore) Save(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sealed, err := s.seal(token)
	if err != nil {
		return s.storeError("Failed to seal the token.", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return s.storeError("Failed to create the token store directory.", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(sealed), 0o600); err != nil {
		return s.storeError("Failed to write the token file.", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return s.storeError("Failed to remove the token file.", err)
	}
	return nil
}

func (s *FileStore) seal(value string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := aesGCM.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *FileStore) open(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("sealed token shorter than nonce")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (s *FileStore) storeError(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.TOKEN_STORE.Code,
		Message:     errors2.TOKEN_STORE.Message,
		Description: description,
	}, cause)
}
