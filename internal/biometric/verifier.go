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

// Package biometric defines the local device-verification guard required
// before a consent transition is submitted. The actual hardware prompt is a
// platform concern injected by the embedding application.
package biometric

import "context"

// Result is the typed outcome of one verification attempt.
type Result struct {
	OK     bool
	Reason string
}

// Verifier prompts the current device user for biometric verification.
type Verifier interface {
	Verify(ctx context.Context) (Result, error)
}

// Func adapts a function to the Verifier interface.
type Func func(ctx context.Context) (Result, error)

func (f Func) Verify(ctx context.Context) (Result, error) {
	return f(ctx)
}

// Passthrough treats verification as satisfied. It is the deliberate
// fallback for devices without biometric hardware.
type Passthrough struct{}

func (Passthrough) Verify(context.Context) (Result, error) {
	return Result{OK: true, Reason: "biometric hardware unavailable"}, nil
}

// Static always returns a fixed outcome. Test use.
type Static struct {
	OK     bool
	Reason string
}

func (s Static) Verify(context.Context) (Result, error) {
	return Result{OK: s.OK, Reason: s.Reason}, nil
}

// ForDevice selects the verifier for the device: the real prompt when
// hardware support was probed, otherwise the pass-through fallback.
func ForDevice(supported bool, prompt Verifier) Verifier {
	if !supported || prompt == nil {
		return Passthrough{}
	}
	return prompt
}
