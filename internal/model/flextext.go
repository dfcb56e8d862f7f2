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

import (
	"encoding/json"

	"github.com/consentapp/consent-client-core/internal/system/utils"
)

// FlexText is a text field the backend does not reliably type. It accepts
// any JSON value and renders through the safe-text coercion layer, so a
// message that arrives as a number or a nested object still displays
// instead of failing decode.
type FlexText struct {
	value interface{}
}

// NewFlexText builds a FlexText from a plain string.
func NewFlexText(s string) FlexText {
	return FlexText{value: s}
}

func (f *FlexText) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f FlexText) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Display returns the coerced display string, logging a warning under
// fieldName when the underlying value was not a string.
func (f FlexText) Display(fieldName string) string {
	if f.value == nil {
		return ""
	}
	return utils.SafeText(f.value, fieldName)
}

// AsString returns the underlying value when it is a genuine string.
func (f FlexText) AsString() (string, bool) {
	s, ok := f.value.(string)
	return s, ok
}

// String renders without a coercion warning.
func (f FlexText) String() string {
	if f.value == nil {
		return ""
	}
	return utils.SafeText(f.value, "")
}

func (f FlexText) IsZero() bool {
	return f.value == nil
}
