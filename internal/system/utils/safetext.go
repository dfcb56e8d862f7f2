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

package utils

import (
	"fmt"
	"strings"

	"github.com/consentapp/consent-client-core/internal/system/log"
)

// SafeText coerces any decoded JSON value into a display string.
//
// The backend is loosely typed: fields that should be strings sometimes
// arrive as numbers, arrays, nested objects or null. Rendering code must
// never crash on those, so all display formatting funnels through this one
// coercion point. Every lossy coercion is logged as a warning.
//
// Coercion rules:
// - string: returned as is
// - integer/decimal/bool: formatted ("42", "42.5", "true")
// - nil: empty string
// - array: elements coerced recursively and joined with ", "
// - object: firstName, else the local part of email, else "[object]"
// - anything else: fmt formatting of the value
func SafeText(value interface{}, fieldName string) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		warnCoercion(fieldName, "null value")
		return ""
	case []interface{}:
		warnCoercion(fieldName, "unexpected array")
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, SafeText(item, ""))
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		warnCoercion(fieldName, "unexpected object")
		return objectLabel(v)
	default:
		warnCoercion(fieldName, fmt.Sprintf("unexpected type %T", v))
		return fmt.Sprintf("%v", v)
	}
}

// objectLabel picks a human label out of an unexpected nested object.
func objectLabel(obj map[string]interface{}) string {
	if name, ok := obj["firstName"].(string); ok && name != "" {
		return name
	}
	if email, ok := obj["email"].(string); ok && email != "" {
		return EmailLocalPart(email)
	}
	return "[object]"
}

// EmailLocalPart returns the part of an email address before the @.
func EmailLocalPart(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}

func warnCoercion(fieldName, reason string) {
	if fieldName == "" {
		return
	}
	log.GetLogger().Warn("Coercing unexpected value for display",
		log.String("field", fieldName), log.String("reason", reason))
}
