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

package errors

const errorPrefix = "CCC-"

var (
	// Client error codes

	INVALID_CREDENTIALS = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Invalid email or password.",
	}

	DUPLICATE_EMAIL = ErrorMessage{
		Code:    errorPrefix + "10002",
		Message: "An account with this email already exists.",
	}

	VALIDATION_ERROR = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Some fields are missing or invalid.",
	}

	UNAUTHORIZED_NO_TOKEN = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "No session token is available for a protected route.",
	}

	BIOMETRIC_REQUIRED = ErrorMessage{
		Code:    errorPrefix + "10005",
		Message: "Biometric verification is required before this action.",
	}

	CONSENT_RESOLVED = ErrorMessage{
		Code:    errorPrefix + "10006",
		Message: "Consent request has already been resolved.",
	}

	CONSENT_IN_FLIGHT = ErrorMessage{
		Code:    errorPrefix + "10007",
		Message: "An action for this consent request is already in progress.",
	}

	MALFORMED_CONSENT = ErrorMessage{
		Code:    errorPrefix + "10008",
		Message: "Consent entry is malformed.",
	}

	INVALID_PACK_QUANTITY = ErrorMessage{
		Code:    errorPrefix + "10009",
		Message: "Pack quantity must be a positive number.",
	}

	// Server error codes

	NETWORK_ERROR = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to reach the consent service.",
	}

	REQUEST_TIMEOUT = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "The request to the consent service timed out.",
	}

	UNKNOWN_SERVER_ERROR = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "The consent service returned an unexpected error.",
	}

	RESPONSE_DECODE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Unable to decode the consent service response.",
	}

	TOKEN_STORE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while accessing the secure token store.",
	}

	PAYMENT_SHEET = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while creating the payment sheet.",
	}
)
