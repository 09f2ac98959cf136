// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth

// Error codes returned by the use cases.
const (
	// CodeBackendFailed wraps an error returned by the Backend.
	CodeBackendFailed = "AUTH_BACKEND_FAILED"

	// CodeCancelled is returned when the context ends while the backend is called.
	CodeCancelled = "AUTH_CANCELLED"

	// CodeEmptyOutcome is returned when the Backend returns neither variant.
	CodeEmptyOutcome = "AUTH_EMPTY_OUTCOME"
)

// Operation names used in logs, spans and metrics.
const (
	OperationSignIn = "sign_in"
	OperationSignUp = "sign_up"
)
