// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth

import "net/http"

// MessageResponse is the payload of a failed outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserMetadata holds profile data stored alongside the account.
type UserMetadata struct {
	Name string `json:"name"`
}

// User is the authenticated account.
type User struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"userMetadata"`
}

// AuthenticationResponse is the payload of a successful outcome.
type AuthenticationResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpireIn     int    `json:"expireIn"`
	User         User   `json:"user"`
}

// Outcome is the result of a sign-in or sign-up attempt: either a failure
// message or an authentication payload, together with an HTTP-like status.
//
// The zero Outcome is neither; use Failure or Success to build one.
type Outcome struct {
	status  int
	failure *MessageResponse
	success *AuthenticationResponse
}

// Failure builds a failed outcome.
func Failure(status int, payload MessageResponse) Outcome {
	return Outcome{status: status, failure: &payload}
}

// FailureMessage builds a failed outcome from a plain message.
func FailureMessage(status int, message string) Outcome {
	return Failure(status, MessageResponse{Message: message})
}

// ValidationFailure builds the 400 outcome returned for invalid input.
func ValidationFailure(message string) Outcome {
	return FailureMessage(http.StatusBadRequest, message)
}

// Success builds a successful outcome.
func Success(status int, payload AuthenticationResponse) Outcome {
	return Outcome{status: status, success: &payload}
}

// Status returns the status code carried by the outcome.
func (o Outcome) Status() int {
	return o.status
}

// IsFailure reports whether the outcome is a failure.
func (o Outcome) IsFailure() bool {
	return o.failure != nil
}

// IsSuccess reports whether the outcome is a success.
func (o Outcome) IsSuccess() bool {
	return o.success != nil
}

// Failure returns the failure payload and true if the outcome is a failure.
func (o Outcome) Failure() (MessageResponse, bool) {
	if o.failure == nil {
		return MessageResponse{}, false
	}
	return *o.failure, true
}

// Success returns the success payload and true if the outcome is a success.
func (o Outcome) Success() (AuthenticationResponse, bool) {
	if o.success == nil {
		return AuthenticationResponse{}, false
	}
	return *o.success, true
}

// Fold calls exactly one of the functions depending on the variant.
// A zero Outcome calls neither.
func (o Outcome) Fold(onFailure func(int, MessageResponse), onSuccess func(int, AuthenticationResponse)) {
	switch {
	case o.failure != nil:
		onFailure(o.status, *o.failure)
	case o.success != nil:
		onSuccess(o.status, *o.success)
	}
}

// statusClass returns a low-cardinality label for metrics.
func (o Outcome) statusClass() string {
	switch {
	case o.status >= 500:
		return "5xx"
	case o.status >= 400:
		return "4xx"
	case o.status >= 300:
		return "3xx"
	case o.status >= 200:
		return "2xx"
	default:
		return "other"
	}
}
