// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package parameter aggregates field values into the inputs of the sign-in and
// sign-up use cases.
//
// Constructors only wrap raw values. Validate evaluates the fields in
// declaration order and stops at the first failure, so a request always
// surfaces a single actionable message.
package parameter

import (
	"github.com/signgate/signgate/internal/value"
)

// SignInCredentials are the validated values sent to the backend on sign-in.
type SignInCredentials struct {
	Email    string
	Password string
}

// SignUpCredentials are the validated values sent to the backend on sign-up.
type SignUpCredentials struct {
	Name     string
	Email    string
	Password string
}

// SignIn holds the fields of a sign-in request.
type SignIn struct {
	Email    value.Email
	Password value.Password
}

// NewSignIn wraps raw sign-in fields.
func NewSignIn(email, password string) SignIn {
	return SignIn{Email: value.Email(email), Password: value.Password(password)}
}

// Validate returns the first failing field, checking email then password.
func (p SignIn) Validate() error {
	return value.First(p.Email, p.Password)
}

// Credentials validates the parameter and returns the backend credentials.
func (p SignIn) Credentials() (SignInCredentials, error) {
	if err := p.Validate(); err != nil {
		return SignInCredentials{}, err
	}
	return SignInCredentials{Email: string(p.Email), Password: string(p.Password)}, nil
}

// SignUp holds the fields of a sign-up request.
type SignUp struct {
	Name     value.Name
	Email    value.Email
	Password value.Password
}

// NewSignUp wraps raw sign-up fields.
func NewSignUp(name, email, password string) SignUp {
	return SignUp{
		Name:     value.Name(name),
		Email:    value.Email(email),
		Password: value.Password(password),
	}
}

// Validate returns the first failing field, checking name, email, then password.
func (p SignUp) Validate() error {
	return value.First(p.Name, p.Email, p.Password)
}

// Credentials validates the parameter and returns the backend credentials.
func (p SignUp) Credentials() (SignUpCredentials, error) {
	if err := p.Validate(); err != nil {
		return SignUpCredentials{}, err
	}
	return SignUpCredentials{
		Name:     string(p.Name),
		Email:    string(p.Email),
		Password: string(p.Password),
	}, nil
}
