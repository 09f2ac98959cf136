// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package web

import (
	"github.com/signgate/signgate/internal/parameter"
)

// SignInView is the JSON body accepted by POST /sign/in.
type SignInView struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Parameter converts the view into use case input.
func (v SignInView) Parameter() parameter.SignIn {
	return parameter.NewSignIn(v.Email, v.Password)
}

// SignUpView is the JSON body accepted by POST /sign/up.
type SignUpView struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Parameter converts the view into use case input.
func (v SignUpView) Parameter() parameter.SignUp {
	return parameter.NewSignUp(v.Name, v.Email, v.Password)
}
