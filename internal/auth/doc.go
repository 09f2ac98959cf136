// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package auth orchestrates sign-in and sign-up.
//
// # Outcome
//
// Every attempt ends in exactly one Outcome, a tagged union holding either a
// MessageResponse (failure) or an AuthenticationResponse (success) plus a
// status code. Outcomes are built with Failure, Success or ValidationFailure;
// the zero value holds neither variant.
//
// # Use Cases
//
//   - SignInUseCase - validates e-mail and password, then calls Backend.SignIn
//   - SignUpUseCase - validates name, e-mail and password, then calls Backend.SignUp
//
// Invalid input yields a 400 Outcome with the first failing field's message and
// the backend is never called. For valid input the backend is called exactly
// once and its Outcome is returned unchanged. An error is returned only when
// the backend call itself fails or the context ends during the call.
//
// Use cases are created with New*UseCase constructors that validate
// dependencies.
package auth
