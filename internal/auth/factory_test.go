// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth_test

import (
	"net/http"

	"github.com/signgate/signgate/internal/auth"
	"github.com/signgate/signgate/internal/parameter"
)

const duplicateEmailMessage = "Este e-mail já foi cadastrado."

func validSignUp() parameter.SignUp {
	return parameter.NewSignUp("Gabriel Ramos", "bed@email.com", "secret123")
}

func validSignIn() parameter.SignIn {
	return parameter.NewSignIn("bed@email.com", "secret123")
}

func failureOutcome() auth.Outcome {
	return auth.FailureMessage(http.StatusBadRequest, duplicateEmailMessage)
}

func successPayload() auth.AuthenticationResponse {
	return auth.AuthenticationResponse{
		AccessToken:  "5CQcsREkB5xcqbY1L...",
		RefreshToken: "5CQcsREkB5xcqbY1L...",
		ExpireIn:     3600,
		User: auth.User{
			Email:        "bed@email.com",
			UserMetadata: auth.UserMetadata{Name: "Bed"},
		},
	}
}

func successOutcome() auth.Outcome {
	return auth.Success(http.StatusOK, successPayload())
}
