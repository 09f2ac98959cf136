// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth

import (
	"context"

	"github.com/signgate/signgate/internal/parameter"
)

//go:generate mockery --name=Backend --with-expecter --outpkg=mocks --output=mocks --filename=mock_backend.go

// Backend is the authentication provider the use cases delegate to.
//
// A returned Outcome carries the provider's own status and payload, including
// business failures such as a duplicate e-mail. A non-nil error means the call
// itself failed (network, timeout, malformed reply). Implementations own their
// timeouts and retries.
type Backend interface {
	// SignIn authenticates an existing account.
	SignIn(ctx context.Context, creds parameter.SignInCredentials) (Outcome, error)

	// SignUp creates a new account.
	SignUp(ctx context.Context, creds parameter.SignUpCredentials) (Outcome, error)
}
