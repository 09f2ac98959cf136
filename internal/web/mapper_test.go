// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signgate/signgate/internal/auth"
)

func TestResultMapper_Write(t *testing.T) {
	tests := []struct {
		name     string
		outcome  auth.Outcome
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps status and message",
			outcome:  auth.FailureMessage(http.StatusConflict, "Este e-mail já foi cadastrado."),
			wantCode: http.StatusConflict,
			wantBody: `{"message":"Este e-mail já foi cadastrado."}`,
		},
		{
			name: "success keeps status and payload",
			outcome: auth.Success(http.StatusCreated, auth.AuthenticationResponse{
				AccessToken: "a",
				ExpireIn:    60,
				User:        auth.User{Email: "bed@email.com"},
			}),
			wantCode: http.StatusCreated,
			wantBody: `{"accessToken":"a","refreshToken":"","expireIn":60,"user":{"email":"bed@email.com","userMetadata":{"name":""}}}`,
		},
		{
			name:     "zero outcome",
			outcome:  auth.Outcome{},
			wantCode: http.StatusBadGateway,
			wantBody: `{"message":"` + MessageUnavailable + `"}`,
		},
		{
			name:     "status out of range",
			outcome:  auth.FailureMessage(42, "odd"),
			wantCode: http.StatusBadGateway,
			wantBody: `{"message":"` + MessageUnavailable + `"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewResultMapper(nil).Write(context.Background(), rec, tt.outcome)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
