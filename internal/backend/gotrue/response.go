// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package gotrue

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/samber/oops"

	"github.com/signgate/signgate/internal/auth"
)

// Localized messages for failures reported by the API.
const (
	MessageEmailTaken         = "Este e-mail já foi cadastrado."
	MessageInvalidCredentials = "E-mail ou senha inválidos."
	MessageEmailNotConfirmed  = "Confirme seu e-mail antes de entrar."
	MessageWeakPassword       = "A senha informada é muito fraca."
	MessageRateLimited        = "Muitas tentativas. Tente novamente mais tarde."
	MessageSignUpDisabled     = "O cadastro está temporariamente desativado."
	MessageGenericFailure     = "Não foi possível concluir a autenticação."
)

// Messages maps API error codes and messages to user-facing text.
// Keys are compared case-insensitively.
type Messages map[string]string

// DefaultMessages returns the translations for the error codes the API emits.
func DefaultMessages() Messages {
	return Messages{
		"user_already_exists":        MessageEmailTaken,
		"email_exists":               MessageEmailTaken,
		"user already registered":    MessageEmailTaken,
		"invalid_credentials":        MessageInvalidCredentials,
		"invalid_grant":              MessageInvalidCredentials,
		"invalid login credentials":  MessageInvalidCredentials,
		"email_not_confirmed":        MessageEmailNotConfirmed,
		"email not confirmed":        MessageEmailNotConfirmed,
		"weak_password":              MessageWeakPassword,
		"over_request_rate_limit":    MessageRateLimited,
		"over_email_send_rate_limit": MessageRateLimited,
		"signup_disabled":            MessageSignUpDisabled,
	}
}

// Translate returns the message for the first key that has a translation.
func (m Messages) Translate(keys ...string) (string, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if msg, ok := m[strings.ToLower(strings.TrimSpace(k))]; ok {
			return msg, true
		}
	}
	return "", false
}

// sessionResponse is the body returned by the token and signup endpoints.
// When e-mail confirmation is enabled, signup returns the user object alone.
type sessionResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in"`
	User         *userResponse `json:"user"`

	userResponse
}

type userResponse struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

// errorResponse covers both error shapes the API has used.
type errorResponse struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// decode turns a non-retryable response into an Outcome.
func (c *Client) decode(ctx context.Context, status int, body []byte) (auth.Outcome, error) {
	if status >= 200 && status < 300 {
		var session sessionResponse
		if err := json.Unmarshal(body, &session); err != nil {
			return auth.Outcome{}, oops.Code(CodeBadResponse).
				With("status", status).
				Wrap(err)
		}
		user := session.userResponse
		if session.User != nil {
			user = *session.User
		}
		if user.Email == "" {
			return auth.Outcome{}, oops.Code(CodeBadResponse).
				With("status", status).
				Errorf("authentication backend response has no user")
		}
		return auth.Success(status, auth.AuthenticationResponse{
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
			ExpireIn:     session.ExpiresIn,
			User: auth.User{
				Email:        user.Email,
				UserMetadata: auth.UserMetadata{Name: user.UserMetadata.Name},
			},
		}), nil
	}

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		c.logger.DebugContext(ctx, "authentication backend error body is not JSON",
			"status", status,
		)
	}

	message, ok := c.messages.Translate(
		apiErr.ErrorCode,
		apiErr.Error,
		apiErr.Msg,
		apiErr.Message,
		apiErr.ErrorDescription,
	)
	if !ok {
		message = MessageGenericFailure
		c.logger.InfoContext(ctx, "untranslated authentication backend failure",
			"status", status,
			"error_code", apiErr.ErrorCode,
			"backend_message", firstNonEmpty(apiErr.Msg, apiErr.Message, apiErr.ErrorDescription),
		)
	}
	return auth.FailureMessage(status, message), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
