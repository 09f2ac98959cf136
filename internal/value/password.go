// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package value

import "regexp"

// Password constraints.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// RE2 has no lookahead, so the letter and digit requirements are separate
// patterns that must all match.
var passwordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\S{8,64}$`),
	regexp.MustCompile(`[A-Za-z]`),
	regexp.MustCompile(`[0-9]`),
}

// PasswordRule is the validation rule for passwords.
var PasswordRule = Rule{
	Field:          "password",
	Patterns:       passwordPatterns,
	EmptyMessage:   "Preencha sua senha.",
	InvalidMessage: "A senha precisa ter entre 8 e 64 caracteres, com letras e números.",
}

// Password is a raw password. Its String method never reveals the value.
type Password string

// Validate checks the password against PasswordRule.
func (p Password) Validate() (string, error) {
	return PasswordRule.Check(string(p))
}

// String implements fmt.Stringer so passwords are redacted in logs.
func (p Password) String() string {
	return "[REDACTED]"
}
