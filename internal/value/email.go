// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package value

import "regexp"

// emailPattern matches local@domain.tld with a two or three letter TLD.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,3}$`)

// EmailRule is the validation rule for e-mail addresses.
var EmailRule = Rule{
	Field:          "email",
	Patterns:       []*regexp.Regexp{emailPattern},
	EmptyMessage:   "Preencha seu e-mail.",
	InvalidMessage: "O e-mail precisa ser válido.",
}

// Email is a raw e-mail address.
type Email string

// Validate checks the address against EmailRule.
func (e Email) Validate() (string, error) {
	return EmailRule.Check(string(e))
}
