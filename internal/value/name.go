// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package value

import "regexp"

// namePattern matches a first name of at least two letters followed by one or
// more surnames of 3 to 20 letters. Tokens are separated by a single
// whitespace character, optionally preceded by a comma.
var namePattern = regexp.MustCompile(
	`^[A-Za-zÀ-ú][A-Za-zÀ-ú]+(?:,?\s[A-Za-zÀ-ú][A-Za-zÀ-ú]{2,19})+$`,
)

// NameRule is the validation rule for a person's full name.
var NameRule = Rule{
	Field:          "name",
	Patterns:       []*regexp.Regexp{namePattern},
	EmptyMessage:   "Preencha seu nome e sobrenome.",
	InvalidMessage: "O nome e o sobrenome precisam ser válidos.",
}

// Name is a raw full name.
type Name string

// Validate checks the name against NameRule.
func (n Name) Validate() (string, error) {
	return NameRule.Check(string(n))
}
