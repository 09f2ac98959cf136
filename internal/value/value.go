// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package value provides the field validators used by sign-in and sign-up.
//
// Each validator wraps a raw string and evaluates it against a Rule. A Rule is
// plain data: the patterns a value must match plus the two messages surfaced to
// the user, one for an empty value and one for a value that does not match.
// The empty check always runs first, so an empty value never reports the
// pattern message.
package value

import (
	"errors"
	"fmt"
	"regexp"
)

// Value is a raw field value that can be evaluated against its rule.
//
// Validate returns the validated string, or a *ValidationError carrying the
// user-facing message. Evaluating the same Value twice yields the same result.
type Value interface {
	Validate() (string, error)
}

// ValidationError represents a field that failed its rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Rule describes how a single field is validated.
type Rule struct {
	// Field is the name reported in ValidationError.Field.
	Field string

	// Patterns must all match for the value to be valid.
	Patterns []*regexp.Regexp

	// EmptyMessage is surfaced when the value is empty.
	EmptyMessage string

	// InvalidMessage is surfaced when any pattern does not match.
	InvalidMessage string
}

// Check evaluates raw against the rule.
func (r Rule) Check(raw string) (string, error) {
	if raw == "" {
		return "", &ValidationError{Field: r.Field, Message: r.EmptyMessage}
	}
	for _, p := range r.Patterns {
		if !p.MatchString(raw) {
			return "", &ValidationError{Field: r.Field, Message: r.InvalidMessage}
		}
	}
	return raw, nil
}

// First evaluates values in order and returns the first failure.
// Values after the first failing one are not evaluated.
func First(values ...Value) error {
	for _, v := range values {
		if _, err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Message returns the user-facing message of a validation failure, or the
// error string for any other error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
