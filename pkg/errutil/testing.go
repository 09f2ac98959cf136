// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package errutil

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorCode asserts that err carries code. The code compared is the one
// Code reports, which is the innermost code of a wrapped chain.
func AssertErrorCode(t testing.TB, err error, code string) {
	t.Helper()
	require.Error(t, err)
	_, ok := oops.AsOops(err)
	require.Truef(t, ok, "expected an oops error, got %T: %v", err, err)
	assert.Equalf(t, code, Code(err), "error: %v", err)
}

// AssertErrorContext asserts that err carries value under key anywhere in its
// oops context.
func AssertErrorContext(t testing.TB, err error, key string, value any) {
	t.Helper()
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.Truef(t, ok, "expected an oops error, got %T: %v", err, err)
	got, found := oopsErr.Context()[key]
	require.Truef(t, found, "context key %q missing from %v", key, oopsErr.Context())
	assert.Equal(t, value, got)
}
