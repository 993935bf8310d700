package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parcels/internal/core/domain"
)

func TestCredentialsShow(t *testing.T) {
	creds := &MockCredentialsService{Stored: map[string]domain.CarrierCredentials{
		"fedex": {APIKey: "l7abcdef1234567890", SecretKey: ""},
	}}

	for _, args := range [][]string{{"credentials"}, {"credentials", "show"}} {
		out, err := runCommand(t, &Services{Credentials: creds}, "", args...)

		require.NoError(t, err)
		assert.Contains(t, out, "[fedex]")
		assert.Contains(t, out, "l7ab...7890")
		assert.Contains(t, out, "(not set)")
		assert.NotContains(t, out, "l7abcdef1234567890")
	}
}

func TestCredentialsSet_Flags(t *testing.T) {
	creds := &MockCredentialsService{}

	out, err := runCommand(t, &Services{Credentials: creds}, "",
		"credentials", "set", "FedEx", "--api-key", "key", "--secret-key", "secret")

	require.NoError(t, err)
	assert.Equal(t, domain.CarrierCredentials{APIKey: "key", SecretKey: "secret"}, creds.Stored["fedex"])
	assert.Contains(t, out, "Credentials for fedex saved.")
}

func TestCredentialsSet_Prompts(t *testing.T) {
	creds := &MockCredentialsService{}

	out, err := runCommand(t, &Services{Credentials: creds}, "my-key\nmy-secret\n", "credentials", "set", "fedex")

	require.NoError(t, err)
	assert.Contains(t, out, "API key: ")
	assert.Contains(t, out, "Secret key: ")
	assert.Equal(t, domain.CarrierCredentials{APIKey: "my-key", SecretKey: "my-secret"}, creds.Stored["fedex"])
}

func TestCredentialsSet_Incomplete(t *testing.T) {
	creds := &MockCredentialsService{}

	_, err := runCommand(t, &Services{Credentials: creds}, "\n", "credentials", "set", "fedex", "--api-key", "key")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, creds.Stored)
}

func TestCredentialsSet_CarrierWithoutCredentials(t *testing.T) {
	_, err := runCommand(t, &Services{Credentials: &MockCredentialsService{}}, "", "credentials", "set", "usps")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCredentialsSet_SaveError(t *testing.T) {
	creds := &MockCredentialsService{SetErr: errors.New("read-only file system")}

	_, err := runCommand(t, &Services{Credentials: creds}, "",
		"credentials", "set", "fedex", "--api-key", "k", "--secret-key", "s")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "(not set)"},
		{input: "abc123", expected: "****"},
		{input: "12345678", expected: "****"},
		{input: "sk-1234567890abcdef", expected: "sk-1...cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.input))
		})
	}
}
