// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majallahq/majalla/internal/platform/apperr"
	"github.com/majallahq/majalla/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Majalla", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestIsEmail checks the email predicate used by the probe and the rules.
*/
func TestIsEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "sara@example.com", true},
		{"valid_subdomain", "a.b@mail.example.co", true},
		{"missing_at", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"missing_domain_dot", "test@localhost", false},
		{"display_name_form", "Sara <sara@example.com>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.IsEmail(tt.email))
		})
	}
}

/*
TestIsPhone checks the loose international phone pattern.
*/
func TestIsPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		isValid bool
	}{
		{"international", "+966501234567", true},
		{"with_separators", "+1 (555) 123-4567", true},
		{"local", "0501234567", true},
		{"letters", "call-me-maybe", false},
		{"too_short", "123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.IsPhone(tt.phone))
		})
	}
}

/*
TestIsHTTPURL checks the absolute-URL predicate used for profile links.
*/
func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		isValid bool
	}{
		{"https", "https://linkedin.com/in/sara", true},
		{"http", "http://example.com", true},
		{"no_scheme", "linkedin.com/in/sara", false},
		{"ftp_scheme", "ftp://example.com", false},
		{"javascript_scheme", "javascript:alert(1)", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.IsHTTPURL(tt.url))
		})
	}
}

/*
TestValidator_Aggregation verifies that multiple failing rules accumulate
into one error with every field listed.
*/
func TestValidator_Aggregation(t *testing.T) {
	v := &validate.Validator{}
	v.Required("name", "")
	v.Email("email", "nope")
	v.Custom("consent", true, "required")

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, "name", ae.Details[0].Field)
	assert.Equal(t, "email", ae.Details[1].Field)
	assert.Equal(t, "consent", ae.Details[2].Field)
}
