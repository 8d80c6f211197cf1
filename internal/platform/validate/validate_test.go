// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mdrss/internal/platform/apperr"
	"github.com/taibuivan/mdrss/internal/platform/validate"
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
		{"valid_string", "DATABASE_URL", "postgres://localhost/mdrss", false},
		{"empty_string", "DATABASE_URL", "", true},
		{"whitespace_only", "DATABASE_URL", "   ", true},
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
TestValidator_URL checks that only absolute http(s) URLs pass.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://api.mangadex.org", true},
		{"http_with_port", "http://localhost:8080", true},
		{"relative", "/feed", false},
		{"other_scheme", "ftp://example.com", false},
		{"garbage", "::not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("url", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chaining verifies that every failed rule is collected in order.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Range("FETCH_LIMIT", 500, 1, 100).
		OneOf("ENVIRONMENT", "qa", "development", "production").
		Custom("FETCH_INTERVAL", false, "never reported")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "FETCH_LIMIT", ae.Details[0].Field)
	assert.Equal(t, "ENVIRONMENT", ae.Details[1].Field)
}
