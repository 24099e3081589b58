package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/linkshelfapp/linkshelf-server/internal/errors"
	"github.com/linkshelfapp/linkshelf-server/internal/validation"
)

type TestRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Name     string `json:"name" validate:"omitempty,min=2"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return fields
}

func TestValidator_FriendlyMessages(t *testing.T) {
	v := validation.New()

	//nolint:govet // fieldalignment: test readability over struct packing
	tests := []struct {
		name      string
		req       TestRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "invalid email",
			req:       TestRequest{Email: "not-an-email", Password: "password123"},
			wantField: "email",
			wantMsg:   "Valid email is required",
		},
		{
			name:      "missing email",
			req:       TestRequest{Password: "password123"},
			wantField: "email",
			wantMsg:   "Valid email is required",
		},
		{
			name:      "password too short",
			req:       TestRequest{Email: "test@example.com", Password: "short"},
			wantField: "password",
			wantMsg:   "Password must be at least 8 characters",
		},
		{
			name:      "name too short",
			req:       TestRequest{Email: "test@example.com", Password: "password123", Name: "x"},
			wantField: "name",
			wantMsg:   "Name must be at least 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			fields := fieldErrors(t, err)
			assert.Equal(t, tt.wantMsg, fields[tt.wantField])
		})
	}
}

func TestValidator_URLMessage(t *testing.T) {
	v := validation.New()

	type scrapeRequest struct {
		URL string `json:"url" validate:"required,url"`
	}

	err := v.Validate(scrapeRequest{URL: "not a url"})
	require.Error(t, err)
	fields := fieldErrors(t, err)
	assert.Equal(t, "Valid URL is required", fields["url"])
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Email:    "",
		Password: "password123",
	}

	err := v.Validate(req)
	require.Error(t, err)

	fields := fieldErrors(t, err)
	_, hasJSONName := fields["email"]
	_, hasGoName := fields["Email"]
	assert.True(t, hasJSONName)
	assert.False(t, hasGoName)
}
