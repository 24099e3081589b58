package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_Name(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"display name wins", User{Email: "a@example.com", DisplayName: "Alice"}, "Alice"},
		{"email fallback", User{Email: "a@example.com"}, "a@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.Name())
		})
	}
}

func TestUser_Touch(t *testing.T) {
	u := User{UpdatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}

	before := time.Now()
	u.Touch()

	assert.False(t, u.UpdatedAt.Before(before), "Touch should move UpdatedAt forward")
}
