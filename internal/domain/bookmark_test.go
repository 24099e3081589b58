package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostname(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain host", "https://example.com/page", "example.com"},
		{"www stripped", "https://www.example.com", "example.com"},
		{"port dropped", "http://localhost:3000/x", "localhost"},
		{"subdomain kept", "https://blog.example.com", "blog.example.com"},
		{"not a url", "not a url", "not a url"},
		{"scheme only", "https://", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Hostname(tt.input))
		})
	}
}
