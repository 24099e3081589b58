package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "GoLang", "golang"},
		{"trimmed", "  golang  ", "golang"},
		{"already normalized", "golang", "golang"},
		{"internal spaces kept", "machine learning", "machine learning"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTagName(tt.input))
		})
	}
}

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "dedupes case variants",
			input:    []string{"Go", "go", " GO "},
			expected: []string{"go"},
		},
		{
			name:     "preserves first-seen order",
			input:    []string{"b", "a", "b"},
			expected: []string{"b", "a"},
		},
		{
			name:     "drops blanks",
			input:    []string{"", "  ", "go"},
			expected: []string{"go"},
		},
		{
			name:     "nil input yields empty slice",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTagNames(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}
