package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Reading List", "reading-list"},
		{"already slugged", "reading-list", "reading-list"},
		{"punctuation stripped", "C++ stuff!", "c-stuff"},
		{"accents folded", "Café Recipes", "cafe-recipes"},
		{"multiple spaces", "a   b", "a-b"},
		{"tabs and newlines", "a\t\nb", "a-b"},
		{"emoji dropped", "🔥 hot links", "hot-links"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollectionSlug(tt.input))
		})
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#3B82F6", true},
		{"#ffffff", true},
		{"#000000", true},
		{"3B82F6", false},
		{"#3B82F", false},
		{"#3B82F6A", false},
		{"#GGGGGG", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidColor(tt.input))
		})
	}
}

func TestDefaultCollectionColor_IsValid(t *testing.T) {
	assert.True(t, ValidColor(DefaultCollectionColor))
}
