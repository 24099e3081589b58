package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single token", "golang", `"golang"*`},
		{"multiple tokens", "golang concurrency", `"golang"* "concurrency"*`},
		{"short tokens dropped", "go to the docs", `"the"* "docs"*`},
		{"all tokens short", "go js", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"punctuation quoted", `node.js tips`, `"node.js"* "tips"*`},
		{"embedded quote escaped", `say "hi"`, `"say"* """hi"""*`},
		{"collapses runs of whitespace", "rust   async", `"rust"* "async"*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrefixQuery(tt.input))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"the", "docs"}, Tokens("go to the docs"))
	assert.Empty(t, Tokens("go js"))
	assert.Empty(t, Tokens("   "))
}

func TestLikeTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Reading", "reading"},
		{"trims", "  dev  ", "dev"},
		{"escapes percent", "100%", `100\%`},
		{"escapes underscore", "snake_case", `snake\_case`},
		{"escapes backslash", `a\b`, `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LikeTerm(tt.input))
		})
	}
}
