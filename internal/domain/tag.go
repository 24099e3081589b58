package domain

import (
	"strings"
	"time"
)

// Tag represents a per-user label for bookmarks. Tags are scoped to their
// owner: two users each tagging "golang" get independent tags.
// Name is the canonical form produced by NormalizeTagName.
type Tag struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	// BookmarkCount is denormalized on list reads; tags with zero
	// bookmarks are not listed.
	BookmarkCount int `json:"bookmark_count"`

	CreatedAt time.Time `json:"created_at"`
}

// NormalizeTagName converts user input to the canonical tag form:
// trimmed and lowercased. Returns "" for blank input.
func NormalizeTagName(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NormalizeTagNames normalizes a list of tag names, dropping blanks and
// duplicates while preserving first-seen order. Never returns nil.
func NormalizeTagNames(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		name := NormalizeTagName(in)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
