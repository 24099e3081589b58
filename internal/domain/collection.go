package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultCollectionColor is assigned when a collection is created without one.
const DefaultCollectionColor = "#3B82F6"

var (
	// Matches a 6-digit hex color with leading #.
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	// Matches whitespace runs (for replacement with hyphens).
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Matches characters not allowed in a slug.
	nonSlugRe = regexp.MustCompile(`[^a-z0-9-]`)
)

// Collection represents a named grouping of bookmarks owned by one user.
// Collections are organizational, not access boundaries: deleting one
// leaves its bookmarks in place, uncollected.
type Collection struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`

	// BookmarkCount is denormalized on list reads.
	BookmarkCount int `json:"bookmark_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (c *Collection) Touch() {
	c.UpdatedAt = time.Now()
}

// ValidColor reports whether s is a 6-digit hex color like "#3B82F6".
func ValidColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// CollectionSlug derives the URL slug from a collection name.
// Accented characters are decomposed first so "Café Recipes" keeps its
// ASCII skeleton instead of losing the word entirely.
//
//	"Web Development"  → "web-development"
//	"C++ stuff!"       → "c-stuff"
//	"Café Recipes"     → "cafe-recipes"
func CollectionSlug(name string) string {
	s := norm.NFKD.String(name)

	// Drop non-ASCII (combining marks from the decomposition above).
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	return s
}
