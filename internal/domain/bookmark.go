// Package domain defines the core entities of the bookmark manager.
package domain

import (
	"net/url"
	"strings"
	"time"
)

// Bookmark represents a saved URL with its metadata and organization.
// A bookmark belongs to exactly one user, optionally sits in one
// collection, and carries any number of tags.
type Bookmark struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	FaviconURL  string `json:"favicon_url,omitempty"`

	// CollectionID is empty when the bookmark is uncollected. Deleting the
	// collection clears this field rather than deleting the bookmark.
	CollectionID   string `json:"collection_id,omitempty"`
	CollectionName string `json:"collection_name,omitempty"` // Denormalized on reads

	// Tags holds the normalized tag names, never nil on reads.
	Tags []string `json:"tags"`

	VisitCount    int        `json:"visit_count"`
	LastVisitedAt *time.Time `json:"last_visited_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (b *Bookmark) Touch() {
	b.UpdatedAt = time.Now()
}

// Hostname extracts the host from a URL string, minus a leading "www.".
// Returns the input unchanged when it does not parse as a URL.
// Used as the fallback title when page metadata cannot be fetched.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
