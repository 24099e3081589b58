// Package memory provides an in-memory store implementation. It backs
// the "memory" store driver used for development and tests; nothing
// survives a restart. Semantics mirror the sqlite store, including the
// search channels, so the two drivers are interchangeable behind the
// store interface.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// Store holds all state behind a single RWMutex. Entity maps are keyed
// by ID; the tag registry is keyed per user so tag IDs stay stable when
// a name is reused after its last bookmark disappears.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*domain.User
	bookmarks   map[string]*domain.Bookmark
	collections map[string]*domain.Collection
	tags        map[tagKey]*domain.Tag
}

type tagKey struct {
	userID string
	name   string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		users:       make(map[string]*domain.User),
		bookmarks:   make(map[string]*domain.Bookmark),
		collections: make(map[string]*domain.Collection),
		tags:        make(map[tagKey]*domain.Tag),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Clone helpers keep callers from mutating shared state through
// returned pointers.

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneCollection(c *domain.Collection) *domain.Collection {
	cc := *c
	return &cc
}

func (s *Store) cloneBookmark(b *domain.Bookmark) *domain.Bookmark {
	c := *b
	c.Tags = append([]string{}, b.Tags...)
	if b.LastVisitedAt != nil {
		t := *b.LastVisitedAt
		c.LastVisitedAt = &t
	}
	if b.CollectionID != "" {
		if coll, ok := s.collections[b.CollectionID]; ok {
			c.CollectionName = coll.Name
		} else {
			c.CollectionName = ""
		}
	}
	return &c
}

func now() time.Time { return time.Now().UTC() }

var _ store.Store = (*Store)(nil)
