// Package store defines the persistence interface for the LinkShelf server.
package store

import (
	"context"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Every entity operation is scoped by user ID: implementations must make
// it impossible to read or mutate another user's rows. Multi-step
// mutations (bookmark create/update with tags, collection delete) are
// atomic within a single implementation-level transaction.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Bookmarks. Tag arguments carry normalized names; nil means "leave
	// tags untouched" on update while an empty slice clears them.
	CreateBookmark(ctx context.Context, b *domain.Bookmark, tags []string) error
	GetBookmark(ctx context.Context, userID, id string) (*domain.Bookmark, error)
	GetBookmarkByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error)
	ListBookmarks(ctx context.Context, userID string, q ListQuery) (*BookmarkPage, error)
	UpdateBookmark(ctx context.Context, b *domain.Bookmark, tags []string) error
	DeleteBookmark(ctx context.Context, userID, id string) error
	// RecordVisit atomically increments the visit counter and stamps the
	// visit time, returning the updated bookmark.
	RecordVisit(ctx context.Context, userID, id string) (*domain.Bookmark, error)

	// Collections
	CreateCollection(ctx context.Context, c *domain.Collection) error
	GetCollection(ctx context.Context, userID, id string) (*domain.Collection, error)
	// ListCollections returns the user's collections ordered by name,
	// with bookmark counts populated.
	ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error)
	UpdateCollection(ctx context.Context, c *domain.Collection) error
	// DeleteCollection removes the collection and clears the reference
	// from its bookmarks; the bookmarks themselves survive.
	DeleteCollection(ctx context.Context, userID, id string) error

	// Tags. ListUsedTags returns only tags attached to at least one
	// bookmark, most used first, name as tiebreak.
	ListUsedTags(ctx context.Context, userID string) ([]*domain.Tag, error)
}
