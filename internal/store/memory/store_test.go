package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/id"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

func makeUser(t *testing.T, s *Store, email string) string {
	t.Helper()
	u := &domain.User{
		ID:        id.MustGenerate("user"),
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u.ID
}

func makeBookmark(userID, url, title string) *domain.Bookmark {
	now := time.Now()
	return &domain.Bookmark{
		ID:        id.MustGenerate("bm"),
		UserID:    userID,
		URL:       url,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUsers(t *testing.T) {
	s := New()
	ctx := context.Background()

	userID := makeUser(t, s, "mem@example.com")

	u, err := s.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Email != "mem@example.com" {
		t.Errorf("Email: got %q", u.Email)
	}

	if _, err := s.GetUserByEmail(ctx, "mem@example.com"); err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	dup := &domain.User{ID: id.MustGenerate("user"), Email: "mem@example.com"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	u.DisplayName = "Mem"
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, _ := s.GetUser(ctx, userID)
	if got.DisplayName != "Mem" {
		t.Errorf("DisplayName: got %q", got.DisplayName)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	userID := makeUser(t, s, "bm@example.com")

	b := makeBookmark(userID, "https://go.dev", "Go")
	if err := s.CreateBookmark(ctx, b, []string{"lang", "golang"}); err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}

	if err := s.CreateBookmark(ctx, makeBookmark(userID, "https://go.dev", "Dup"), nil); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := s.GetBookmark(ctx, userID, b.ID)
	if err != nil {
		t.Fatalf("GetBookmark: %v", err)
	}
	if want := []string{"golang", "lang"}; !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("Tags: got %v, want %v", got.Tags, want)
	}

	// Nil tags keep the set, empty clears it.
	b.Title = "Go site"
	if err := s.UpdateBookmark(ctx, b, nil); err != nil {
		t.Fatalf("UpdateBookmark: %v", err)
	}
	got, _ = s.GetBookmark(ctx, userID, b.ID)
	if len(got.Tags) != 2 || got.Title != "Go site" {
		t.Errorf("after nil update: tags=%v title=%q", got.Tags, got.Title)
	}
	if err := s.UpdateBookmark(ctx, b, []string{}); err != nil {
		t.Fatalf("UpdateBookmark: %v", err)
	}
	got, _ = s.GetBookmark(ctx, userID, b.ID)
	if len(got.Tags) != 0 {
		t.Errorf("after clear: tags=%v", got.Tags)
	}

	visited, err := s.RecordVisit(ctx, userID, b.ID)
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if visited.VisitCount != 1 || visited.LastVisitedAt == nil {
		t.Errorf("visit: count=%d last=%v", visited.VisitCount, visited.LastVisitedAt)
	}

	if err := s.DeleteBookmark(ctx, userID, b.ID); err != nil {
		t.Fatalf("DeleteBookmark: %v", err)
	}
	if _, err := s.GetBookmark(ctx, userID, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookmarkOwnership(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := makeUser(t, s, "alice@example.com")
	bob := makeUser(t, s, "bob@example.com")

	b := makeBookmark(alice, "https://private.example", "Private")
	if err := s.CreateBookmark(ctx, b, nil); err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}

	if _, err := s.GetBookmark(ctx, bob, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteBookmark(ctx, bob, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.RecordVisit(ctx, bob, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("visit: expected ErrNotFound, got %v", err)
	}
}

func seedList(t *testing.T, s *Store) (userID string, goBM, rustBM, cookBM *domain.Bookmark) {
	t.Helper()
	ctx := context.Background()

	userID = makeUser(t, s, "list@example.com")

	coll := &domain.Collection{
		ID:     "col-dev",
		UserID: userID,
		Name:   "Development",
		Slug:   "development",
		Color:  domain.DefaultCollectionColor,
	}
	if err := s.CreateCollection(ctx, coll); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	goBM = makeBookmark(userID, "https://go.dev", "Golang Concurrency Patterns")
	goBM.CollectionID = coll.ID
	goBM.CreatedAt = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	if err := s.CreateBookmark(ctx, goBM, []string{"golang"}); err != nil {
		t.Fatalf("create go: %v", err)
	}

	rustBM = makeBookmark(userID, "https://rust-lang.org", "Rust Book")
	rustBM.CreatedAt = time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)
	if err := s.CreateBookmark(ctx, rustBM, []string{"rust", "systems"}); err != nil {
		t.Fatalf("create rust: %v", err)
	}

	cookBM = makeBookmark(userID, "https://cooking.example", "Weeknight Pasta Recipes")
	cookBM.CreatedAt = time.Date(2025, time.May, 20, 12, 0, 0, 0, time.UTC)
	if err := s.CreateBookmark(ctx, cookBM, []string{"cooking"}); err != nil {
		t.Fatalf("create cooking: %v", err)
	}
	return
}

func ids(page *store.BookmarkPage) []string {
	out := make([]string, 0, len(page.Bookmarks))
	for _, b := range page.Bookmarks {
		out = append(out, b.ID)
	}
	return out
}

func TestListBookmarks(t *testing.T) {
	s := New()
	userID, goBM, rustBM, cookBM := seedList(t, s)
	ctx := context.Background()

	page, err := s.ListBookmarks(ctx, userID, store.ListQuery{})
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if want := []string{cookBM.ID, rustBM.ID, goBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("default order: got %v, want %v", ids(page), want)
	}
	if page.Bookmarks[2].CollectionName != "Development" {
		t.Errorf("CollectionName: got %q", page.Bookmarks[2].CollectionName)
	}

	// Text search, prefix matching.
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Search: "concurr"})
	if want := []string{goBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("text search: got %v, want %v", ids(page), want)
	}
	if page.Total != 3 {
		t.Errorf("Total stays unfiltered: got %d", page.Total)
	}

	// Collection name, tag name, and month channels.
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Search: "development"})
	if want := []string{goBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("collection channel: got %v", ids(page))
	}
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Search: "systems"})
	if want := []string{rustBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("tag channel: got %v", ids(page))
	}
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Search: "april"})
	if want := []string{rustBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("month channel: got %v", ids(page))
	}

	// Short tokens skip filtering entirely.
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Search: "go js"})
	if len(page.Bookmarks) != 3 {
		t.Errorf("short tokens: got %v", ids(page))
	}

	// Structural filters.
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Tags: []string{"rust", "golang"}})
	if len(page.Bookmarks) != 2 {
		t.Errorf("tag filter: got %v", ids(page))
	}
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{CollectionID: "col-dev"})
	if want := []string{goBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("collection filter: got %v", ids(page))
	}

	// Sorts and pagination.
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Sort: store.SortAlphaDesc})
	if want := []string{cookBM.ID, rustBM.ID, goBM.ID}; !reflect.DeepEqual(ids(page), want) {
		t.Errorf("alpha-desc: got %v", ids(page))
	}
	page, _ = s.ListBookmarks(ctx, userID, store.ListQuery{Limit: 2, Offset: 2})
	if len(page.Bookmarks) != 1 || page.Offset != 2 {
		t.Errorf("pagination: got %v offset=%d", ids(page), page.Offset)
	}
}

func TestCollections(t *testing.T) {
	s := New()
	ctx := context.Background()

	userID, goBM, _, _ := seedList(t, s)

	colls, err := s.ListCollections(ctx, userID)
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(colls) != 1 || colls[0].BookmarkCount != 1 {
		t.Fatalf("got %+v", colls)
	}

	c := colls[0]
	c.Name = "Dev Stuff"
	if err := s.UpdateCollection(ctx, c); err != nil {
		t.Fatalf("UpdateCollection: %v", err)
	}
	got, _ := s.GetCollection(ctx, userID, c.ID)
	if got.Name != "Dev Stuff" {
		t.Errorf("Name: got %q", got.Name)
	}

	if err := s.DeleteCollection(ctx, userID, c.ID); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	b, _ := s.GetBookmark(ctx, userID, goBM.ID)
	if b.CollectionID != "" || b.CollectionName != "" {
		t.Errorf("bookmark not detached: %q/%q", b.CollectionID, b.CollectionName)
	}
	if err := s.DeleteCollection(ctx, userID, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsedTags(t *testing.T) {
	s := New()
	ctx := context.Background()

	userID, _, rustBM, _ := seedList(t, s)

	tags, err := s.ListUsedTags(ctx, userID)
	if err != nil {
		t.Fatalf("ListUsedTags: %v", err)
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	// All counts are 1, so names alphabetical.
	if want := []string{"cooking", "golang", "rust", "systems"}; !reflect.DeepEqual(names, want) {
		t.Errorf("tags: got %v, want %v", names, want)
	}

	// Dropping a bookmark hides its now-orphaned tags.
	if err := s.DeleteBookmark(ctx, userID, rustBM.ID); err != nil {
		t.Fatalf("DeleteBookmark: %v", err)
	}
	tags, _ = s.ListUsedTags(ctx, userID)
	if len(tags) != 2 {
		t.Errorf("after delete: got %d tags", len(tags))
	}
}
