package memory

import (
	"context"
	"sort"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/id"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// CreateBookmark stores a bookmark and registers its tags. Returns
// store.ErrAlreadyExists when the user already saved this URL.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookmarks {
		if existing.UserID == b.UserID && existing.URL == b.URL {
			return store.ErrAlreadyExists
		}
	}

	stored := *b
	stored.Tags = s.registerTags(b.UserID, tags)
	s.bookmarks[b.ID] = &stored

	if tags == nil {
		b.Tags = []string{}
	} else {
		b.Tags = tags
	}
	return nil
}

func (s *Store) GetBookmark(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[bookmarkID]
	if !ok || b.UserID != userID {
		return nil, store.ErrNotFound
	}
	return s.cloneBookmark(b), nil
}

func (s *Store) GetBookmarkByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookmarks {
		if b.UserID == userID && b.URL == url {
			return s.cloneBookmark(b), nil
		}
	}
	return nil, store.ErrNotFound
}

// ListBookmarks filters, sorts, and paginates the user's bookmarks. As
// in the sqlite store, the page total is the user's overall bookmark
// count rather than the filtered match count.
func (s *Store) ListBookmarks(ctx context.Context, userID string, q store.ListQuery) (*store.BookmarkPage, error) {
	q.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	matched := make([]*domain.Bookmark, 0)
	f := newListFilter(q)
	for _, b := range s.bookmarks {
		if b.UserID != userID {
			continue
		}
		total++
		if f.matches(s, b) {
			matched = append(matched, b)
		}
	}

	f.sort(matched)

	page := &store.BookmarkPage{
		Bookmarks: []*domain.Bookmark{},
		Total:     total,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	for i := q.Offset; i < len(matched) && i < q.Offset+q.Limit; i++ {
		page.Bookmarks = append(page.Bookmarks, s.cloneBookmark(matched[i]))
	}
	return page, nil
}

// UpdateBookmark replaces the stored bookmark. A nil tag slice keeps the
// existing tag set; a non-nil slice replaces it.
func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookmarks[b.ID]
	if !ok || existing.UserID != b.UserID {
		return store.ErrNotFound
	}

	stored := *b
	if tags == nil {
		stored.Tags = existing.Tags
	} else {
		stored.Tags = s.registerTags(b.UserID, tags)
	}
	s.bookmarks[b.ID] = &stored
	return nil
}

func (s *Store) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[bookmarkID]
	if !ok || b.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.bookmarks, bookmarkID)
	return nil
}

// RecordVisit increments the visit counter and stamps the visit time.
func (s *Store) RecordVisit(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[bookmarkID]
	if !ok || b.UserID != userID {
		return nil, store.ErrNotFound
	}

	b.VisitCount++
	ts := now()
	b.LastVisitedAt = &ts
	return s.cloneBookmark(b), nil
}

// registerTags ensures a registry entry per tag name and returns the
// names sorted, matching how the sqlite store reads tags back.
func (s *Store) registerTags(userID string, tags []string) []string {
	sorted := append([]string{}, tags...)
	sort.Strings(sorted)
	for _, name := range sorted {
		key := tagKey{userID: userID, name: name}
		if _, ok := s.tags[key]; !ok {
			s.tags[key] = &domain.Tag{
				ID:        id.MustGenerate("tag"),
				UserID:    userID,
				Name:      name,
				CreatedAt: now(),
			}
		}
	}
	return sorted
}
