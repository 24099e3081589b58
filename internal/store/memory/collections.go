package memory

import (
	"context"
	"sort"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

func (s *Store) CreateCollection(ctx context.Context, c *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[c.ID]; ok {
		return store.ErrAlreadyExists
	}
	s.collections[c.ID] = cloneCollection(c)
	return nil
}

func (s *Store) GetCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionID]
	if !ok || c.UserID != userID {
		return nil, store.ErrNotFound
	}
	return cloneCollection(c), nil
}

// ListCollections returns the user's collections ordered by name with
// bookmark counts populated.
func (s *Store) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, b := range s.bookmarks {
		if b.UserID == userID && b.CollectionID != "" {
			counts[b.CollectionID]++
		}
	}

	out := make([]*domain.Collection, 0)
	for _, c := range s.collections {
		if c.UserID != userID {
			continue
		}
		clone := cloneCollection(c)
		clone.BookmarkCount = counts[c.ID]
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[c.ID]
	if !ok || existing.UserID != c.UserID {
		return store.ErrNotFound
	}
	s.collections[c.ID] = cloneCollection(c)
	return nil
}

// DeleteCollection removes the collection and detaches its bookmarks.
func (s *Store) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionID]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}

	for _, b := range s.bookmarks {
		if b.CollectionID == collectionID {
			b.CollectionID = ""
		}
	}
	delete(s.collections, collectionID)
	return nil
}
