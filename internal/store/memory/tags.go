package memory

import (
	"context"
	"sort"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
)

// ListUsedTags returns tags attached to at least one bookmark, most
// used first, name as tiebreak.
func (s *Store) ListUsedTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, b := range s.bookmarks {
		if b.UserID != userID {
			continue
		}
		for _, name := range b.Tags {
			counts[name]++
		}
	}

	out := make([]*domain.Tag, 0, len(counts))
	for name, count := range counts {
		tag, ok := s.tags[tagKey{userID: userID, name: name}]
		if !ok {
			continue
		}
		clone := *tag
		clone.BookmarkCount = count
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookmarkCount != out[j].BookmarkCount {
			return out[i].BookmarkCount > out[j].BookmarkCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
