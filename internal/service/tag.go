package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// TagService exposes the user's tag vocabulary. Tags are created and
// deleted implicitly through bookmark writes, so listing is the only
// direct operation.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// List returns tags attached to at least one bookmark, most used
// first, name as tiebreak.
func (s *TagService) List(ctx context.Context, userID string) ([]*domain.Tag, error) {
	tags, err := s.store.ListUsedTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
