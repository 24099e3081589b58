package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	domainerrors "github.com/linkshelfapp/linkshelf-server/internal/errors"
	"github.com/linkshelfapp/linkshelf-server/internal/id"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
	"github.com/linkshelfapp/linkshelf-server/internal/validation"
)

// CollectionService handles collection CRUD.
type CollectionService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CollectionService {
	return &CollectionService{store: store, validator: validator, logger: logger}
}

// CreateCollectionRequest contains new collection data. Color defaults
// when omitted.
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateCollectionRequest carries a partial update; nil fields keep
// their current value.
type UpdateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Create stores a new collection with a slug derived from its name.
func (s *CollectionService) Create(ctx context.Context, userID string, req CreateCollectionRequest) (*domain.Collection, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = domain.DefaultCollectionColor
	}
	if !domain.ValidColor(color) {
		return nil, domainerrors.Validation("Invalid color format")
	}

	collectionID, err := id.Generate("col")
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	now := time.Now()
	collection := &domain.Collection{
		ID:          collectionID,
		UserID:      userID,
		Name:        req.Name,
		Slug:        domain.CollectionSlug(req.Name),
		Description: req.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateCollection(ctx, collection); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.logger.Info("collection created", "user_id", userID, "collection_id", collectionID, "slug", collection.Slug)

	return collection, nil
}

// Get returns one of the user's collections.
func (s *CollectionService) Get(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	collection, err := s.store.GetCollection(ctx, userID, collectionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Collection not found")
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return collection, nil
}

// List returns the user's collections ordered by name, with bookmark
// counts.
func (s *CollectionService) List(ctx context.Context, userID string) ([]*domain.Collection, error) {
	collections, err := s.store.ListCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// Update applies a partial update. The slug is recomputed only when the
// name changes.
func (s *CollectionService) Update(ctx context.Context, userID, collectionID string, req UpdateCollectionRequest) (*domain.Collection, error) {
	collection, err := s.Get(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" && *req.Name != collection.Name {
		collection.Name = *req.Name
		collection.Slug = domain.CollectionSlug(*req.Name)
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}
	if req.Color != nil {
		if !domain.ValidColor(*req.Color) {
			return nil, domainerrors.Validation("Invalid color format")
		}
		collection.Color = *req.Color
	}
	collection.Touch()

	if err := s.store.UpdateCollection(ctx, collection); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Collection not found")
		}
		return nil, fmt.Errorf("update collection: %w", err)
	}

	return collection, nil
}

// Delete removes a collection. Its bookmarks survive with the
// collection reference cleared.
func (s *CollectionService) Delete(ctx context.Context, userID, collectionID string) error {
	if err := s.store.DeleteCollection(ctx, userID, collectionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Collection not found")
		}
		return fmt.Errorf("delete collection: %w", err)
	}

	s.logger.Info("collection deleted", "user_id", userID, "collection_id", collectionID)
	return nil
}
