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
	"github.com/linkshelfapp/linkshelf-server/internal/scrape"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
	"github.com/linkshelfapp/linkshelf-server/internal/validation"
)

// BookmarkService handles bookmark CRUD, visit tracking, and metadata
// scraping.
type BookmarkService struct {
	store     store.Store
	fetcher   *scrape.Fetcher
	cache     *scrape.Cache
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(
	store store.Store,
	fetcher *scrape.Fetcher,
	cache *scrape.Cache,
	validator *validation.Validator,
	logger *slog.Logger,
) *BookmarkService {
	return &BookmarkService{
		store:     store,
		fetcher:   fetcher,
		cache:     cache,
		validator: validator,
		logger:    logger,
	}
}

// CreateBookmarkRequest contains the data for a new bookmark. Only the
// URL is required; a missing title falls back to the URL itself.
type CreateBookmarkRequest struct {
	URL          string   `json:"url" validate:"required,url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Notes        string   `json:"notes"`
	CollectionID string   `json:"collectionId"`
	Tags         []string `json:"tags"`
	FaviconURL   string   `json:"faviconUrl"`
}

// UpdateBookmarkRequest carries a partial update. Nil fields keep their
// current value. A nil CollectionID leaves the collection untouched
// while a pointer to "" clears it; likewise nil Tags leave the tag set
// alone while an empty non-nil slice clears it.
type UpdateBookmarkRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Notes        *string  `json:"notes"`
	CollectionID *string  `json:"collectionId"`
	Tags         []string `json:"tags"`
}

// ExistingBookmark identifies the bookmark that already holds a URL,
// returned alongside duplicate conflicts for client display.
type ExistingBookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// duplicateConflict builds the conflict error for an already-saved URL.
func duplicateConflict(existing *domain.Bookmark) error {
	return domainerrors.Conflict("Duplicate URL").WithDetails(ExistingBookmark{
		ID:        existing.ID,
		Title:     existing.Title,
		CreatedAt: existing.CreatedAt,
	})
}

// Create saves a new bookmark with its tags in one transaction. Saving
// a URL the user already has fails with a conflict carrying the
// existing bookmark's id, title, and creation date.
func (s *BookmarkService) Create(ctx context.Context, userID string, req CreateBookmarkRequest) (*domain.Bookmark, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Fast-path duplicate check for a friendly response; the store's
	// uniqueness constraint is the authoritative guard below.
	if existing, err := s.store.GetBookmarkByURL(ctx, userID, req.URL); err == nil {
		return nil, duplicateConflict(existing)
	}

	if req.CollectionID != "" {
		if _, err := s.store.GetCollection(ctx, userID, req.CollectionID); err != nil {
			return nil, domainerrors.Validation("Invalid collection ID")
		}
	}

	bookmarkID, err := id.Generate("bm")
	if err != nil {
		return nil, fmt.Errorf("generate bookmark ID: %w", err)
	}

	title := req.Title
	if title == "" {
		title = req.URL
	}

	now := time.Now()
	bookmark := &domain.Bookmark{
		ID:           bookmarkID,
		UserID:       userID,
		URL:          req.URL,
		Title:        title,
		Description:  req.Description,
		Notes:        req.Notes,
		FaviconURL:   req.FaviconURL,
		CollectionID: req.CollectionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tags := domain.NormalizeTagNames(req.Tags)
	if err := s.store.CreateBookmark(ctx, bookmark, tags); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			if existing, lookupErr := s.store.GetBookmarkByURL(ctx, userID, req.URL); lookupErr == nil {
				return nil, duplicateConflict(existing)
			}
			return nil, domainerrors.Conflict("Duplicate URL")
		}
		return nil, fmt.Errorf("create bookmark: %w", err)
	}

	s.logger.Info("bookmark created", "user_id", userID, "bookmark_id", bookmarkID, "tags", len(tags))

	return s.Get(ctx, userID, bookmarkID)
}

// Get returns one of the user's bookmarks.
func (s *BookmarkService) Get(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	bookmark, err := s.store.GetBookmark(ctx, userID, bookmarkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Bookmark not found")
		}
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return bookmark, nil
}

// List returns one page of the user's bookmarks per the query
// descriptor. Tag filter names are normalized to their stored form.
func (s *BookmarkService) List(ctx context.Context, userID string, q store.ListQuery) (*store.BookmarkPage, error) {
	if len(q.Tags) > 0 {
		q.Tags = domain.NormalizeTagNames(q.Tags)
	}

	page, err := s.store.ListBookmarks(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return page, nil
}

// Update applies a partial update and replaces the tag set when one is
// supplied, all in one store transaction.
func (s *BookmarkService) Update(ctx context.Context, userID, bookmarkID string, req UpdateBookmarkRequest) (*domain.Bookmark, error) {
	bookmark, err := s.Get(ctx, userID, bookmarkID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		bookmark.Title = *req.Title
	}
	if req.Description != nil {
		bookmark.Description = *req.Description
	}
	if req.Notes != nil {
		bookmark.Notes = *req.Notes
	}
	if req.CollectionID != nil {
		if *req.CollectionID != "" {
			if _, err := s.store.GetCollection(ctx, userID, *req.CollectionID); err != nil {
				return nil, domainerrors.Validation("Invalid collection ID")
			}
		}
		bookmark.CollectionID = *req.CollectionID
	}
	bookmark.Touch()

	var tags []string
	if req.Tags != nil {
		tags = domain.NormalizeTagNames(req.Tags)
	}

	if err := s.store.UpdateBookmark(ctx, bookmark, tags); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Bookmark not found")
		}
		return nil, fmt.Errorf("update bookmark: %w", err)
	}

	return s.Get(ctx, userID, bookmarkID)
}

// Delete removes a bookmark and its tag links.
func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID string) error {
	if err := s.store.DeleteBookmark(ctx, userID, bookmarkID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Bookmark not found")
		}
		return fmt.Errorf("delete bookmark: %w", err)
	}

	s.logger.Info("bookmark deleted", "user_id", userID, "bookmark_id", bookmarkID)
	return nil
}

// TrackVisit increments the bookmark's visit counter and stamps the
// visit time, returning the updated bookmark.
func (s *BookmarkService) TrackVisit(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	bookmark, err := s.store.RecordVisit(ctx, userID, bookmarkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Bookmark not found")
		}
		return nil, fmt.Errorf("record visit: %w", err)
	}
	return bookmark, nil
}

// ScrapeRequest contains the URL to fetch metadata for.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Scrape fetches page metadata for a URL the user is about to save.
// Already-saved URLs fail with the same duplicate conflict as Create,
// so clients learn about the duplicate before filling in a form.
func (s *BookmarkService) Scrape(ctx context.Context, userID string, req ScrapeRequest) (*scrape.Result, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if existing, err := s.store.GetBookmarkByURL(ctx, userID, req.URL); err == nil {
		return nil, duplicateConflict(existing)
	}

	if cached, ok := s.cache.Get(req.URL); ok {
		return cached, nil
	}

	result := s.fetcher.Fetch(ctx, req.URL)
	s.cache.Set(req.URL, result)
	return result, nil
}
