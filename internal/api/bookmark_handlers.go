package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/service"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

func (s *Server) registerBookmarkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBookmarks",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks",
		Summary:     "List bookmarks",
		Description: "Returns a page of the user's bookmarks, optionally filtered by search text, tags, and collection",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBookmarks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBookmark",
		Method:        http.MethodPost,
		Path:          "/api/v1/bookmarks",
		Summary:       "Create bookmark",
		Description:   "Saves a new bookmark with its tags",
		Tags:          []string{"Bookmarks"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "scrapeMetadata",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookmarks/scrape",
		Summary:     "Fetch page metadata",
		Description: "Fetches title, description, and favicon for a URL before saving it",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleScrapeMetadata)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookmark",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Get bookmark",
		Description: "Returns a bookmark by ID",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBookmark",
		Method:      http.MethodPut,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Update bookmark",
		Description: "Partially updates a bookmark; omitted fields keep their current value",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBookmark",
		Method:      http.MethodDelete,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Delete bookmark",
		Description: "Deletes a bookmark and its tag associations",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "trackBookmarkVisit",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookmarks/{id}/visit",
		Summary:     "Track visit",
		Description: "Increments the bookmark's visit counter and stamps the visit time",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTrackVisit)
}

// === DTOs ===

// ListBookmarksInput contains query parameters for listing bookmarks.
type ListBookmarksInput struct {
	Authorization string `header:"Authorization"`
	Search        string `query:"search" doc:"Free-form search across text, collection names, tag names, and dates"`
	Tags          string `query:"tags" doc:"Comma-separated tag names; bookmarks with any of them match"`
	Collection    string `query:"collection" doc:"Collection ID filter"`
	Sort          string `query:"sort" doc:"Ordering: date-desc, date-asc, alpha-asc, alpha-desc, or visited"`
	Limit         int    `query:"limit" doc:"Page size, capped at 200"`
	Offset        int    `query:"offset" doc:"Page offset"`
}

// BookmarkResponse contains bookmark data in API responses.
type BookmarkResponse struct {
	ID             string     `json:"id" doc:"Bookmark ID"`
	URL            string     `json:"url" doc:"Saved URL"`
	Title          string     `json:"title" doc:"Page title"`
	Description    string     `json:"description,omitempty" doc:"Page description"`
	Notes          string     `json:"notes,omitempty" doc:"User notes"`
	FaviconURL     string     `json:"favicon_url,omitempty" doc:"Favicon URL"`
	CollectionID   string     `json:"collection_id,omitempty" doc:"Owning collection ID"`
	CollectionName string     `json:"collection_name,omitempty" doc:"Owning collection name"`
	Tags           []string   `json:"tags" doc:"Normalized tag names"`
	VisitCount     int        `json:"visit_count" doc:"Recorded visits"`
	LastVisitedAt  *time.Time `json:"last_visited_at,omitempty" doc:"Most recent visit"`
	CreatedAt      time.Time  `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt      time.Time  `json:"updated_at" doc:"Last update timestamp"`
}

// ListBookmarksResponse contains one page of bookmarks. Total is the
// user's overall bookmark count, not the number of filtered matches.
type ListBookmarksResponse struct {
	Bookmarks []BookmarkResponse `json:"bookmarks" doc:"Bookmarks on this page"`
	Total     int                `json:"total" doc:"User's total bookmark count"`
	Limit     int                `json:"limit" doc:"Page size used"`
	Offset    int                `json:"offset" doc:"Page offset used"`
}

// ListBookmarksOutput wraps the bookmark page for Huma.
type ListBookmarksOutput struct {
	Body ListBookmarksResponse
}

// CreateBookmarkRequest is the request body for saving a bookmark.
type CreateBookmarkRequest struct {
	URL          string   `json:"url" required:"false" doc:"URL to save"`
	Title        string   `json:"title,omitempty" doc:"Title override; defaults to the URL"`
	Description  string   `json:"description,omitempty" doc:"Description"`
	Notes        string   `json:"notes,omitempty" doc:"User notes"`
	CollectionID string   `json:"collectionId,omitempty" doc:"Collection to file the bookmark under"`
	Tags         []string `json:"tags,omitempty" doc:"Tag names, normalized on save"`
	FaviconURL   string   `json:"faviconUrl,omitempty" doc:"Favicon URL"`
}

// CreateBookmarkInput wraps the create request for Huma.
type CreateBookmarkInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateBookmarkRequest
}

// BookmarkOutput wraps a single bookmark for Huma.
type BookmarkOutput struct {
	Body BookmarkResponse
}

// GetBookmarkInput contains parameters for fetching a bookmark.
type GetBookmarkInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Bookmark ID"`
}

// UpdateBookmarkRequest is the request body for a partial update.
// Omitted fields keep their value; an empty collectionId detaches the
// bookmark and an empty tags array clears its tags.
type UpdateBookmarkRequest struct {
	Title        *string  `json:"title,omitempty" doc:"New title"`
	Description  *string  `json:"description,omitempty" doc:"New description"`
	Notes        *string  `json:"notes,omitempty" doc:"New notes"`
	CollectionID *string  `json:"collectionId,omitempty" doc:"New collection ID, empty string to detach"`
	Tags         []string `json:"tags,omitempty" doc:"Replacement tag set, empty array to clear"`
}

// UpdateBookmarkInput wraps the update request for Huma.
type UpdateBookmarkInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Bookmark ID"`
	Body          UpdateBookmarkRequest
}

// DeleteBookmarkInput contains parameters for deleting a bookmark.
type DeleteBookmarkInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Bookmark ID"`
}

// TrackVisitInput contains parameters for recording a visit.
type TrackVisitInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Bookmark ID"`
}

// ScrapeMetadataRequest is the request body for metadata fetching.
type ScrapeMetadataRequest struct {
	URL string `json:"url" required:"false" doc:"URL to fetch metadata for"`
}

// ScrapeMetadataInput wraps the scrape request for Huma.
type ScrapeMetadataInput struct {
	Authorization string `header:"Authorization"`
	Body          ScrapeMetadataRequest
}

// ScrapeMetadataResponse contains fetched page metadata. A warning
// means the fetch degraded to placeholders instead of failing.
type ScrapeMetadataResponse struct {
	URL         string `json:"url" doc:"Fetched URL"`
	Title       string `json:"title" doc:"Page title"`
	Description string `json:"description,omitempty" doc:"Page description"`
	FaviconURL  string `json:"favicon_url,omitempty" doc:"Favicon URL"`
	Warning     string `json:"warning,omitempty" doc:"Set when the page could not be fetched"`
}

// ScrapeMetadataOutput wraps the scrape response for Huma.
type ScrapeMetadataOutput struct {
	Body ScrapeMetadataResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleListBookmarks(ctx context.Context, input *ListBookmarksInput) (*ListBookmarksOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	q := store.ListQuery{
		Search:       input.Search,
		Tags:         splitTags(input.Tags),
		CollectionID: input.Collection,
		Sort:         store.Sort(input.Sort),
		Limit:        input.Limit,
		Offset:       input.Offset,
	}

	page, err := s.services.Bookmark.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	resp := ListBookmarksResponse{
		Bookmarks: make([]BookmarkResponse, len(page.Bookmarks)),
		Total:     page.Total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	for i, b := range page.Bookmarks {
		resp.Bookmarks[i] = mapBookmark(b)
	}

	return &ListBookmarksOutput{Body: resp}, nil
}

func (s *Server) handleCreateBookmark(ctx context.Context, input *CreateBookmarkInput) (*BookmarkOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	b, err := s.services.Bookmark.Create(ctx, userID, service.CreateBookmarkRequest{
		URL:          input.Body.URL,
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		Notes:        input.Body.Notes,
		CollectionID: input.Body.CollectionID,
		Tags:         input.Body.Tags,
		FaviconURL:   input.Body.FaviconURL,
	})
	if err != nil {
		return nil, err
	}

	return &BookmarkOutput{Body: mapBookmark(b)}, nil
}

func (s *Server) handleGetBookmark(ctx context.Context, input *GetBookmarkInput) (*BookmarkOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	b, err := s.services.Bookmark.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookmarkOutput{Body: mapBookmark(b)}, nil
}

func (s *Server) handleUpdateBookmark(ctx context.Context, input *UpdateBookmarkInput) (*BookmarkOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	b, err := s.services.Bookmark.Update(ctx, userID, input.ID, service.UpdateBookmarkRequest{
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		Notes:        input.Body.Notes,
		CollectionID: input.Body.CollectionID,
		Tags:         input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &BookmarkOutput{Body: mapBookmark(b)}, nil
}

func (s *Server) handleDeleteBookmark(ctx context.Context, input *DeleteBookmarkInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Bookmark.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Bookmark deleted"}}, nil
}

func (s *Server) handleTrackVisit(ctx context.Context, input *TrackVisitInput) (*BookmarkOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	b, err := s.services.Bookmark.TrackVisit(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookmarkOutput{Body: mapBookmark(b)}, nil
}

func (s *Server) handleScrapeMetadata(ctx context.Context, input *ScrapeMetadataInput) (*ScrapeMetadataOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Bookmark.Scrape(ctx, userID, service.ScrapeRequest{
		URL: input.Body.URL,
	})
	if err != nil {
		return nil, err
	}

	return &ScrapeMetadataOutput{
		Body: ScrapeMetadataResponse{
			URL:         result.URL,
			Title:       result.Title,
			Description: result.Description,
			FaviconURL:  result.FaviconURL,
			Warning:     result.Warning,
		},
	}, nil
}

func mapBookmark(b *domain.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:             b.ID,
		URL:            b.URL,
		Title:          b.Title,
		Description:    b.Description,
		Notes:          b.Notes,
		FaviconURL:     b.FaviconURL,
		CollectionID:   b.CollectionID,
		CollectionName: b.CollectionName,
		Tags:           b.Tags,
		VisitCount:     b.VisitCount,
		LastVisitedAt:  b.LastVisitedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// splitTags parses the comma-separated tags query parameter.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
