package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/service"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Returns the user's collections with bookmark counts, ordered by name",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCollections)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCollection",
		Method:        http.MethodPost,
		Path:          "/api/v1/collections",
		Summary:       "Create collection",
		Description:   "Creates a new collection with a slug derived from its name",
		Tags:          []string{"Collections"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Get collection",
		Description: "Returns a collection by ID",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCollection",
		Method:      http.MethodPut,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Update collection",
		Description: "Partially updates a collection; renaming regenerates the slug",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCollection",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Delete collection",
		Description: "Deletes a collection; its bookmarks survive uncollected",
		Tags:        []string{"Collections"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCollection)
}

// === DTOs ===

// ListCollectionsInput contains parameters for listing collections.
type ListCollectionsInput struct {
	Authorization string `header:"Authorization"`
}

// CollectionResponse contains collection data in API responses.
type CollectionResponse struct {
	ID            string    `json:"id" doc:"Collection ID"`
	Name          string    `json:"name" doc:"Collection name"`
	Slug          string    `json:"slug" doc:"URL-safe slug"`
	Description   string    `json:"description,omitempty" doc:"Collection description"`
	Color         string    `json:"color" doc:"Display color as #RRGGBB"`
	BookmarkCount int       `json:"bookmark_count" doc:"Bookmarks filed under this collection"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt     time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// ListCollectionsResponse contains a list of collections.
type ListCollectionsResponse struct {
	Collections []CollectionResponse `json:"collections" doc:"User's collections"`
}

// ListCollectionsOutput wraps the list response for Huma.
type ListCollectionsOutput struct {
	Body ListCollectionsResponse
}

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name" required:"false" doc:"Collection name"`
	Description string `json:"description,omitempty" doc:"Collection description"`
	Color       string `json:"color,omitempty" doc:"Display color as #RRGGBB"`
}

// CreateCollectionInput wraps the create request for Huma.
type CreateCollectionInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateCollectionRequest
}

// CollectionOutput wraps a single collection for Huma.
type CollectionOutput struct {
	Body CollectionResponse
}

// GetCollectionInput contains parameters for fetching a collection.
type GetCollectionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Collection ID"`
}

// UpdateCollectionRequest is the request body for a partial update.
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty" doc:"New name; regenerates the slug"`
	Description *string `json:"description,omitempty" doc:"New description"`
	Color       *string `json:"color,omitempty" doc:"New display color as #RRGGBB"`
}

// UpdateCollectionInput wraps the update request for Huma.
type UpdateCollectionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Collection ID"`
	Body          UpdateCollectionRequest
}

// DeleteCollectionInput contains parameters for deleting a collection.
type DeleteCollectionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Collection ID"`
}

// === Handlers ===

func (s *Server) handleListCollections(ctx context.Context, input *ListCollectionsInput) (*ListCollectionsOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	collections, err := s.services.Collection.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]CollectionResponse, len(collections))
	for i, c := range collections {
		resp[i] = mapCollection(c)
	}

	return &ListCollectionsOutput{Body: ListCollectionsResponse{Collections: resp}}, nil
}

func (s *Server) handleCreateCollection(ctx context.Context, input *CreateCollectionInput) (*CollectionOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Collection.Create(ctx, userID, service.CreateCollectionRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Color:       input.Body.Color,
	})
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: mapCollection(c)}, nil
}

func (s *Server) handleGetCollection(ctx context.Context, input *GetCollectionInput) (*CollectionOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Collection.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: mapCollection(c)}, nil
}

func (s *Server) handleUpdateCollection(ctx context.Context, input *UpdateCollectionInput) (*CollectionOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Collection.Update(ctx, userID, input.ID, service.UpdateCollectionRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Color:       input.Body.Color,
	})
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: mapCollection(c)}, nil
}

func (s *Server) handleDeleteCollection(ctx context.Context, input *DeleteCollectionInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Collection.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Collection deleted"}}, nil
}

func mapCollection(c *domain.Collection) CollectionResponse {
	return CollectionResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		Color:         c.Color,
		BookmarkCount: c.BookmarkCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
