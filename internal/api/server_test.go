package api

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/linkshelfapp/linkshelf-server/internal/auth"
	"github.com/linkshelfapp/linkshelf-server/internal/scrape"
	"github.com/linkshelfapp/linkshelf-server/internal/service"
	"github.com/linkshelfapp/linkshelf-server/internal/store/memory"
	"github.com/linkshelfapp/linkshelf-server/internal/validation"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer builds a server over the in-memory store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	st := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenService, err := auth.NewTokenService(strings.Repeat("ab", 32), time.Hour)
	require.NoError(t, err)

	validator := validation.New()
	fetcher := scrape.NewFetcher(2*time.Second, 1<<20, logger)
	cache, err := scrape.NewCache("", time.Hour, logger)
	require.NoError(t, err)

	services := &Services{
		Auth:       service.NewAuthService(st, tokenService, validator, logger),
		Bookmark:   service.NewBookmarkService(st, fetcher, cache, validator, logger),
		Collection: service.NewCollectionService(st, validator, logger),
		Tag:        service.NewTagService(st, logger),
	}

	router := chi.NewRouter()
	humaConfig := huma.DefaultConfig("LinkShelf API Test", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		scrapeCache:     cache,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: NewRateLimiter(1000, time.Minute, 500),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerBookmarkRoutes()
	s.registerCollectionRoutes()
	s.registerTagRoutes()

	t.Cleanup(func() {
		_ = cache.Close()
		_ = st.Close()
	})

	return &testServer{Server: s, api: humatest.Wrap(t, api)}
}

// signupTestUser registers a user through the API and returns the token.
func (ts *testServer) signupTestUser(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "signup failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	return body.Token
}

// decodeBody unmarshals a response recorder body into T.
func decodeBody[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}
