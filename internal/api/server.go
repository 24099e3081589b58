// Package api provides the HTTP API server and handlers for the LinkShelf application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/linkshelfapp/linkshelf-server/internal/config"
	"github.com/linkshelfapp/linkshelf-server/internal/scrape"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	scrapeCache *scrape.Cache
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger

	// authRateLimiter throttles signup and login attempts per client IP.
	// Everything else shares the global limiter installed in middleware.
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st store.Store, services *Services, scrapeCache *scrape.Cache, logger *slog.Logger) *Server {
	s := &Server{
		store:           st,
		services:        services,
		scrapeCache:     scrapeCache,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("LinkShelf API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerBookmarkRoutes()
	s.registerCollectionRoutes()
	s.registerTagRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global limit: 500 requests per 15 minutes per IP.
	globalLimiter := NewRateLimiter(500, 15*time.Minute, 50)
	s.router.Use(RateLimitMiddleware(globalLimiter, s.logger))
}
