// Package di provides dependency injection configuration for the LinkShelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/linkshelfapp/linkshelf-server/internal/auth"
	"github.com/linkshelfapp/linkshelf-server/internal/config"
	"github.com/linkshelfapp/linkshelf-server/internal/di/providers"
	"github.com/linkshelfapp/linkshelf-server/internal/logger"
	"github.com/linkshelfapp/linkshelf-server/internal/scrape"
	"github.com/linkshelfapp/linkshelf-server/internal/service"
	"github.com/linkshelfapp/linkshelf-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Persistence
	do.Provide(injector, providers.ProvideStore)

	// Metadata fetching
	do.Provide(injector, providers.ProvideFetcher)
	do.Provide(injector, providers.ProvideScrapeCache)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookmarkService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideTagService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*scrape.Fetcher](injector)
	_ = do.MustInvoke[*providers.ScrapeCacheHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BookmarkService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.TagService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
