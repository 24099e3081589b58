package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/linkshelfapp/linkshelf-server/internal/config"
	"github.com/linkshelfapp/linkshelf-server/internal/logger"
	"github.com/linkshelfapp/linkshelf-server/internal/scrape"
)

// ScrapeCacheHandle wraps the metadata cache with shutdown support.
type ScrapeCacheHandle struct {
	*scrape.Cache
}

// Shutdown implements do.Shutdownable.
func (h *ScrapeCacheHandle) Shutdown() error {
	return h.Cache.Close()
}

// ProvideFetcher provides the page metadata fetcher.
func ProvideFetcher(i do.Injector) (*scrape.Fetcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return scrape.NewFetcher(cfg.Scrape.Timeout, cfg.Scrape.MaxBodyBytes, log.Logger), nil
}

// ProvideScrapeCache provides the on-disk metadata cache.
func ProvideScrapeCache(i do.Injector) (*ScrapeCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cachePath := filepath.Join(cfg.Data.BasePath, "scrape-cache")
	cache, err := scrape.NewCache(cachePath, cfg.Scrape.CacheTTL, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Metadata cache opened", "path", cachePath, "ttl", cfg.Scrape.CacheTTL)
	return &ScrapeCacheHandle{Cache: cache}, nil
}
