package providers

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/linkshelfapp/linkshelf-server/internal/config"
	"github.com/linkshelfapp/linkshelf-server/internal/logger"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
	"github.com/linkshelfapp/linkshelf-server/internal/store/memory"
	"github.com/linkshelfapp/linkshelf-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown support.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the persistence layer selected by configuration.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Info("Using in-memory store; data will not survive restarts")
		return &StoreHandle{Store: memory.New()}, nil

	case config.StoreDriverSQLite:
		dbPath := filepath.Join(cfg.Data.BasePath, "linkshelf.db")
		st, err := sqlite.Open(dbPath, log.Logger)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		log.Info("Database opened", "path", dbPath)
		return &StoreHandle{Store: st}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
