// Command binderdash inspects protein binder complexes and screens scored
// designs from the terminal, a dashboard or an MCP client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/binderdash/internal/adapters/driven/config/file"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/pdb"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/scores"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/spatial"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/thresholds"
	"github.com/custodia-labs/binderdash/internal/adapters/driven/watch"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/cli"
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/core/services"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	builder, err := spatial.NewBuilder(settings.Interface.Index)
	if err != nil {
		return err
	}

	cache := memory.NewCache()
	interfaceCache, closeCache := openInterfaceCache(settings.Cache, cache)
	defer closeCache()

	structureService := services.NewStructureService(pdb.NewParser(), cache)
	interfaceService := services.NewInterfaceService(structureService, builder, interfaceCache)

	// A broken threshold table must stop startup before any command runs.
	metricsService, err := services.NewMetricsService(
		scores.NewCSVCodec(),
		thresholds.NewSource(settings.Thresholds.Path),
	)
	if err != nil {
		return err
	}

	sessionService := services.NewSessionService(metricsService, watch.NewWatcher(0))

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Interface: interfaceService,
		Metrics:   metricsService,
		Settings:  settingsService,
		Session:   sessionService,
	})

	return cli.Execute(ctx)
}

// openInterfaceCache returns the configured interface cache. SQLite errors
// fall back to the in-memory cache.
func openInterfaceCache(cfg domain.CacheSettings, fallback *memory.Cache) (driven.InterfaceCache, func()) {
	if cfg.Backend != domain.CacheSQLite {
		return fallback, func() {}
	}

	store, err := sqlite.NewStore(cfg.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sqlite cache unavailable, using memory: %v\n", err)
		return fallback, func() {}
	}
	logger.Debug("interface cache: %s", store.Path())
	return store.InterfaceCache(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing cache: %v", err)
		}
	}
}
