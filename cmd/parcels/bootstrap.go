package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/parcels/internal/adapters/driven/carriers/fedex"
	"github.com/custodia-labs/parcels/internal/adapters/driven/carriers/manual"
	"github.com/custodia-labs/parcels/internal/adapters/driven/config/file"
	"github.com/custodia-labs/parcels/internal/adapters/driven/notify"
	"github.com/custodia-labs/parcels/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/parcels/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/parcels/internal/adapters/driving/cli"
	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/services"
	"github.com/custodia-labs/parcels/internal/logger"
)

// stores groups the persistence ports used by the services.
type stores struct {
	deliveries driven.DeliveryStore
	cache      driven.PackageCache
	tokens     driven.TokenCache
	scheduler  driven.SchedulerStore
	close      func() error
}

// newBootstrap returns the hook that wires services rooted at dir
// (normally ~/.parcels).
func newBootstrap(dir string) cli.Bootstrap {
	return func(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
		logger.Section("Startup")

		configStore, err := file.NewConfigStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}

		envFiles := []string{filepath.Join(dir, ".env")}
		if wd, err := os.Getwd(); err == nil {
			envFiles = append(envFiles, filepath.Join(wd, ".env"))
		}
		if err := services.LoadEnvFiles(envFiles...); err != nil {
			logger.Warn("ignoring .env: %v", err)
		}

		settingsService := services.NewSettingsService(configStore)
		settings, err := settingsService.Get()
		if err != nil {
			return nil, nil, fmt.Errorf("reading settings: %w", err)
		}
		credentialsService := services.NewCredentialsService(configStore)

		st, err := openStores(ctx, dir, opts.DebugData)
		if err != nil {
			return nil, nil, err
		}

		registry := services.NewCarrierRegistry()
		manualAdapter := manual.New(time.Now)
		fedexAdapter := fedex.New(fedex.Config{
			BaseURL:           settings.Carriers.FedExBaseURL,
			HTTPTimeout:       settings.Carriers.HTTPTimeout,
			RequestsPerSecond: settings.Carriers.RequestsPerSecond,
		}, credentialsService, st.tokens)
		for _, c := range domain.BuiltinCarriers() {
			var adapter driven.CarrierAdapter = manualAdapter
			if c.ID == domain.CarrierFedEx {
				adapter = fedexAdapter
			}
			if err := registry.Register(c, adapter); err != nil {
				_ = st.close() //nolint:errcheck // already failing
				return nil, nil, fmt.Errorf("registering %s: %w", c.ID, err)
			}
		}

		notifications := notify.NewDispatcher(notify.NewTerminal(os.Stderr))

		refresh := services.NewRefreshEngine(st.deliveries, st.cache, registry, notifications,
			services.WithConcurrency(settings.Refresh.Concurrency))
		deliveries := services.NewDeliveryService(st.deliveries, st.cache, registry, notifications)

		scheduler := services.NewScheduler(settingsService.GetSchedulerConfig(), st.scheduler, refresh)
		scheduler.OnRefresh(func(r *domain.RefreshReport) {
			logger.Debug("scheduled refresh: updated=%d skipped=%d failed=%d",
				len(r.Updated), len(r.Skipped), len(r.Failures))
		})

		logger.Debug("services ready (debug data: %v)", opts.DebugData)

		return &cli.Services{
			Deliveries:    deliveries,
			Refresh:       refresh,
			Carriers:      registry,
			Credentials:   credentialsService,
			Settings:      settingsService,
			Scheduler:     scheduler,
			ConfigWatcher: configStore,
			Notifications: notifications,
		}, st.close, nil
	}
}

// openStores opens the sqlite database under dir, or in-memory stores
// seeded with sample deliveries when debugData is set.
func openStores(ctx context.Context, dir string, debugData bool) (*stores, error) {
	if debugData {
		st := &stores{
			deliveries: memory.NewDeliveryStore(),
			cache:      memory.NewPackageCache(),
			tokens:     memory.NewTokenCache(),
			scheduler:  memory.NewSchedulerStore(),
			close:      func() error { return nil },
		}
		if err := services.SeedDebugData(ctx, st.deliveries, st.cache, time.Now()); err != nil {
			return nil, fmt.Errorf("seeding debug data: %w", err)
		}
		return st, nil
	}

	db, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("database: %s", db.Path())

	return &stores{
		deliveries: db.DeliveryStore(),
		cache:      db.PackageCache(),
		tokens:     db.TokenCache(),
		scheduler:  db.SchedulerStore(),
		close: func() error {
			if err := db.Close(); err != nil {
				return fmt.Errorf("closing database: %w", err)
			}
			return nil
		},
	}, nil
}
