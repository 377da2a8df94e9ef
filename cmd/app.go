package cmd

import (
	"context"
	"fmt"

	"gallery-sync/core/config"
	"gallery-sync/core/database"
	"gallery-sync/core/logger"
	"gallery-sync/core/metrics"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/parser"
	"gallery-sync/feature/gallery/reconciler"
	"gallery-sync/feature/gallery/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps bundles what every command needs to talk to storage and the database.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  storage.Client
	lister  storage.Lister
	db      *gorm.DB
	store   *store.GormStore
	parser  *parser.Parser
	metrics *metrics.Recorder
}

// bootstrap loads configuration, builds the logger and opens storage. The
// database is opened only when withDB is set; a failed connection is returned
// as an error when requireDB is set and logged otherwise.
func bootstrap(ctx context.Context, withDB, requireDB bool) (*deps, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	lister, err := storage.NewLister(ctx, cfg.Storage, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage lister: %w", err)
	}

	rt := &deps{
		cfg:     cfg,
		logger:  logg,
		client:  client,
		lister:  lister,
		parser:  parser.New(cfg.Gallery, cfg.Storage.Bucket),
		metrics: metrics.New(),
	}

	if !withDB {
		return rt, nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		if requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Database connection failed, reads fall back to storage", zap.Error(err))
		return rt, nil
	}
	rt.db = db
	rt.store = store.NewGormStore(db)
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	return rt, nil
}

// migrate applies pending migrations when auto_migrate is on.
func (rt *deps) migrate(ctx context.Context) error {
	if rt.db == nil || !rt.cfg.Database.AutoMigrate {
		return nil
	}
	if err := database.Migrate(ctx, rt.db); err != nil {
		return err
	}
	v, err := database.SchemaVersion(ctx, rt.db)
	if err == nil {
		rt.logger.Info("Database schema up to date", zap.Int64("version", v))
	}
	return nil
}

// syncer builds the reconciler over the configured lister and store.
func (rt *deps) syncer() *reconciler.Syncer {
	return reconciler.New(rt.lister, rt.parser, rt.gateway(), rt.cfg.Sync, rt.logger, reconciler.WithMetrics(rt.metrics))
}

// gateway returns the store, or a store whose every call reports the
// database as unavailable when no connection could be made.
func (rt *deps) gateway() store.Store {
	if rt.store != nil {
		return rt.store
	}
	return store.Unavailable()
}
