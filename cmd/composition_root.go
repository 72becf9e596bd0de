package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"routekeeper/internal/adapters/out/collaborators"
	"routekeeper/internal/adapters/out/filekv"
	"routekeeper/internal/adapters/out/gormkv"
	"routekeeper/internal/adapters/out/prefsrepo"
	"routekeeper/internal/adapters/out/rediskv"
	"routekeeper/internal/adapters/out/routerepo"
	"routekeeper/internal/core/application/optimizer"
	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/application/usecases/commands"
	"routekeeper/internal/core/application/usecases/queries"
	"routekeeper/internal/core/ports"
	"routekeeper/internal/jobs"
	"routekeeper/internal/offline"
	"routekeeper/internal/pkg/clock"

	goredis "github.com/redis/go-redis/v9"
)

// CompositionRoot owns the long-lived objects of one process.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  clock.Clock

	kv        ports.KeyValueStore
	store     *store.PackageStore
	prefs     *prefsrepo.Repository
	reorderer ports.RouteReorderer
	reader    ports.LabelReader
	scheduler *jobs.OptimizationScheduler

	closers []io.Closer
}

// NewCompositionRoot opens the configured slot store and loads the route.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CompositionRoot{cfg: cfg, logger: logger, clock: clock.RealClock{}}

	kv, err := c.openKeyValueStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.kv = kv
	c.prefs = prefsrepo.NewRepository(kv)

	c.store, err = store.NewPackageStore(routerepo.NewRepository(kv), c.clock, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if _, err := c.store.Load(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.reorderer, c.reader, err = c.newCollaborators()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.AutoOptimize {
		c.scheduler = jobs.NewOptimizationScheduler(c.CreateOptimizeRouteCommandHandler(), cfg.OptimizeDebounce, logger)
	}
	return c, nil
}

func (c *CompositionRoot) openKeyValueStore(ctx context.Context) (ports.KeyValueStore, error) {
	switch c.cfg.StorageDriver {
	case StorageFile:
		return filekv.NewStore(c.cfg.StateDir), nil
	case StorageRedis:
		rdb, err := c.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		return rediskv.NewStore(rdb, ""), nil
	case StoragePostgres:
		db, err := gormkv.OpenPostgres(gormkv.PostgresConfig{
			Host:     c.cfg.DBHost,
			Port:     c.cfg.DBPort,
			User:     c.cfg.DBUser,
			Password: c.cfg.DBPassword,
			Name:     c.cfg.DBName,
			SSLMode:  c.cfg.DBSslMode,
		})
		if err != nil {
			return nil, err
		}
		return c.migrated(ctx, gormkv.NewStore(db))
	case StorageSQLite, "":
		db, err := gormkv.OpenSQLite(c.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return c.migrated(ctx, gormkv.NewStore(db))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
	}
}

func (c *CompositionRoot) migrated(ctx context.Context, s *gormkv.Store) (*gormkv.Store, error) {
	c.closers = append(c.closers, s)
	if err := s.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate slot store: %w", err)
	}
	return s, nil
}

// redisClient connects once and shares the client between the slot store
// and the offline cache.
func (c *CompositionRoot) redisClient(ctx context.Context) (*goredis.Client, error) {
	for _, closer := range c.closers {
		if rdb, ok := closer.(*goredis.Client); ok {
			return rdb, nil
		}
	}
	rdb, err := rediskv.Connect(ctx, c.cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, rdb)
	return rdb, nil
}

func (c *CompositionRoot) newCollaborators() (ports.RouteReorderer, ports.LabelReader, error) {
	var reorderer ports.RouteReorderer = collaborators.Unconfigured{Name: "reorder service"}
	if c.cfg.ReorderURL != "" {
		rc, err := collaborators.NewReorderClient(c.cfg.ReorderURL, c.cfg.CollaboratorAPIKey, nil)
		if err != nil {
			return nil, nil, err
		}
		reorderer = rc
	} else {
		c.logger.Warn("REORDER_URL is not set, routes keep their entry order")
	}

	var reader ports.LabelReader = collaborators.Unconfigured{Name: "label reader"}
	if c.cfg.LabelReaderURL != "" {
		lr, err := collaborators.NewLabelReaderClient(c.cfg.LabelReaderURL, c.cfg.CollaboratorAPIKey, nil)
		if err != nil {
			return nil, nil, err
		}
		reader = lr
	} else {
		c.logger.Warn("LABEL_READER_URL is not set, label scans are disabled")
	}
	return reorderer, reader, nil
}

// NewOfflineWorker installs and activates the app shell cache. It returns
// nil when ASSET_ORIGIN is not set.
func (c *CompositionRoot) NewOfflineWorker(ctx context.Context) (*offline.Worker, error) {
	if c.cfg.AssetOrigin == "" {
		return nil, nil
	}

	var storage offline.CacheStorage = offline.NewMemoryStorage()
	if c.cfg.OfflineStorage == "redis" {
		rdb, err := c.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		storage = offline.NewRedisStorage(rdb, "")
	}

	w, err := offline.NewWorker(storage, offline.NewOrigin(c.cfg.AssetOrigin, nil), "routekeeper", c.cfg.CacheVersion, c.logger)
	if err != nil {
		return nil, err
	}
	if err := w.Install(ctx); err != nil {
		return w, fmt.Errorf("install offline cache: %w", err)
	}
	if err := w.Activate(ctx); err != nil {
		return w, fmt.Errorf("activate offline cache: %w", err)
	}
	return w, nil
}

// Snapshot returns the current route.
func (c *CompositionRoot) Snapshot() store.Snapshot {
	return c.store.Snapshot()
}

func (c *CompositionRoot) trigger() commands.OptimizationTrigger {
	if c.scheduler == nil {
		return nil
	}
	return c.scheduler
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retention := jobs.NewRetentionJob(c.CreatePruneRouteCommandHandler(), c.cfg.RetentionSchedule, c.logger)
	return jobs.NewJobManager(retention, c.scheduler)
}

func (c *CompositionRoot) CreateAddPackageCommandHandler() commands.AddPackageCommandHandler {
	return commands.NewAddPackageCommandHandler(c.store, c.trigger(), c.clock)
}

func (c *CompositionRoot) CreateScanLabelCommandHandler() commands.ScanLabelCommandHandler {
	return commands.NewScanLabelCommandHandler(c.reader, c.store, c.trigger(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.store)
}

func (c *CompositionRoot) CreateRemoveStopCommandHandler() commands.RemoveStopCommandHandler {
	return commands.NewRemoveStopCommandHandler(c.store)
}

func (c *CompositionRoot) CreateClearRouteCommandHandler() commands.ClearRouteCommandHandler {
	return commands.NewClearRouteCommandHandler(c.store)
}

func (c *CompositionRoot) CreateOptimizeRouteCommandHandler() commands.OptimizeRouteCommandHandler {
	opt, _ := optimizer.NewRouteOptimizer(c.reorderer, c.logger)
	return commands.NewOptimizeRouteCommandHandler(c.store, opt, c.logger)
}

func (c *CompositionRoot) CreatePruneRouteCommandHandler() commands.PruneRouteCommandHandler {
	return commands.NewPruneRouteCommandHandler(c.store, c.logger)
}

func (c *CompositionRoot) CreateCompleteOnboardingCommandHandler() commands.CompleteOnboardingCommandHandler {
	return commands.NewCompleteOnboardingCommandHandler(c.prefs)
}

func (c *CompositionRoot) CreateGetPackagesQueryHandler() queries.GetPackagesQueryHandler {
	return queries.NewGetPackagesQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetStopsQueryHandler() queries.GetStopsQueryHandler {
	return queries.NewGetStopsQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetRouteStatsQueryHandler() queries.GetRouteStatsQueryHandler {
	return queries.NewGetRouteStatsQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetNavigationLinkQueryHandler() queries.GetNavigationLinkQueryHandler {
	return queries.NewGetNavigationLinkQueryHandler()
}

func (c *CompositionRoot) CreateGetOnboardingQueryHandler() queries.GetOnboardingQueryHandler {
	return queries.NewGetOnboardingQueryHandler(c.prefs)
}

// Close releases database and Redis connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}
