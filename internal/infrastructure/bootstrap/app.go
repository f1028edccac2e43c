package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/hive-go/internal/adapters/logging"
	"github.com/andrescamacho/hive-go/internal/adapters/metrics"
	"github.com/andrescamacho/hive-go/internal/adapters/persistence"
	"github.com/andrescamacho/hive-go/internal/adapters/redisstore"
	"github.com/andrescamacho/hive-go/internal/adapters/sim"
	"github.com/andrescamacho/hive-go/internal/adapters/snapshot"
	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/infrastructure/config"
	"github.com/andrescamacho/hive-go/internal/infrastructure/database"
	"github.com/andrescamacho/hive-go/pkg/utils"
)

// App is a fully wired colony: simulated host, memory backend, logging and
// the mediator with every colony handler registered.
type App struct {
	Config     *config.Config
	RunID      string
	Host       *sim.Host
	Hives      *colony.HiveRepository
	Mediator   common.Mediator
	Logger     *slog.Logger
	TickLogger *logging.TickLogger

	closers []io.Closer
}

// New wires an App for component ("cli", "daemon"); the run id is derived from it
func New(cfg *config.Config, component string) (*App, error) {
	app := &App{Config: cfg, RunID: utils.GenerateRunID(component)}
	if err := app.wire(); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire() error {
	cfg := a.Config

	logger, logCloser, err := logging.NewSlogLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.closers = append(a.closers, logCloser)
	a.Logger = logger

	scenario, err := sim.LoadScenario(cfg.Simulation.Scenario)
	if err != nil {
		return err
	}
	a.Host, err = sim.NewHost(scenario)
	if err != nil {
		return fmt.Errorf("failed to build simulated host: %w", err)
	}

	clock := shared.NewRealClock()

	var db *gorm.DB
	if cfg.Memory.Backend == config.MemoryBackendDatabase || cfg.Logging.Persist {
		db, err = database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error { return database.Close(db) }))
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var sink persistence.TickLogRepository
	if cfg.Logging.Persist {
		sink = persistence.NewGormTickLogRepository(db, clock, cfg.Logging.DedupWindow)
	}
	a.TickLogger = logging.NewTickLogger(logger, a.RunID, sink)

	store, err := a.memoryStore(db, clock)
	if err != nil {
		return err
	}
	a.Hives = colony.NewHiveRepository(store, cfg.Memory.GenesisRoom)

	a.Mediator = common.NewMediator()
	a.Mediator.RegisterMiddleware(TickStampMiddleware(a.Host, a.TickLogger))

	var observers []colony.TickObserver
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		requestMetrics := metrics.NewRequestMetricsCollector()
		if err := requestMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register request metrics: %w", err)
		}
		a.Mediator.RegisterMiddleware(metrics.PrometheusMiddleware(requestMetrics, clock))

		tickMetrics := metrics.NewTickMetricsCollector()
		if err := tickMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register tick metrics: %w", err)
		}
		observers = append(observers, tickMetrics)
	}

	if err := colony.RegisterHandlers(a.Mediator, a.Host, a.Hives, clock, observers...); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	return nil
}

func (a *App) memoryStore(db *gorm.DB, clock shared.Clock) (colony.MemoryStore, error) {
	cfg := a.Config.Memory

	switch cfg.Backend {
	case config.MemoryBackendDatabase:
		return persistence.NewGormMemoryStore(db, cfg.Key, clock), nil

	case config.MemoryBackendFile:
		return snapshot.NewFileStore(cfg.File.Path), nil

	case config.MemoryBackendRedis:
		client, err := redisstore.NewClient(cfg.Redis.URL, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		a.closers = append(a.closers, client)
		return redisstore.NewStore(client, cfg.Key), nil
	}

	return nil, fmt.Errorf("unsupported memory backend: %s", cfg.Backend)
}

// Context attaches the app's tick logger to ctx
func (a *App) Context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.TickLogger)
}

// RunTick sends one RunTickCommand through the mediator
func (a *App) RunTick(ctx context.Context) (*colony.RunTickResponse, error) {
	response, err := a.Mediator.Send(a.Context(ctx), &colony.RunTickCommand{})
	if err != nil {
		return nil, err
	}
	result, ok := response.(*colony.RunTickResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", response)
	}
	return result, nil
}

// Close releases every resource in reverse order of acquisition
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
