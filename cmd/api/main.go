package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-service/internal/api/http"
	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/observability"
	"github.com/spec-kit/staffing-service/internal/persistence"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
	"github.com/spec-kit/staffing-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	stores, sequence := buildStores(cfg, pg, redis, logger)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var publisher service.EventPublisher
	if redis.Enabled() {
		publisher = redis
	}
	worker.StartChangeFeed(service.NewChangeFeed(dispatcher, publisher, cfg.Events, metrics, logger))

	deps := service.Dependencies{
		Stores:   stores,
		Sequence: sequence,
		Events:   dispatcher,
		Logger:   logger,
	}

	checks := map[string]handlers.Pinger{}
	if pg.Enabled() {
		checks["postgres"] = pg
	}
	if redis.Enabled() {
		checks["redis"] = redis
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Areas:       handlers.NewAreaHandler(service.NewAreaService(deps)),
		Departments: handlers.NewDepartmentHandler(service.NewDepartmentService(deps)),
		Supervisors: handlers.NewSupervisorHandler(service.NewSupervisorService(deps)),
		Employees:   handlers.NewEmployeeHandler(service.NewEmployeeService(deps)),
		Metrics:     metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// buildStores picks Postgres documents when a pool is open and memory otherwise, then the
// department number sequence matching SEQUENCE_BACKEND.
func buildStores(cfg *config.Config, pg *persistence.Postgres, redis *persistence.Redis, logger *zap.Logger) (service.Stores, repository.Sequence) {
	var (
		stores   service.Stores
		sequence repository.Sequence
	)
	if pg.Enabled() {
		stores = service.NewPostgresStores(pg.PoolHandle())
		sequence = repository.NewPostgresSequence(pg.PoolHandle())
	} else {
		logger.Warn("using in-memory document store; data is lost on restart")
		stores = service.NewMemoryStores()
		sequence = repository.NewMemorySequence()
	}
	if cfg.Sequence.Backend == config.SequenceBackendRedis {
		sequence = repository.NewRedisSequence(redis.Client)
	}
	logger.Info("store ready",
		zap.Bool("postgres", pg.Enabled()),
		zap.String("sequence", cfg.Sequence.Backend))
	return stores, sequence
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
