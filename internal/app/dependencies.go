package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/burger-oms/internal/health"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/postgres"
)

// runtimeDependencies — репозитории выбранного хранилища и функция их закрытия.
type runtimeDependencies struct {
	productRepo     domain.ProductRepository
	orderRepo       domain.OrderRepository
	timelineRepo    domain.TimelineRepository
	outboxRepo      domain.OutboxRepository
	idempotencyRepo domain.IdempotencyRepository
	storageChecker  healthcheck.Checker
	closeFn         func()
}

func (d runtimeDependencies) close() {
	if d.closeFn != nil {
		d.closeFn()
	}
}

// initRuntimeDependencies создаёт репозитории по cfg.StorageDriver.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("using in-memory storage")
		return runtimeDependencies{
			productRepo:     memory.NewSeededProductRepository(),
			orderRepo:       memory.NewOrderRepository(),
			timelineRepo:    memory.NewTimelineRepository(),
			outboxRepo:      memory.NewOutboxRepository(),
			idempotencyRepo: memory.NewIdempotencyRepository(),
			storageChecker: healthcheck.NewSimpleChecker("storage", func(context.Context) error {
				return nil
			}),
		}, nil
	case StorageDriverPostgres:
		return initPostgresDependencies(ctx, cfg, logger)
	default:
		return runtimeDependencies{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func initPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	if cfg.PostgresDSN == "" {
		return runtimeDependencies{}, fmt.Errorf("postgres dsn is required for %q storage driver", StorageDriverPostgres)
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return runtimeDependencies{}, err
	}

	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return runtimeDependencies{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	}
	if cfg.PostgresSeed {
		n, err := postgres.SeedProducts(ctx, store.DB(), domain.DefaultMenu())
		if err != nil {
			store.Close()
			return runtimeDependencies{}, fmt.Errorf("seed products: %w", err)
		}
		logger.WithField("products", n).Info("menu seeded")
	}

	db := store.DB()
	logger.Info("using postgres storage")
	return runtimeDependencies{
		productRepo:     postgres.NewProductRepository(db),
		orderRepo:       postgres.NewOrderRepository(db),
		timelineRepo:    postgres.NewTimelineRepository(db),
		outboxRepo:      postgres.NewOutboxRepository(db),
		idempotencyRepo: postgres.NewIdempotencyRepository(db),
		storageChecker:  healthcheck.NewSimpleChecker("storage", store.Ping),
		closeFn:         store.Close,
	}, nil
}
