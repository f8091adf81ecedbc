package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/jhoicas/crm-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// repositories implementaciones de persistencia según DB_DRIVER.
type repositories struct {
	users    repository.UserRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	orders   repository.OrderRepository
	reports  repository.ReportRepository
	close    func()
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		db := client.Database(cfg.Mongo.DBName)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("índices MongoDB: %w", err)
		}
		log.Info().Str("db", cfg.Mongo.DBName).Msg("MongoDB conectado")
		return &repositories{
			users:    mongodb.NewUserRepository(db),
			products: mongodb.NewProductRepository(db),
			clients:  mongodb.NewClientRepository(db),
			orders:   mongodb.NewOrderRepository(db),
			reports:  mongodb.NewReportRepository(db),
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(disconnectCtx); err != nil {
					log.Error().Err(err).Msg("desconexión de MongoDB")
				}
			},
		}, nil

	case config.DriverPostgres:
		applied, err := postgres.Migrate(cfg.DB.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Bool("applied", applied).Msg("migraciones PostgreSQL")
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &repositories{
			users:    postgres.NewUserRepository(pool),
			products: postgres.NewProductRepository(pool),
			clients:  postgres.NewClientRepository(pool),
			orders:   postgres.NewOrderRepository(pool),
			reports:  postgres.NewReportRepository(pool),
			close:    pool.Close,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			users:    memory.NewUserRepository(store),
			products: memory.NewProductRepository(store),
			clients:  memory.NewClientRepository(store),
			orders:   memory.NewOrderRepository(store),
			reports:  memory.NewReportRepository(store),
			close:    func() {},
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.DB.Driver)
}
