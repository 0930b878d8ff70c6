package persistence

import (
	"context"
	"fmt"

	"recommender/internal/config"
	"recommender/internal/domain/models"
	"recommender/internal/domain/repositories"
)

// Seeder интерфейс записи демо-данных в хранилище.
// Ядро пайплайна хранилище только читает; запись нужна сидеру и тестам.
type Seeder interface {
	UpsertCustomer(ctx context.Context, profile *models.CustomerProfile, synergyTags []string) error
	InsertPurchase(ctx context.Context, record models.PurchaseRecord) error
	Close() error
}

// NewRepository создает хранилище покупок по драйверу из конфигурации
func NewRepository(ctx context.Context, cfg *config.Config) (repositories.PurchaseRepository, error) {
	dbCfg := DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		return NewSQLiteRepository(cfg.DatabasePath, dbCfg)
	case config.DriverPostgres:
		return NewPostgresRepository(ctx, cfg.PostgresDSN, dbCfg)
	default:
		return nil, fmt.Errorf("unknown db driver: %s", cfg.DBDriver)
	}
}

// NewSeeder создает сидер хранилища по драйверу из конфигурации
func NewSeeder(ctx context.Context, cfg *config.Config) (Seeder, error) {
	dbCfg := DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		return NewSQLiteRepository(cfg.DatabasePath, dbCfg)
	case config.DriverPostgres:
		return NewPostgresRepository(ctx, cfg.PostgresDSN, dbCfg)
	default:
		return nil, fmt.Errorf("unknown db driver: %s", cfg.DBDriver)
	}
}
