package container

import (
	"fmt"
	"log"

	rechandler "recommender/internal/api/handlers/recommendation"
	syshandler "recommender/internal/api/handlers/system"
	"recommender/internal/config"
	"recommender/internal/domain/models"
	"recommender/internal/domain/repositories"
	"recommender/internal/infrastructure/monitoring"
)

// Version версия приложения
const Version = "1.0.0"

// Container DI-контейнер приложения.
// Компоненты создаются лениво при первом запросе и переиспользуются.
type Container struct {
	cfg     *config.Config
	repo    repositories.PurchaseRepository
	metrics *monitoring.PipelineMetrics
	catalog *models.CategoryCatalog

	recommendationHandler *rechandler.Handler
	systemHandler         *syshandler.Handler
}

// NewContainer создает новый контейнер
func NewContainer(cfg *config.Config, repo repositories.PurchaseRepository) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("purchase repository is required")
	}

	catalog, err := models.LoadCategoryCatalog(cfg.CategoryFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load category catalog: %w", err)
	}
	if cfg.CategoryFilePath != "" {
		log.Printf("Справочник категорий загружен из %s (%d продуктов)", cfg.CategoryFilePath, catalog.Size())
	}

	return &Container{
		cfg:     cfg,
		repo:    repo,
		metrics: monitoring.NewPipelineMetrics(),
		catalog: catalog,
	}, nil
}

// Config возвращает конфигурацию приложения
func (c *Container) Config() *config.Config {
	return c.cfg
}

// Metrics возвращает метрики пайплайна
func (c *Container) Metrics() *monitoring.PipelineMetrics {
	return c.metrics
}

// Close освобождает ресурсы контейнера
func (c *Container) Close() error {
	return c.repo.Close()
}
