package repositories

import (
	"context"

	"recommender/internal/domain/models"
)

// PurchaseRepository доступ к хранилищу покупок.
// Единственная точка ввода данных для аналитического пайплайна.
type PurchaseRepository interface {
	// GetCustomerProfile возвращает профиль клиента.
	// Возвращает recommendation.ErrCustomerNotFound, если клиент неизвестен.
	GetCustomerProfile(ctx context.Context, customerID string) (*models.CustomerProfile, error)

	// GetCustomerRecords возвращает все записи покупок клиента
	GetCustomerRecords(ctx context.Context, customerID string) ([]models.PurchaseRecord, error)

	// GetAllRecords возвращает полную таблицу покупок для бенчмаркинга и affinity-анализа
	GetAllRecords(ctx context.Context) ([]models.PurchaseRecord, error)

	// DatasetVersion возвращает версию снимка данных.
	// Меняется при любом изменении таблицы покупок, ключ для кэша co-occurrence индекса.
	DatasetVersion(ctx context.Context) (string, error)

	// Close закрывает подключение к хранилищу
	Close() error
}
