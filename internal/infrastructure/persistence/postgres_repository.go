package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

// postgresSchema DDL хранилища покупок для Postgres
const postgresSchema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id        VARCHAR(50) PRIMARY KEY,
	customer_name      VARCHAR(255) NOT NULL,
	industry           VARCHAR(100) NOT NULL,
	annual_revenue_usd NUMERIC NOT NULL DEFAULT 0,
	employees          INTEGER NOT NULL DEFAULT 0,
	location           VARCHAR(255) NOT NULL DEFAULT '',
	priority_rating    VARCHAR(50) NOT NULL DEFAULT '',
	account_type       VARCHAR(50) NOT NULL DEFAULT '',
	current_products   TEXT NOT NULL DEFAULT '',
	synergy_tags       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS purchases (
	id              BIGSERIAL PRIMARY KEY,
	customer_id     VARCHAR(50) NOT NULL REFERENCES customers(customer_id),
	product         VARCHAR(100) NOT NULL,
	quantity        INTEGER NOT NULL DEFAULT 1,
	unit_price_usd  NUMERIC NOT NULL DEFAULT 0,
	total_price_usd NUMERIC NOT NULL DEFAULT 0,
	purchase_date   DATE NOT NULL DEFAULT CURRENT_DATE
);

CREATE INDEX IF NOT EXISTS idx_purchases_customer ON purchases(customer_id);
CREATE INDEX IF NOT EXISTS idx_purchases_product ON purchases(product);
CREATE INDEX IF NOT EXISTS idx_customers_industry ON customers(industry);
`

// PostgresRepository хранилище покупок поверх PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository открывает пул подключений к Postgres и применяет схему
func NewPostgresRepository(ctx context.Context, dsn string, cfg DBConfig) (*PostgresRepository, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Printf("Postgres хранилище покупок подключено")
	return &PostgresRepository{pool: pool}, nil
}

// GetCustomerProfile возвращает профиль клиента или ErrCustomerNotFound
func (r *PostgresRepository) GetCustomerProfile(ctx context.Context, customerID string) (*models.CustomerProfile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT customer_id, customer_name, industry, annual_revenue_usd,
		       employees, location, priority_rating, account_type, current_products
		FROM customers WHERE customer_id = $1`, customerID)

	var profile models.CustomerProfile
	var currentProducts string
	err := row.Scan(&profile.CustomerID, &profile.CustomerName, &profile.Industry,
		&profile.AnnualRevenueUSD, &profile.Employees, &profile.Location,
		&profile.PriorityRating, &profile.AccountType, &currentProducts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", recommendation.ErrCustomerNotFound, customerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer profile: %w", err)
	}

	profile.CurrentProducts = splitList(currentProducts)
	return &profile, nil
}

// GetCustomerRecords возвращает записи покупок одного клиента
func (r *PostgresRepository) GetCustomerRecords(ctx context.Context, customerID string) ([]models.PurchaseRecord, error) {
	rows, err := r.pool.Query(ctx, selectRecordsPostgres+` WHERE p.customer_id = $1 ORDER BY p.id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer records: %w", err)
	}
	defer rows.Close()

	return scanPgRecords(rows)
}

// GetAllRecords возвращает полную таблицу покупок
func (r *PostgresRepository) GetAllRecords(ctx context.Context) ([]models.PurchaseRecord, error) {
	rows, err := r.pool.Query(ctx, selectRecordsPostgres+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase records: %w", err)
	}
	defer rows.Close()

	return scanPgRecords(rows)
}

// DatasetVersion версия снимка данных (см. SQLiteRepository.DatasetVersion)
func (r *PostgresRepository) DatasetVersion(ctx context.Context) (string, error) {
	var count, maxID int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(id), 0) FROM purchases`).Scan(&count, &maxID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve dataset version: %w", err)
	}
	return fmt.Sprintf("%d:%d", count, maxID), nil
}

// UpsertCustomer вставляет или обновляет клиента (используется сидером)
func (r *PostgresRepository) UpsertCustomer(ctx context.Context, profile *models.CustomerProfile, synergyTags []string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers (customer_id, customer_name, industry, annual_revenue_usd,
		                       employees, location, priority_rating, account_type,
		                       current_products, synergy_tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (customer_id) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			industry = EXCLUDED.industry,
			annual_revenue_usd = EXCLUDED.annual_revenue_usd,
			employees = EXCLUDED.employees,
			location = EXCLUDED.location,
			priority_rating = EXCLUDED.priority_rating,
			account_type = EXCLUDED.account_type,
			current_products = EXCLUDED.current_products,
			synergy_tags = EXCLUDED.synergy_tags`,
		profile.CustomerID, profile.CustomerName, profile.Industry, profile.AnnualRevenueUSD,
		profile.Employees, profile.Location, profile.PriorityRating, profile.AccountType,
		joinList(profile.CurrentProducts), joinList(synergyTags))
	if err != nil {
		return fmt.Errorf("failed to upsert customer %s: %w", profile.CustomerID, err)
	}
	return nil
}

// InsertPurchase вставляет запись покупки (используется сидером)
func (r *PostgresRepository) InsertPurchase(ctx context.Context, record models.PurchaseRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO purchases (customer_id, product, quantity, unit_price_usd, total_price_usd, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.CustomerID, record.Product, record.Quantity,
		record.UnitPriceUSD, record.TotalPriceUSD, record.PurchaseDate)
	if err != nil {
		return fmt.Errorf("failed to insert purchase for %s: %w", record.CustomerID, err)
	}
	return nil
}

// Close закрывает пул подключений
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

const selectRecordsPostgres = `
	SELECT p.customer_id, p.product, p.quantity, p.unit_price_usd, p.total_price_usd,
	       p.purchase_date, c.industry, c.current_products, c.synergy_tags
	FROM purchases p
	JOIN customers c ON c.customer_id = p.customer_id`

func scanPgRecords(rows pgx.Rows) ([]models.PurchaseRecord, error) {
	var records []models.PurchaseRecord
	for rows.Next() {
		var rec models.PurchaseRecord
		var purchaseDate time.Time
		var currentProducts, synergyTags string
		if err := rows.Scan(&rec.CustomerID, &rec.Product, &rec.Quantity,
			&rec.UnitPriceUSD, &rec.TotalPriceUSD, &purchaseDate,
			&rec.Industry, &currentProducts, &synergyTags); err != nil {
			return nil, fmt.Errorf("failed to scan purchase record: %w", err)
		}
		rec.PurchaseDate = purchaseDate
		rec.CurrentProducts = splitList(currentProducts)
		rec.SynergyTags = splitList(synergyTags)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase records: %w", err)
	}
	return records, nil
}
