package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// sqliteSchema DDL хранилища покупок
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id        TEXT PRIMARY KEY,
	customer_name      TEXT NOT NULL,
	industry           TEXT NOT NULL,
	annual_revenue_usd REAL NOT NULL DEFAULT 0,
	employees          INTEGER NOT NULL DEFAULT 0,
	location           TEXT NOT NULL DEFAULT '',
	priority_rating    TEXT NOT NULL DEFAULT '',
	account_type       TEXT NOT NULL DEFAULT '',
	current_products   TEXT NOT NULL DEFAULT '',
	synergy_tags       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS purchases (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id     TEXT NOT NULL REFERENCES customers(customer_id),
	product         TEXT NOT NULL,
	quantity        INTEGER NOT NULL DEFAULT 1,
	unit_price_usd  REAL NOT NULL DEFAULT 0,
	total_price_usd REAL NOT NULL DEFAULT 0,
	purchase_date   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_purchases_customer ON purchases(customer_id);
CREATE INDEX IF NOT EXISTS idx_purchases_product ON purchases(product);
CREATE INDEX IF NOT EXISTS idx_customers_industry ON customers(industry);
`

// SQLiteRepository хранилище покупок поверх SQLite (драйвер по умолчанию)
type SQLiteRepository struct {
	conn *sql.DB
}

// NewSQLiteRepository открывает SQLite-хранилище и применяет схему
func NewSQLiteRepository(path string, cfg DBConfig) (*SQLiteRepository, error) {
	conn, err := sql.Open("sqlite3", path+"?_timeout=2000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Printf("SQLite хранилище покупок открыто: %s", path)
	return &SQLiteRepository{conn: conn}, nil
}

// GetCustomerProfile возвращает профиль клиента или ErrCustomerNotFound
func (r *SQLiteRepository) GetCustomerProfile(ctx context.Context, customerID string) (*models.CustomerProfile, error) {
	row := r.conn.QueryRowContext(ctx, `
		SELECT customer_id, customer_name, industry, annual_revenue_usd,
		       employees, location, priority_rating, account_type, current_products
		FROM customers WHERE customer_id = ?`, customerID)

	var profile models.CustomerProfile
	var currentProducts string
	err := row.Scan(&profile.CustomerID, &profile.CustomerName, &profile.Industry,
		&profile.AnnualRevenueUSD, &profile.Employees, &profile.Location,
		&profile.PriorityRating, &profile.AccountType, &currentProducts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", recommendation.ErrCustomerNotFound, customerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer profile: %w", err)
	}

	profile.CurrentProducts = splitList(currentProducts)
	return &profile, nil
}

// GetCustomerRecords возвращает записи покупок одного клиента
func (r *SQLiteRepository) GetCustomerRecords(ctx context.Context, customerID string) ([]models.PurchaseRecord, error) {
	rows, err := r.conn.QueryContext(ctx, selectRecordsSQLite+` WHERE p.customer_id = ? ORDER BY p.id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetAllRecords возвращает полную таблицу покупок
func (r *SQLiteRepository) GetAllRecords(ctx context.Context) ([]models.PurchaseRecord, error) {
	rows, err := r.conn.QueryContext(ctx, selectRecordsSQLite+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// DatasetVersion версия снимка данных: количество строк плюс максимальный id.
// Любая вставка или удаление меняет хотя бы одну из компонент.
func (r *SQLiteRepository) DatasetVersion(ctx context.Context) (string, error) {
	var count, maxID int64
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(id), 0) FROM purchases`).Scan(&count, &maxID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve dataset version: %w", err)
	}
	return fmt.Sprintf("%d:%d", count, maxID), nil
}

// UpsertCustomer вставляет или обновляет клиента (используется сидером)
func (r *SQLiteRepository) UpsertCustomer(ctx context.Context, profile *models.CustomerProfile, synergyTags []string) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO customers (customer_id, customer_name, industry, annual_revenue_usd,
		                       employees, location, priority_rating, account_type,
		                       current_products, synergy_tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(customer_id) DO UPDATE SET
			customer_name = excluded.customer_name,
			industry = excluded.industry,
			annual_revenue_usd = excluded.annual_revenue_usd,
			employees = excluded.employees,
			location = excluded.location,
			priority_rating = excluded.priority_rating,
			account_type = excluded.account_type,
			current_products = excluded.current_products,
			synergy_tags = excluded.synergy_tags`,
		profile.CustomerID, profile.CustomerName, profile.Industry, profile.AnnualRevenueUSD,
		profile.Employees, profile.Location, profile.PriorityRating, profile.AccountType,
		joinList(profile.CurrentProducts), joinList(synergyTags))
	if err != nil {
		return fmt.Errorf("failed to upsert customer %s: %w", profile.CustomerID, err)
	}
	return nil
}

// InsertPurchase вставляет запись покупки (используется сидером)
func (r *SQLiteRepository) InsertPurchase(ctx context.Context, record models.PurchaseRecord) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO purchases (customer_id, product, quantity, unit_price_usd, total_price_usd, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.CustomerID, record.Product, record.Quantity,
		record.UnitPriceUSD, record.TotalPriceUSD, record.PurchaseDate.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to insert purchase for %s: %w", record.CustomerID, err)
	}
	return nil
}

// Close закрывает подключение к хранилищу
func (r *SQLiteRepository) Close() error {
	return r.conn.Close()
}

// selectRecordsSQLite запись покупки с денормализованными атрибутами клиента
const selectRecordsSQLite = `
	SELECT p.customer_id, p.product, p.quantity, p.unit_price_usd, p.total_price_usd,
	       p.purchase_date, c.industry, c.current_products, c.synergy_tags
	FROM purchases p
	JOIN customers c ON c.customer_id = p.customer_id`

const dateLayout = "2006-01-02"

// dateLayouts допустимые форматы дат в хранилище
var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func scanRecords(rows *sql.Rows) ([]models.PurchaseRecord, error) {
	var records []models.PurchaseRecord
	for rows.Next() {
		var rec models.PurchaseRecord
		var purchaseDate, currentProducts, synergyTags string
		if err := rows.Scan(&rec.CustomerID, &rec.Product, &rec.Quantity,
			&rec.UnitPriceUSD, &rec.TotalPriceUSD, &purchaseDate,
			&rec.Industry, &currentProducts, &synergyTags); err != nil {
			return nil, fmt.Errorf("failed to scan purchase record: %w", err)
		}
		rec.PurchaseDate = parseDate(purchaseDate)
		rec.CurrentProducts = splitList(currentProducts)
		rec.SynergyTags = splitList(synergyTags)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase records: %w", err)
	}
	return records, nil
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// splitList разбирает список значений, разделенных точкой с запятой или запятой
func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	sep := ";"
	if !strings.Contains(raw, ";") {
		sep = ","
	}
	parts := strings.Split(raw, sep)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func joinList(values []string) string {
	return strings.Join(values, "; ")
}
