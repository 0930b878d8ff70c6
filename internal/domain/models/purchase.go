package models

import "time"

// PurchaseRecord строка таблицы покупок. Неизменяемый факт,
// ядро анализа читает записи и никогда их не модифицирует.
type PurchaseRecord struct {
	CustomerID    string    `json:"customer_id"`
	Product       string    `json:"product"`
	Quantity      int       `json:"quantity"`
	UnitPriceUSD  float64   `json:"unit_price_usd"`
	TotalPriceUSD float64   `json:"total_price_usd"`
	PurchaseDate  time.Time `json:"purchase_date"`

	// Денормализованные атрибуты клиента (присоединяются при выборке)
	Industry        string   `json:"industry"`
	CurrentProducts []string `json:"current_products,omitempty"`
	SynergyTags     []string `json:"synergy_tags,omitempty"`
}

// CustomerProfile профиль клиента. Строится один раз на запуск пайплайна
// и не меняется до конца запуска.
type CustomerProfile struct {
	CustomerID       string   `json:"customer_id"`
	CustomerName     string   `json:"customer_name"`
	Industry         string   `json:"industry"`
	AnnualRevenueUSD float64  `json:"annual_revenue_usd"`
	Employees        int      `json:"number_of_employees"`
	Location         string   `json:"location"`
	PriorityRating   string   `json:"customer_priority_rating"`
	AccountType      string   `json:"account_type"`
	CurrentProducts  []string `json:"current_products,omitempty"`
}

// DistinctProducts возвращает множество уникальных продуктов из записей
func DistinctProducts(records []PurchaseRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Product != "" {
			set[r.Product] = true
		}
	}
	return set
}
