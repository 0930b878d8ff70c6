package recommendation

import (
	"context"

	"recommender/internal/domain/models"
)

// Service интерфейс бизнес-логики генерации рекомендаций.
// Один вызов = один детерминированный прогон пайплайна для клиента.
type Service interface {
	// Recommend запускает пайплайн: загрузка -> анализ паттернов -> affinity -> скоринг.
	// Возвращает ErrCustomerNotFound до входа в аналитические стадии,
	// если customer_id не разрешается в профиль.
	Recommend(ctx context.Context, customerID string) (*Result, error)
}

// OpportunityType тип возможности продажи
type OpportunityType string

const (
	// OpportunityUpsell продукт в категории, которую клиент уже покупает
	OpportunityUpsell OpportunityType = "Upsell"
	// OpportunityCrossSell продукт в новой для клиента категории
	OpportunityCrossSell OpportunityType = "Cross-Sell"
)

// FrequentProduct агрегат покупок клиента по одному продукту.
// Сортируется по количеству покупок, затем по сумме.
type FrequentProduct struct {
	Product       string  `json:"product"`
	PurchaseCount int     `json:"purchase_count"`
	TotalSpendUSD float64 `json:"total_spend_usd"`
}

// MissingOpportunity продукт, который покупают отраслевые пиры,
// но которого нет в собственном наборе продуктов клиента
type MissingOpportunity struct {
	Product      string `json:"product"`
	PeerAdoption int    `json:"peer_adoption"` // число уникальных пиров-покупателей
}

// AffinityEdge симметричная связь двух продуктов.
// CoOccurrence = число уникальных клиентов, купивших оба продукта.
type AffinityEdge struct {
	ProductA     string `json:"product_a"`
	ProductB     string `json:"product_b"`
	CoOccurrence int    `json:"co_occurrence"`
}

// RelatedSuggestion продукт, связанный с одним из частых продуктов клиента
// через co-occurrence по всей базе
type RelatedSuggestion struct {
	Product      string `json:"product"`
	SeedProduct  string `json:"suggested_for"`
	CoOccurrence int    `json:"co_occurrence"`
}

// ScoredOpportunity итоговая оцененная возможность.
// Тип фиксируется при создании кандидата и после скоринга не меняется.
type ScoredOpportunity struct {
	Product string          `json:"product"`
	Type    OpportunityType `json:"type"`
	Score   float64         `json:"score"`
	Reasons []string        `json:"reasons"`
}

// Result полный выход ядра: ранжированные возможности плюс
// промежуточные сигналы для нарративного контекста отчета
type Result struct {
	Profile              *models.CustomerProfile `json:"profile"`
	FrequentProducts     []FrequentProduct       `json:"frequent_products"`
	MissingOpportunities []MissingOpportunity    `json:"missing_opportunities"`
	RelatedSuggestions   []RelatedSuggestion     `json:"related_suggestions"`
	Opportunities        []ScoredOpportunity     `json:"opportunities"`
}
