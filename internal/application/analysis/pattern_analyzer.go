package analysis

import (
	"sort"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

// PatternAnalyzer анализ паттернов покупок клиента.
// Первая аналитическая стадия пайплайна: частотный профиль собственных покупок
// плюс бенчмаркинг против отраслевых пиров.
type PatternAnalyzer struct {
	topFrequent int
	topMissing  int
}

// NewPatternAnalyzer создает новый анализатор паттернов
func NewPatternAnalyzer(topFrequent, topMissing int) *PatternAnalyzer {
	if topFrequent <= 0 {
		topFrequent = 5
	}
	if topMissing <= 0 {
		topMissing = 5
	}
	return &PatternAnalyzer{
		topFrequent: topFrequent,
		topMissing:  topMissing,
	}
}

// Analyze вычисляет частые продукты клиента и упущенные возможности.
// history — собственные записи клиента, allRecords — полная таблица (для пиров).
// Возвращает ErrNoPurchaseHistory, если у клиента нет записей покупок.
// Отсутствие пиров (уникальная отрасль) — не ошибка: missing будет пустым.
func (a *PatternAnalyzer) Analyze(profile *models.CustomerProfile, history, allRecords []models.PurchaseRecord) ([]recommendation.FrequentProduct, []recommendation.MissingOpportunity, error) {
	if len(history) == 0 {
		return nil, nil, recommendation.ErrNoPurchaseHistory
	}

	frequent := a.frequentProducts(history)
	missing := a.missingOpportunities(profile, history, allRecords)

	return frequent, missing, nil
}

// frequentProducts группирует собственные записи по продукту и агрегирует
// количество покупок и сумму. Сортировка: count desc, spend desc, имя asc.
func (a *PatternAnalyzer) frequentProducts(history []models.PurchaseRecord) []recommendation.FrequentProduct {
	type aggregate struct {
		count int
		spend float64
	}
	byProduct := make(map[string]*aggregate)
	for _, r := range history {
		if r.Product == "" {
			continue
		}
		agg, ok := byProduct[r.Product]
		if !ok {
			agg = &aggregate{}
			byProduct[r.Product] = agg
		}
		agg.count++
		agg.spend += r.TotalPriceUSD
	}

	frequent := make([]recommendation.FrequentProduct, 0, len(byProduct))
	for product, agg := range byProduct {
		frequent = append(frequent, recommendation.FrequentProduct{
			Product:       product,
			PurchaseCount: agg.count,
			TotalSpendUSD: agg.spend,
		})
	}

	sort.Slice(frequent, func(i, j int) bool {
		if frequent[i].PurchaseCount != frequent[j].PurchaseCount {
			return frequent[i].PurchaseCount > frequent[j].PurchaseCount
		}
		if frequent[i].TotalSpendUSD != frequent[j].TotalSpendUSD {
			return frequent[i].TotalSpendUSD > frequent[j].TotalSpendUSD
		}
		return frequent[i].Product < frequent[j].Product
	})

	if len(frequent) > a.topFrequent {
		frequent = frequent[:a.topFrequent]
	}
	return frequent
}

// missingOpportunities находит продукты, которые покупают пиры той же отрасли,
// но которых нет в собственном наборе продуктов клиента.
// PeerAdoption = число уникальных пиров-покупателей продукта.
func (a *PatternAnalyzer) missingOpportunities(profile *models.CustomerProfile, history, allRecords []models.PurchaseRecord) []recommendation.MissingOpportunity {
	ownProducts := models.DistinctProducts(history)

	// product -> множество уникальных пиров
	adopters := make(map[string]map[string]bool)
	for _, r := range allRecords {
		if r.Industry != profile.Industry || r.CustomerID == profile.CustomerID {
			continue
		}
		if r.Product == "" || ownProducts[r.Product] {
			continue
		}
		if adopters[r.Product] == nil {
			adopters[r.Product] = make(map[string]bool)
		}
		adopters[r.Product][r.CustomerID] = true
	}

	missing := make([]recommendation.MissingOpportunity, 0, len(adopters))
	for product, peers := range adopters {
		missing = append(missing, recommendation.MissingOpportunity{
			Product:      product,
			PeerAdoption: len(peers),
		})
	}

	sort.Slice(missing, func(i, j int) bool {
		if missing[i].PeerAdoption != missing[j].PeerAdoption {
			return missing[i].PeerAdoption > missing[j].PeerAdoption
		}
		return missing[i].Product < missing[j].Product
	})

	if len(missing) > a.topMissing {
		missing = missing[:a.topMissing]
	}
	return missing
}
