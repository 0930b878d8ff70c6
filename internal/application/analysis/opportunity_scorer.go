package analysis

import (
	"fmt"
	"sort"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

// ScoringWeights веса сигналов скоринга.
// Base (W1) — вес категорийного сигнала, одинаковый для Upsell и Cross-Sell:
// тип — классификация, а не дифференциатор оценки.
// PeerWeight (W2) масштабируется числом пиров-покупателей (cap PeerCap).
// AffinityWeight (W3) масштабируется co-occurrence (cap AffinityCap).
type ScoringWeights struct {
	Base           float64
	PeerWeight     float64
	AffinityWeight float64
	PeerCap        int
	AffinityCap    int
}

// DefaultScoringWeights документированные константы скоринга по умолчанию
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Base:           0.7,
		PeerWeight:     0.05,
		AffinityWeight: 0.05,
		PeerCap:        4,
		AffinityCap:    4,
	}
}

// OpportunityScorer финальная стадия пайплайна: сводит сигналы стадий анализа
// в ранжированный список возможностей с объяснениями
type OpportunityScorer struct {
	catalog *models.CategoryCatalog
	weights ScoringWeights
	topN    int
}

// NewOpportunityScorer создает новый скорер
func NewOpportunityScorer(catalog *models.CategoryCatalog, weights ScoringWeights, topN int) *OpportunityScorer {
	if catalog == nil {
		catalog = models.DefaultCategoryCatalog()
	}
	if topN <= 0 {
		topN = 5
	}
	return &OpportunityScorer{
		catalog: catalog,
		weights: weights,
		topN:    topN,
	}
}

// Score оценивает кандидатов из объединения missing + related.
// Скоринг аддитивен по независимым сигналам, каждый сигнал добавляет вес
// и человекочитаемую причину. Пустой пул кандидатов — валидный пустой результат.
func (s *OpportunityScorer) Score(
	profile *models.CustomerProfile,
	frequent []recommendation.FrequentProduct,
	missing []recommendation.MissingOpportunity,
	related []recommendation.RelatedSuggestion,
) []recommendation.ScoredOpportunity {
	purchasedCategories := make(map[string]bool, len(frequent))
	frequentSet := make(map[string]bool, len(frequent))
	for _, f := range frequent {
		purchasedCategories[s.catalog.Category(f.Product)] = true
		frequentSet[f.Product] = true
	}

	missingByProduct := make(map[string]recommendation.MissingOpportunity, len(missing))
	for _, m := range missing {
		missingByProduct[m.Product] = m
	}
	relatedByProduct := make(map[string]recommendation.RelatedSuggestion, len(related))
	for _, r := range related {
		if _, ok := relatedByProduct[r.Product]; !ok {
			relatedByProduct[r.Product] = r
		}
	}

	// Пул кандидатов: missing, затем related; дедупликация по имени продукта.
	// Порядок обхода детерминирован (входные списки уже отсортированы).
	seen := make(map[string]bool)
	candidates := make([]string, 0, len(missing)+len(related))
	for _, m := range missing {
		if !seen[m.Product] {
			seen[m.Product] = true
			candidates = append(candidates, m.Product)
		}
	}
	for _, r := range related {
		if frequentSet[r.Product] || seen[r.Product] {
			continue
		}
		seen[r.Product] = true
		candidates = append(candidates, r.Product)
	}

	opportunities := make([]recommendation.ScoredOpportunity, 0, len(candidates))
	for _, product := range candidates {
		opportunities = append(opportunities, s.scoreCandidate(product, profile, purchasedCategories, missingByProduct, relatedByProduct))
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		if opportunities[i].Score != opportunities[j].Score {
			return opportunities[i].Score > opportunities[j].Score
		}
		// При равной оценке Upsell раньше Cross-Sell, затем по имени
		if opportunities[i].Type != opportunities[j].Type {
			return opportunities[i].Type == recommendation.OpportunityUpsell
		}
		return opportunities[i].Product < opportunities[j].Product
	})

	if len(opportunities) > s.topN {
		opportunities = opportunities[:s.topN]
	}
	return opportunities
}

// scoreCandidate оценивает одного кандидата по трем сигналам:
// категорийному, peer-adoption и co-purchase
func (s *OpportunityScorer) scoreCandidate(
	product string,
	profile *models.CustomerProfile,
	purchasedCategories map[string]bool,
	missingByProduct map[string]recommendation.MissingOpportunity,
	relatedByProduct map[string]recommendation.RelatedSuggestion,
) recommendation.ScoredOpportunity {
	category := s.catalog.Category(product)

	opp := recommendation.ScoredOpportunity{
		Product: product,
		Score:   s.weights.Base,
	}

	// Категорийный сигнал: тип фиксируется здесь и больше не меняется
	if purchasedCategories[category] {
		opp.Type = recommendation.OpportunityUpsell
		opp.Reasons = append(opp.Reasons,
			fmt.Sprintf("Customer already purchases items in the '%s' category, suggesting an upsell.", category))
	} else {
		opp.Type = recommendation.OpportunityCrossSell
		opp.Reasons = append(opp.Reasons,
			fmt.Sprintf("Product is in a new category ('%s'), indicating a cross-sell opportunity.", category))
	}

	// Peer-adoption сигнал
	if m, ok := missingByProduct[product]; ok {
		opp.Score += s.weights.PeerWeight * float64(capInt(m.PeerAdoption, s.weights.PeerCap))
		opp.Reasons = append(opp.Reasons,
			fmt.Sprintf("Peers in the '%s' industry purchase '%s' (%d peer customers).", profile.Industry, product, m.PeerAdoption))
	}

	// Co-purchase сигнал
	if r, ok := relatedByProduct[product]; ok {
		opp.Score += s.weights.AffinityWeight * float64(capInt(r.CoOccurrence, s.weights.AffinityCap))
		opp.Reasons = append(opp.Reasons,
			fmt.Sprintf("Co-purchased %s with '%s' (%d shared customers).", coPurchaseDescriptor(r.CoOccurrence), r.SeedProduct, r.CoOccurrence))
	}

	return opp
}

// coPurchaseDescriptor качественный дескриптор силы co-occurrence связи
func coPurchaseDescriptor(count int) string {
	switch {
	case count >= 4:
		return "frequently"
	case count >= 2:
		return "multiple times"
	default:
		return "occasionally"
	}
}

func capInt(value, cap int) int {
	if cap > 0 && value > cap {
		return cap
	}
	return value
}
