package recommendation

import (
	"context"
	"fmt"
	"log"

	"recommender/internal/domain/models"
	"recommender/internal/domain/repositories"
)

// PatternAnalyzer контракт стадии анализа паттернов покупок
type PatternAnalyzer interface {
	Analyze(profile *models.CustomerProfile, history, allRecords []models.PurchaseRecord) ([]FrequentProduct, []MissingOpportunity, error)
}

// AffinityMiner контракт стадии co-occurrence анализа
type AffinityMiner interface {
	Mine(records []models.PurchaseRecord, version string, seeds []FrequentProduct, ownProducts map[string]bool) ([]RelatedSuggestion, error)
}

// OpportunityScorer контракт стадии скоринга
type OpportunityScorer interface {
	Score(profile *models.CustomerProfile, frequent []FrequentProduct, missing []MissingOpportunity, related []RelatedSuggestion) []ScoredOpportunity
}

// service реализация domain service: последовательная цепочка стадий,
// выход каждой стадии — строгий вход следующей
type service struct {
	repo     repositories.PurchaseRepository
	analyzer PatternAnalyzer
	miner    AffinityMiner
	scorer   OpportunityScorer
}

// NewService создает новый domain service для рекомендаций
func NewService(repo repositories.PurchaseRepository, analyzer PatternAnalyzer, miner AffinityMiner, scorer OpportunityScorer) Service {
	return &service{
		repo:     repo,
		analyzer: analyzer,
		miner:    miner,
		scorer:   scorer,
	}
}

// Recommend прогоняет пайплайн для одного клиента.
// Неизвестный customer_id обрывает пайплайн до аналитических стадий.
func (s *service) Recommend(ctx context.Context, customerID string) (*Result, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: empty customer id", ErrCustomerNotFound)
	}

	// Стадия 1: загрузка профиля и истории (короткое замыкание на not found)
	profile, err := s.repo.GetCustomerProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.GetCustomerRecords(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}

	allRecords, err := s.repo.GetAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase dataset: %w", err)
	}
	if len(allRecords) == 0 {
		return nil, ErrEmptyDataset
	}

	version, err := s.repo.DatasetVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset version: %w", err)
	}

	// Стадия 2: анализ паттернов
	frequent, missing, err := s.analyzer.Analyze(profile, history, allRecords)
	if err != nil {
		return nil, err
	}
	log.Printf("Клиент %s: %d частых продуктов, %d упущенных возможностей", customerID, len(frequent), len(missing))

	// Стадия 3: affinity-анализ
	related, err := s.miner.Mine(allRecords, version, frequent, models.DistinctProducts(history))
	if err != nil {
		return nil, err
	}

	// Стадия 4: скоринг
	opportunities := s.scorer.Score(profile, frequent, missing, related)
	log.Printf("Клиент %s: %d оцененных возможностей", customerID, len(opportunities))

	return &Result{
		Profile:              profile,
		FrequentProducts:     frequent,
		MissingOpportunities: missing,
		RelatedSuggestions:   related,
		Opportunities:        opportunities,
	}, nil
}
