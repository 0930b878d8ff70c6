package container

import (
	"log"

	rechandler "recommender/internal/api/handlers/recommendation"
	"recommender/internal/application/analysis"
	recapp "recommender/internal/application/recommendation"
	recdomain "recommender/internal/domain/recommendation"
	"recommender/internal/infrastructure/ai"
	"recommender/internal/infrastructure/export"
)

// GetRecommendationHandler возвращает HTTP обработчик рекомендаций,
// собирая пайплайн при первом обращении
func (c *Container) GetRecommendationHandler() (*rechandler.Handler, error) {
	if c.recommendationHandler != nil {
		return c.recommendationHandler, nil
	}

	analyzer := analysis.NewPatternAnalyzer(c.cfg.TopFrequent, c.cfg.TopMissing)
	miner := analysis.NewAffinityMiner(c.cfg.TopRelated)
	scorer := analysis.NewOpportunityScorer(c.catalog, analysis.ScoringWeights{
		Base:           c.cfg.ScoreBaseWeight,
		PeerWeight:     c.cfg.ScorePeerWeight,
		AffinityWeight: c.cfg.ScoreAffinityWeight,
		PeerCap:        c.cfg.ScorePeerCap,
		AffinityCap:    c.cfg.ScoreAffinityCap,
	}, c.cfg.TopOpportunities)

	service := recdomain.NewService(c.repo, analyzer, miner, scorer)

	useCase := recapp.NewUseCase(service, c.buildSynthesizer(), c.metrics)
	c.recommendationHandler = rechandler.NewHandler(useCase, export.NewExporter())
	return c.recommendationHandler, nil
}

// buildSynthesizer выбирает синтезатор отчетов:
// LLM при настроенном API-ключе, иначе детерминированный шаблон
func (c *Container) buildSynthesizer() ai.ReportSynthesizer {
	if c.cfg.AnthropicAPIKey == "" {
		log.Printf("ANTHROPIC_API_KEY не задан, отчеты генерируются по шаблону")
		return ai.NewTemplateSynthesizer()
	}

	return ai.NewAnthropicSynthesizer(ai.AnthropicConfig{
		APIKey:         c.cfg.AnthropicAPIKey,
		Model:          c.cfg.AnthropicModel,
		Timeout:        c.cfg.AITimeout,
		RequestsPerMin: c.cfg.AIRequestsPerMin,
	})
}
