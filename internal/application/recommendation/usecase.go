package recommendation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recommender/internal/domain/recommendation"
	"recommender/internal/infrastructure/ai"
	"recommender/internal/infrastructure/monitoring"
)

// Report итог полного прогона: нарративный отчет плюс структурированные рекомендации
type Report struct {
	CustomerID      string                     `json:"customer_id"`
	ResearchReport  string                     `json:"research_report"`
	Recommendations []StructuredRecommendation `json:"recommendations"`
}

// StructuredRecommendation структурированная рекомендация для API-ответа
type StructuredRecommendation struct {
	Product string `json:"product"`
	Type    string `json:"type"`
	Reason  string `json:"reason"`
}

// UseCase application-слой рекомендаций: пайплайн ядра + синтез отчета + метрики
type UseCase struct {
	service     recommendation.Service
	synthesizer ai.ReportSynthesizer
	metrics     *monitoring.PipelineMetrics
}

// NewUseCase создает новый use case рекомендаций
func NewUseCase(service recommendation.Service, synthesizer ai.ReportSynthesizer, metrics *monitoring.PipelineMetrics) *UseCase {
	return &UseCase{
		service:     service,
		synthesizer: synthesizer,
		metrics:     metrics,
	}
}

// GetOpportunities возвращает выход ядра без синтеза отчета
func (u *UseCase) GetOpportunities(ctx context.Context, customerID string) (*recommendation.Result, error) {
	started := time.Now()
	result, err := u.service.Recommend(ctx, customerID)
	if u.metrics != nil {
		u.metrics.Observe(time.Since(started), err != nil)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BuildReport прогоняет пайплайн и синтезирует нарративный отчет
func (u *UseCase) BuildReport(ctx context.Context, customerID string) (*Report, error) {
	result, err := u.GetOpportunities(ctx, customerID)
	if err != nil {
		return nil, err
	}

	report, err := u.synthesizer.Synthesize(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize report: %w", err)
	}

	return &Report{
		CustomerID:      customerID,
		ResearchReport:  report,
		Recommendations: structuredRecommendations(result),
	}, nil
}

// structuredRecommendations преобразует оцененные возможности в плоский список
// рекомендаций. Дубликатов по продукту нет по построению скорера.
func structuredRecommendations(result *recommendation.Result) []StructuredRecommendation {
	recs := make([]StructuredRecommendation, 0, len(result.Opportunities))
	for _, opp := range result.Opportunities {
		recs = append(recs, StructuredRecommendation{
			Product: opp.Product,
			Type:    string(opp.Type),
			Reason:  strings.Join(opp.Reasons, " "),
		})
	}
	return recs
}
