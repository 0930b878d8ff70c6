package ai

import (
	"context"
	"fmt"
	"strings"

	"recommender/internal/domain/recommendation"
)

// TemplateSynthesizer детерминированный синтезатор отчетов без LLM.
// Используется, когда API-ключ не настроен: собирает отчет по тем же
// секциям, что и LLM-вариант, из готовых сигналов пайплайна.
type TemplateSynthesizer struct{}

// NewTemplateSynthesizer создает шаблонный синтезатор
func NewTemplateSynthesizer() *TemplateSynthesizer {
	return &TemplateSynthesizer{}
}

// Synthesize собирает отчет из фиксированного шаблона
func (s *TemplateSynthesizer) Synthesize(_ context.Context, result *recommendation.Result) (string, error) {
	p := result.Profile

	var b strings.Builder
	fmt.Fprintf(&b, "Research Report: Cross-Sell and Upsell Opportunities for %s\n\n", p.CustomerName)

	b.WriteString("Introduction:\n")
	fmt.Fprintf(&b, "This report analyzes recent purchasing behavior of %s and benchmarks against industry peers to identify cross-sell and upsell opportunities.\n\n", p.CustomerName)

	b.WriteString("Customer Overview:\n")
	b.WriteString(buildCustomerOverview(result))
	b.WriteString("\n\n")

	b.WriteString("Data Analysis:\n")
	b.WriteString(buildDataAnalysis(result))
	b.WriteString("\n\n")

	b.WriteString("Recommendations:\n")
	b.WriteString(buildRecommendationsList(result))
	b.WriteString("\n")

	b.WriteString("Conclusion:\n")
	b.WriteString("Targeted cross-sell and upsell campaigns focusing on these products can significantly increase revenue and customer satisfaction. Implementing these recommendations will strengthen the customer relationship and drive business growth.\n")

	return b.String(), nil
}
