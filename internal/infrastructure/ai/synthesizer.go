package ai

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"recommender/internal/domain/recommendation"
)

// ReportSynthesizer генерация нарративного отчета по результату пайплайна.
// Выход синтеза не входит в контракт корректности ядра.
type ReportSynthesizer interface {
	Synthesize(ctx context.Context, result *recommendation.Result) (string, error)
}

// usd принтер для форматирования сумм с разделителями разрядов
var usd = message.NewPrinter(language.English)

// buildCustomerOverview собирает секцию обзора клиента для отчета
func buildCustomerOverview(result *recommendation.Result) string {
	p := result.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "- Industry: %s\n", p.Industry)
	b.WriteString(usd.Sprintf("- Annual Revenue: $%.0f\n", p.AnnualRevenueUSD))
	fmt.Fprintf(&b, "- Number of Employees: %d\n", p.Employees)
	fmt.Fprintf(&b, "- Location: %s\n", p.Location)
	fmt.Fprintf(&b, "- Customer Priority: %s\n", p.PriorityRating)
	fmt.Fprintf(&b, "- Account Type: %s\n", p.AccountType)
	fmt.Fprintf(&b, "- Recent Purchases: %s", productList(result.FrequentProducts))
	return b.String()
}

// buildDataAnalysis собирает секцию анализа данных:
// паттерны покупок, бенчмаркинг пиров, affinity-анализ, оцененные возможности
func buildDataAnalysis(result *recommendation.Result) string {
	var b strings.Builder
	b.WriteString("Based on purchasing patterns:\n")
	fmt.Fprintf(&b, "- The customer frequently purchases: %s.\n", productList(result.FrequentProducts))

	if len(result.MissingOpportunities) > 0 {
		names := make([]string, 0, len(result.MissingOpportunities))
		for _, m := range result.MissingOpportunities {
			names = append(names, m.Product)
		}
		fmt.Fprintf(&b, "- Benchmarking against industry peers in '%s' reveals products like %s commonly purchased by similar companies, representing potential missing opportunities.\n",
			result.Profile.Industry, strings.Join(names, ", "))
	} else {
		b.WriteString("- No significant missing product opportunities identified from industry peers.\n")
	}

	if len(result.RelatedSuggestions) > 0 {
		summaries := make([]string, 0, len(result.RelatedSuggestions))
		for _, s := range result.RelatedSuggestions {
			summaries = append(summaries, fmt.Sprintf("%s (often co-purchased with %s)", s.Product, s.SeedProduct))
		}
		fmt.Fprintf(&b, "- Product affinity analysis suggests complementary items: %s.\n", strings.Join(summaries, "; "))
	} else {
		b.WriteString("- No specific product affinities identified across the customer base.\n")
	}

	if len(result.Opportunities) > 0 {
		b.WriteString("\nDetailed insights from scored opportunities:\n")
		for _, opp := range result.Opportunities {
			fmt.Fprintf(&b, "  - %s (%s) - Score: %.2f. Rationale: %s\n",
				opp.Product, opp.Type, opp.Score, strings.Join(opp.Reasons, " "))
		}
	} else {
		b.WriteString("\nNo specific cross-sell/upsell opportunities identified based on current data.")
	}

	return b.String()
}

// buildRecommendationsList собирает нумерованный список рекомендаций
func buildRecommendationsList(result *recommendation.Result) string {
	if len(result.Opportunities) == 0 {
		return "No specific recommendations could be generated at this time."
	}

	var b strings.Builder
	for i, opp := range result.Opportunities {
		fmt.Fprintf(&b, "%d. %s (Type: %s). Rationale: %s\n",
			i+1, opp.Product, opp.Type, strings.Join(opp.Reasons, " "))
	}
	return b.String()
}

func productList(frequent []recommendation.FrequentProduct) string {
	if len(frequent) == 0 {
		return "None"
	}
	names := make([]string, 0, len(frequent))
	for _, f := range frequent {
		names = append(names, f.Product)
	}
	return strings.Join(names, ", ")
}
