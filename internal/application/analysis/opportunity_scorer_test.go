package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

func newTestScorer(topN int) *OpportunityScorer {
	return NewOpportunityScorer(models.DefaultCategoryCatalog(), DefaultScoringWeights(), topN)
}

func TestOpportunityScorer_TwoSignalsOutrankOne(t *testing.T) {
	profile := electronicsProfile("C001")
	frequent := []recommendation.FrequentProduct{
		{Product: "Drills", PurchaseCount: 3},
		{Product: "Drill Bits", PurchaseCount: 2},
	}
	missing := []recommendation.MissingOpportunity{
		{Product: "Generators", PeerAdoption: 3},
		{Product: "Backup Batteries", PeerAdoption: 2},
		{Product: "Safety Gear", PeerAdoption: 1},
	}
	related := []recommendation.RelatedSuggestion{
		{Product: "Generators", SeedProduct: "Drills", CoOccurrence: 1},
		{Product: "Backup Batteries", SeedProduct: "Drills", CoOccurrence: 1},
		{Product: "Protective Gloves", SeedProduct: "Drills", CoOccurrence: 1},
	}

	opps := newTestScorer(5).Score(profile, frequent, missing, related)
	require.Len(t, opps, 4)

	// Generators: base 0.7 + peer 0.05*3 + affinity 0.05*1 = 0.90
	assert.Equal(t, "Generators", opps[0].Product)
	assert.InDelta(t, 0.90, opps[0].Score, 0.0001)
	assert.Equal(t, recommendation.OpportunityCrossSell, opps[0].Type)
	require.Len(t, opps[0].Reasons, 3)

	// Backup Batteries: 0.7 + 0.05*2 + 0.05*1 = 0.85
	assert.Equal(t, "Backup Batteries", opps[1].Product)
	assert.InDelta(t, 0.85, opps[1].Score, 0.0001)

	// Равный счет 0.75, оба Cross-Sell: алфавитный порядок
	assert.Equal(t, "Protective Gloves", opps[2].Product)
	assert.InDelta(t, 0.75, opps[2].Score, 0.0001)
	assert.Equal(t, "Safety Gear", opps[3].Product)
	assert.InDelta(t, 0.75, opps[3].Score, 0.0001)
}

func TestOpportunityScorer_UpsellClassification(t *testing.T) {
	profile := electronicsProfile("C001")
	frequent := []recommendation.FrequentProduct{{Product: "Drills", PurchaseCount: 3}}
	missing := []recommendation.MissingOpportunity{
		{Product: "Drill Bits", PeerAdoption: 2}, // та же категория, что и Drills
		{Product: "Generators", PeerAdoption: 2}, // новая категория
	}

	opps := newTestScorer(5).Score(profile, frequent, missing, nil)
	require.Len(t, opps, 2)

	byProduct := make(map[string]recommendation.ScoredOpportunity)
	for _, o := range opps {
		byProduct[o.Product] = o
	}

	up := byProduct["Drill Bits"]
	assert.Equal(t, recommendation.OpportunityUpsell, up.Type)
	assert.Contains(t, up.Reasons[0], "already purchases items in the 'Power Tools & Accessories' category")

	cross := byProduct["Generators"]
	assert.Equal(t, recommendation.OpportunityCrossSell, cross.Type)
	assert.Contains(t, cross.Reasons[0], "new category ('Power Tools & Equipment')")
}

func TestOpportunityScorer_UpsellBeforeCrossSellOnTie(t *testing.T) {
	profile := electronicsProfile("C001")
	frequent := []recommendation.FrequentProduct{{Product: "Drills", PurchaseCount: 3}}
	// Одинаковый peer-сигнал: Upsell должен идти раньше Cross-Sell
	missing := []recommendation.MissingOpportunity{
		{Product: "Generators", PeerAdoption: 2},
		{Product: "Drill Bits", PeerAdoption: 2},
	}

	opps := newTestScorer(5).Score(profile, frequent, missing, nil)
	require.Len(t, opps, 2)
	assert.Equal(t, "Drill Bits", opps[0].Product)
	assert.Equal(t, recommendation.OpportunityUpsell, opps[0].Type)
	assert.Equal(t, "Generators", opps[1].Product)
}

func TestOpportunityScorer_SignalCaps(t *testing.T) {
	profile := electronicsProfile("C001")
	frequent := []recommendation.FrequentProduct{{Product: "Drills", PurchaseCount: 3}}
	missing := []recommendation.MissingOpportunity{{Product: "Generators", PeerAdoption: 50}}
	related := []recommendation.RelatedSuggestion{{Product: "Generators", SeedProduct: "Drills", CoOccurrence: 50}}

	opps := newTestScorer(5).Score(profile, frequent, missing, related)
	require.Len(t, opps, 1)
	// Оба сигнала упираются в cap 4: 0.7 + 0.05*4 + 0.05*4 = 1.1
	assert.InDelta(t, 1.1, opps[0].Score, 0.0001)
	// Причины показывают фактические значения, не обрезанные
	assert.Contains(t, opps[0].Reasons[1], "(50 peer customers)")
	assert.Contains(t, opps[0].Reasons[2], "(50 shared customers)")
}

func TestOpportunityScorer_FrequentProductsExcluded(t *testing.T) {
	profile := electronicsProfile("C001")
	frequent := []recommendation.FrequentProduct{{Product: "Drills", PurchaseCount: 3}}
	related := []recommendation.RelatedSuggestion{
		{Product: "Drills", SeedProduct: "Drill Bits", CoOccurrence: 2},
		{Product: "Generators", SeedProduct: "Drills", CoOccurrence: 1},
	}

	opps := newTestScorer(5).Score(profile, frequent, nil, related)
	require.Len(t, opps, 1)
	assert.Equal(t, "Generators", opps[0].Product)
}

func TestOpportunityScorer_TopNAndNoDuplicates(t *testing.T) {
	profile := electronicsProfile("C001")
	missing := []recommendation.MissingOpportunity{
		{Product: "Generators", PeerAdoption: 4},
		{Product: "Backup Batteries", PeerAdoption: 3},
		{Product: "Safety Gear", PeerAdoption: 2},
		{Product: "Protective Gloves", PeerAdoption: 2},
		{Product: "Workflow Automation", PeerAdoption: 1},
		{Product: "Advanced Analytics", PeerAdoption: 1},
	}
	related := []recommendation.RelatedSuggestion{
		{Product: "Generators", SeedProduct: "Drills", CoOccurrence: 2},
	}

	opps := newTestScorer(5).Score(profile, nil, missing, related)
	assert.Len(t, opps, 5)

	seen := make(map[string]bool)
	for _, o := range opps {
		assert.False(t, seen[o.Product], "дубликат продукта %s", o.Product)
		seen[o.Product] = true
		assert.NotEmpty(t, o.Reasons)
	}
	for i := 1; i < len(opps); i++ {
		assert.GreaterOrEqual(t, opps[i-1].Score, opps[i].Score)
	}
}

func TestOpportunityScorer_EmptyCandidatePool(t *testing.T) {
	opps := newTestScorer(5).Score(electronicsProfile("C001"), nil, nil, nil)
	assert.Empty(t, opps)
}

func TestOpportunityScorer_UnknownProductCategory(t *testing.T) {
	profile := electronicsProfile("C001")
	missing := []recommendation.MissingOpportunity{{Product: "Quantum Widget", PeerAdoption: 1}}

	opps := newTestScorer(5).Score(profile, nil, missing, nil)
	require.Len(t, opps, 1)
	// Неизвестный продукт попадает в категорию Other и классифицируется как Cross-Sell
	assert.Equal(t, recommendation.OpportunityCrossSell, opps[0].Type)
	assert.Contains(t, opps[0].Reasons[0], "'Other'")
}

func TestCoPurchaseDescriptor(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{1, "occasionally"},
		{2, "multiple times"},
		{3, "multiple times"},
		{4, "frequently"},
		{10, "frequently"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, coPurchaseDescriptor(tt.count), "count=%d", tt.count)
	}
}
