package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

// rec строит запись покупки для тестового набора
func rec(customerID, industry, product string, total float64) models.PurchaseRecord {
	return models.PurchaseRecord{
		CustomerID:    customerID,
		Product:       product,
		Quantity:      1,
		UnitPriceUSD:  total,
		TotalPriceUSD: total,
		PurchaseDate:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Industry:      industry,
	}
}

// testDataset общий набор данных: четыре клиента Electronics и один Construction
func testDataset() []models.PurchaseRecord {
	return []models.PurchaseRecord{
		// C001: частый покупатель дрелей
		rec("C001", "Electronics", "Drills", 199.99),
		rec("C001", "Electronics", "Drills", 199.99),
		rec("C001", "Electronics", "Drills", 199.99),
		rec("C001", "Electronics", "Drill Bits", 24.50),
		rec("C001", "Electronics", "Drill Bits", 24.50),
		// C002: пир с генераторным стеком
		rec("C002", "Electronics", "Drills", 199.99),
		rec("C002", "Electronics", "Generators", 1450.00),
		rec("C002", "Electronics", "Backup Batteries", 320.00),
		// C003: еще один пир с генераторами
		rec("C003", "Electronics", "Generators", 1450.00),
		rec("C003", "Electronics", "Backup Batteries", 320.00),
		// C004: пир с генератором и защитой
		rec("C004", "Electronics", "Generators", 1450.00),
		rec("C004", "Electronics", "Safety Gear", 89.90),
		// C005: другая отрасль, не пир для Electronics
		rec("C005", "Construction", "Protective Gloves", 12.75),
		rec("C005", "Construction", "Drills", 199.99),
	}
}

func customerRecords(all []models.PurchaseRecord, customerID string) []models.PurchaseRecord {
	var out []models.PurchaseRecord
	for _, r := range all {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out
}

func electronicsProfile(customerID string) *models.CustomerProfile {
	return &models.CustomerProfile{
		CustomerID:       customerID,
		CustomerName:     "Test Customer",
		Industry:         "Electronics",
		AnnualRevenueUSD: 5_000_000,
		Employees:        120,
		Location:         "Austin, TX",
		PriorityRating:   "High",
		AccountType:      "Enterprise",
	}
}

func TestPatternAnalyzer_FrequentProducts(t *testing.T) {
	all := testDataset()
	history := customerRecords(all, "C001")

	analyzer := NewPatternAnalyzer(5, 5)
	frequent, _, err := analyzer.Analyze(electronicsProfile("C001"), history, all)
	require.NoError(t, err)

	require.Len(t, frequent, 2)
	assert.Equal(t, "Drills", frequent[0].Product)
	assert.Equal(t, 3, frequent[0].PurchaseCount)
	assert.InDelta(t, 599.97, frequent[0].TotalSpendUSD, 0.001)
	assert.Equal(t, "Drill Bits", frequent[1].Product)
	assert.Equal(t, 2, frequent[1].PurchaseCount)

	// Сортировка по числу покупок убывающая
	for i := 1; i < len(frequent); i++ {
		assert.GreaterOrEqual(t, frequent[i-1].PurchaseCount, frequent[i].PurchaseCount)
	}
}

func TestPatternAnalyzer_MissingOpportunities(t *testing.T) {
	all := testDataset()
	history := customerRecords(all, "C001")

	analyzer := NewPatternAnalyzer(5, 5)
	_, missing, err := analyzer.Analyze(electronicsProfile("C001"), history, all)
	require.NoError(t, err)

	// Пиры той же отрасли покупают Generators (3), Backup Batteries (2), Safety Gear (1);
	// Protective Gloves покупает клиент другой отрасли и сюда не попадает
	require.Len(t, missing, 3)
	assert.Equal(t, "Generators", missing[0].Product)
	assert.Equal(t, 3, missing[0].PeerAdoption)
	assert.Equal(t, "Backup Batteries", missing[1].Product)
	assert.Equal(t, 2, missing[1].PeerAdoption)
	assert.Equal(t, "Safety Gear", missing[2].Product)
	assert.Equal(t, 1, missing[2].PeerAdoption)

	// Собственные продукты клиента не предлагаются
	for _, m := range missing {
		assert.NotContains(t, []string{"Drills", "Drill Bits"}, m.Product)
	}
}

func TestPatternAnalyzer_NoHistory(t *testing.T) {
	analyzer := NewPatternAnalyzer(5, 5)
	_, _, err := analyzer.Analyze(electronicsProfile("C010"), nil, testDataset())
	assert.ErrorIs(t, err, recommendation.ErrNoPurchaseHistory)
}

func TestPatternAnalyzer_SoleCustomerInIndustry(t *testing.T) {
	// Клиент — единственный в своей отрасли: пиров нет, missing пустой, но не ошибка
	all := []models.PurchaseRecord{
		rec("C100", "Aerospace", "Drills", 199.99),
		rec("C200", "Electronics", "Generators", 1450.00),
	}
	profile := &models.CustomerProfile{CustomerID: "C100", Industry: "Aerospace"}

	analyzer := NewPatternAnalyzer(5, 5)
	frequent, missing, err := analyzer.Analyze(profile, customerRecords(all, "C100"), all)
	require.NoError(t, err)
	assert.Len(t, frequent, 1)
	assert.Empty(t, missing)
}

func TestPatternAnalyzer_TopKLimit(t *testing.T) {
	all := testDataset()
	history := customerRecords(all, "C001")

	analyzer := NewPatternAnalyzer(1, 2)
	frequent, missing, err := analyzer.Analyze(electronicsProfile("C001"), history, all)
	require.NoError(t, err)
	assert.Len(t, frequent, 1)
	assert.Equal(t, "Drills", frequent[0].Product)
	assert.Len(t, missing, 2)
}

func TestPatternAnalyzer_Deterministic(t *testing.T) {
	all := testDataset()
	history := customerRecords(all, "C001")
	analyzer := NewPatternAnalyzer(5, 5)

	f1, m1, err := analyzer.Analyze(electronicsProfile("C001"), history, all)
	require.NoError(t, err)
	f2, m2, err := analyzer.Analyze(electronicsProfile("C001"), history, all)
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
	assert.Equal(t, m1, m2)
}
