package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "purchases_test.db")
	repo, err := NewSQLiteRepository(path, DBConfig{
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedTestData(t *testing.T, repo *SQLiteRepository) {
	t.Helper()
	ctx := context.Background()

	customers := []*models.CustomerProfile{
		{
			CustomerID:       "C001",
			CustomerName:     "Acme Electronics",
			Industry:         "Electronics",
			AnnualRevenueUSD: 5_000_000,
			Employees:        120,
			Location:         "Austin, TX",
			PriorityRating:   "High",
			AccountType:      "Enterprise",
			CurrentProducts:  []string{"Drills", "Drill Bits"},
		},
		{
			CustomerID:      "C002",
			CustomerName:    "Globex",
			Industry:        "Electronics",
			CurrentProducts: []string{"Generators"},
		},
	}
	for _, c := range customers {
		require.NoError(t, repo.UpsertCustomer(ctx, c, []string{c.Industry}))
	}

	purchases := []models.PurchaseRecord{
		{CustomerID: "C001", Product: "Drills", Quantity: 2, UnitPriceUSD: 199.99, TotalPriceUSD: 399.98,
			PurchaseDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "C001", Product: "Drill Bits", Quantity: 5, UnitPriceUSD: 24.50, TotalPriceUSD: 122.50,
			PurchaseDate: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "C002", Product: "Generators", Quantity: 1, UnitPriceUSD: 1450, TotalPriceUSD: 1450,
			PurchaseDate: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, p := range purchases {
		require.NoError(t, repo.InsertPurchase(ctx, p))
	}
}

func TestSQLiteRepository_GetCustomerProfile(t *testing.T) {
	repo := newTestRepository(t)
	seedTestData(t, repo)

	profile, err := repo.GetCustomerProfile(context.Background(), "C001")
	require.NoError(t, err)

	assert.Equal(t, "C001", profile.CustomerID)
	assert.Equal(t, "Acme Electronics", profile.CustomerName)
	assert.Equal(t, "Electronics", profile.Industry)
	assert.InDelta(t, 5_000_000, profile.AnnualRevenueUSD, 0.001)
	assert.Equal(t, 120, profile.Employees)
	assert.Equal(t, []string{"Drills", "Drill Bits"}, profile.CurrentProducts)
}

func TestSQLiteRepository_CustomerNotFound(t *testing.T) {
	repo := newTestRepository(t)
	seedTestData(t, repo)

	_, err := repo.GetCustomerProfile(context.Background(), "C999")
	assert.ErrorIs(t, err, recommendation.ErrCustomerNotFound)
}

func TestSQLiteRepository_GetCustomerRecords(t *testing.T) {
	repo := newTestRepository(t)
	seedTestData(t, repo)

	records, err := repo.GetCustomerRecords(context.Background(), "C001")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Drills", records[0].Product)
	assert.Equal(t, 2, records[0].Quantity)
	assert.InDelta(t, 399.98, records[0].TotalPriceUSD, 0.001)
	assert.Equal(t, 2024, records[0].PurchaseDate.Year())
	// Денормализованные атрибуты клиента присоединяются при выборке
	assert.Equal(t, "Electronics", records[0].Industry)
	assert.Equal(t, []string{"Drills", "Drill Bits"}, records[0].CurrentProducts)

	// Записи других клиентов не примешиваются
	other, err := repo.GetCustomerRecords(context.Background(), "C002")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "Generators", other[0].Product)

	// Неизвестный клиент — пустой результат, не ошибка
	none, err := repo.GetCustomerRecords(context.Background(), "C999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteRepository_GetAllRecords(t *testing.T) {
	repo := newTestRepository(t)
	seedTestData(t, repo)

	records, err := repo.GetAllRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSQLiteRepository_DatasetVersion(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	v0, err := repo.DatasetVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0:0", v0)

	seedTestData(t, repo)
	v1, err := repo.DatasetVersion(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, v0, v1)

	// Вставка меняет версию снимка
	require.NoError(t, repo.InsertPurchase(ctx, models.PurchaseRecord{
		CustomerID: "C001", Product: "Safety Gear", Quantity: 1,
		UnitPriceUSD: 89.90, TotalPriceUSD: 89.90,
		PurchaseDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}))
	v2, err := repo.DatasetVersion(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
}

func TestSQLiteRepository_UpsertCustomer(t *testing.T) {
	repo := newTestRepository(t)
	seedTestData(t, repo)
	ctx := context.Background()

	// Повторная вставка обновляет существующего клиента
	require.NoError(t, repo.UpsertCustomer(ctx, &models.CustomerProfile{
		CustomerID:   "C001",
		CustomerName: "Acme Electronics Inc",
		Industry:     "Manufacturing",
	}, nil))

	profile, err := repo.GetCustomerProfile(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, "Acme Electronics Inc", profile.CustomerName)
	assert.Equal(t, "Manufacturing", profile.Industry)
	assert.Empty(t, profile.CurrentProducts)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"", nil},
		{"Drills", []string{"Drills"}},
		{"Drills; Drill Bits", []string{"Drills", "Drill Bits"}},
		{"Drills, Drill Bits", []string{"Drills", "Drill Bits"}},
		{" Drills ;  ; Safety Gear ", []string{"Drills", "Safety Gear"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, splitList(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, 2024, parseDate("2024-03-15").Year())
	assert.Equal(t, time.March, parseDate("2024-03-15").Month())
	assert.Equal(t, 2024, parseDate("2024-03-15T10:30:00Z").Year())
	assert.Equal(t, 2024, parseDate("2024-03-15 10:30:00").Year())
	assert.True(t, parseDate("not a date").IsZero())
}
