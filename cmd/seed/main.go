// Генератор демо-данных для системы рекомендаций.
// Наполняет хранилище клиентами и историей покупок,
// распределение продуктов привязано к отраслям.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"recommender/internal/config"
	"recommender/internal/domain/models"
	"recommender/internal/infrastructure/persistence"
)

// industryProducts типичные продукты по отраслям: первые продукты в списке
// покупаются чаще, хвост списка — реже. Пересечения между отраслями
// дают co-occurrence сигнал для анализа.
var industryProducts = map[string][]string{
	"Construction":  {"Drills", "Drill Bits", "Protective Gloves", "Safety Gear", "Generators"},
	"Electronics":   {"Drills", "Drill Bits", "Generators", "Backup Batteries", "Safety Gear"},
	"Manufacturing": {"Generators", "Backup Batteries", "Safety Gear", "Protective Gloves", "Drills"},
	"Technology":    {"Workflow Automation", "Collaboration Suite", "API Integrations", "Advanced Analytics"},
	"Logistics":     {"Safety Gear", "Protective Gloves", "Generators", "Workflow Automation"},
}

var industries = []string{"Construction", "Electronics", "Manufacturing", "Technology", "Logistics"}

var priorityRatings = []string{"High", "Medium", "Low"}

var accountTypes = []string{"Enterprise", "SMB", "Startup"}

var productPrices = map[string]float64{
	"Drills":              199.99,
	"Drill Bits":          24.50,
	"Generators":          1450.00,
	"Backup Batteries":    320.00,
	"Protective Gloves":   12.75,
	"Safety Gear":         89.90,
	"Workflow Automation": 2400.00,
	"Collaboration Suite": 1800.00,
	"API Integrations":    950.00,
	"Advanced Analytics":  3200.00,
}

func main() {
	customerCount := flag.Int("customers", 25, "количество клиентов")
	maxPurchases := flag.Int("max-purchases", 12, "максимум покупок на клиента")
	seed := flag.Int64("seed", 42, "seed генератора")
	flag.Parse()

	gofakeit.Seed(*seed)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	ctx := context.Background()
	seeder, err := persistence.NewSeeder(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer seeder.Close()

	log.Printf("Генерация %d клиентов (драйвер: %s)...", *customerCount, cfg.DBDriver)

	totalPurchases := 0
	for i := 0; i < *customerCount; i++ {
		industry := industries[i%len(industries)]
		profile, tags := generateCustomer(i+1, industry)

		if err := seeder.UpsertCustomer(ctx, profile, tags); err != nil {
			log.Fatalf("Ошибка записи клиента %s: %v", profile.CustomerID, err)
		}

		purchases := generatePurchases(profile, *maxPurchases)
		for _, p := range purchases {
			if err := seeder.InsertPurchase(ctx, p); err != nil {
				log.Fatalf("Ошибка записи покупки для %s: %v", profile.CustomerID, err)
			}
		}
		totalPurchases += len(purchases)
	}

	log.Printf("✓ Готово: %d клиентов, %d покупок", *customerCount, totalPurchases)
}

// generateCustomer создает профиль клиента с продуктами его отрасли
func generateCustomer(seq int, industry string) (*models.CustomerProfile, []string) {
	pool := industryProducts[industry]

	// Текущие продукты: префикс отраслевого списка разной длины,
	// поэтому у части клиентов хвост списка отсутствует
	ownCount := 1 + gofakeit.Number(0, len(pool)-2)
	current := make([]string, ownCount)
	copy(current, pool[:ownCount])

	profile := &models.CustomerProfile{
		CustomerID:       fmt.Sprintf("C%03d", seq),
		CustomerName:     gofakeit.Company(),
		Industry:         industry,
		AnnualRevenueUSD: float64(gofakeit.Number(500, 90000)) * 1000,
		Employees:        gofakeit.Number(10, 5000),
		Location:         gofakeit.City() + ", " + gofakeit.StateAbr(),
		PriorityRating:   priorityRatings[gofakeit.Number(0, len(priorityRatings)-1)],
		AccountType:      accountTypes[gofakeit.Number(0, len(accountTypes)-1)],
		CurrentProducts:  current,
	}

	tags := []string{industry, profile.AccountType}
	return profile, tags
}

// generatePurchases строит историю покупок по текущим продуктам клиента.
// Первые продукты списка получают больше покупок, что дает
// детерминируемый частотный профиль.
func generatePurchases(profile *models.CustomerProfile, maxPurchases int) []models.PurchaseRecord {
	records := make([]models.PurchaseRecord, 0, maxPurchases)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for rank, product := range profile.CurrentProducts {
		// Чем выше продукт в списке, тем больше покупок
		count := gofakeit.Number(1, 3) + (len(profile.CurrentProducts) - rank)
		if len(records)+count > maxPurchases {
			count = maxPurchases - len(records)
		}

		price := productPrices[product]
		if price == 0 {
			price = gofakeit.Price(20, 2000)
		}

		for j := 0; j < count; j++ {
			qty := gofakeit.Number(1, 8)
			records = append(records, models.PurchaseRecord{
				CustomerID:    profile.CustomerID,
				Product:       product,
				Quantity:      qty,
				UnitPriceUSD:  price,
				TotalPriceUSD: price * float64(qty),
				PurchaseDate:  start.AddDate(0, gofakeit.Number(0, 11), gofakeit.Number(0, 27)),
			})
		}

		if len(records) >= maxPurchases {
			break
		}
	}

	return records
}
