package analysis

import (
	"log"
	"sort"
	"sync"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

// pairKey нормализованный ключ неупорядоченной пары продуктов (a < b)
type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x < y {
		return pairKey{a: x, b: y}
	}
	return pairKey{a: y, b: x}
}

// affinityIndex построенный co-occurrence индекс для одного снимка данных.
// После построения только читается.
type affinityIndex struct {
	version string
	// counts[pair] = число уникальных клиентов, купивших оба продукта
	counts map[pairKey]int
	// neighbors[product] = связанные продукты с их co-occurrence
	neighbors map[string]map[string]int
}

// AffinityMiner вторая аналитическая стадия: co-occurrence анализ по всей базе.
// Индекс строится один раз на версию снимка данных под мьютексом и дальше
// раздается как неизменяемый снимок (build-once-then-freeze).
type AffinityMiner struct {
	topPerSeed int

	mu    sync.Mutex
	index *affinityIndex
}

// NewAffinityMiner создает новый affinity-майнер
func NewAffinityMiner(topPerSeed int) *AffinityMiner {
	if topPerSeed <= 0 {
		topPerSeed = 3
	}
	return &AffinityMiner{topPerSeed: topPerSeed}
}

// Mine возвращает связанные продукты для каждого из частых продуктов клиента.
// ownProducts исключаются из предложений, как и сами seed-продукты.
// Возвращает ErrEmptyDataset, если таблица покупок пуста.
func (m *AffinityMiner) Mine(records []models.PurchaseRecord, version string, seeds []recommendation.FrequentProduct, ownProducts map[string]bool) ([]recommendation.RelatedSuggestion, error) {
	if len(records) == 0 {
		return nil, recommendation.ErrEmptyDataset
	}

	idx := m.indexFor(records, version)

	// Для каждого seed берем top-N соседей, детерминированно:
	// count desc, затем имя продукта asc
	suggestions := make([]recommendation.RelatedSuggestion, 0, len(seeds)*m.topPerSeed)
	for _, seed := range seeds {
		neighbors := idx.neighbors[seed.Product]
		if len(neighbors) == 0 {
			// seed ни с чем не co-occurs — не ошибка, просто нет предложений
			continue
		}

		candidates := make([]recommendation.RelatedSuggestion, 0, len(neighbors))
		for product, count := range neighbors {
			if product == seed.Product || ownProducts[product] {
				continue
			}
			candidates = append(candidates, recommendation.RelatedSuggestion{
				Product:      product,
				SeedProduct:  seed.Product,
				CoOccurrence: count,
			})
		}

		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].CoOccurrence != candidates[j].CoOccurrence {
				return candidates[i].CoOccurrence > candidates[j].CoOccurrence
			}
			return candidates[i].Product < candidates[j].Product
		})

		if len(candidates) > m.topPerSeed {
			candidates = candidates[:m.topPerSeed]
		}
		suggestions = append(suggestions, candidates...)
	}

	return dedupeSuggestions(suggestions), nil
}

// CoOccurrence возвращает счетчик co-occurrence пары продуктов
// из текущего индекса. Симметричен по построению.
func (m *AffinityMiner) CoOccurrence(a, b string) int {
	m.mu.Lock()
	idx := m.index
	m.mu.Unlock()
	if idx == nil {
		return 0
	}
	return idx.counts[newPairKey(a, b)]
}

// Edges возвращает все ребра текущего индекса (для диагностики и тестов)
func (m *AffinityMiner) Edges() []recommendation.AffinityEdge {
	m.mu.Lock()
	idx := m.index
	m.mu.Unlock()
	if idx == nil {
		return nil
	}

	edges := make([]recommendation.AffinityEdge, 0, len(idx.counts))
	for key, count := range idx.counts {
		edges = append(edges, recommendation.AffinityEdge{
			ProductA:     key.a,
			ProductB:     key.b,
			CoOccurrence: count,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].ProductA != edges[j].ProductA {
			return edges[i].ProductA < edges[j].ProductA
		}
		return edges[i].ProductB < edges[j].ProductB
	})
	return edges
}

// indexFor возвращает индекс для версии снимка, строя его при необходимости.
// Однократная сборка под мьютексом, чтение — из неизменяемого снимка.
func (m *AffinityMiner) indexFor(records []models.PurchaseRecord, version string) *affinityIndex {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index != nil && m.index.version == version {
		return m.index
	}

	log.Printf("Построение co-occurrence индекса (версия снимка %s, записей: %d)", version, len(records))
	m.index = buildAffinityIndex(records, version)
	log.Printf("Индекс построен: %d пар продуктов", len(m.index.counts))
	return m.index
}

// buildAffinityIndex строит индекс: по каждому клиенту собирается множество
// уникальных продуктов, каждая неупорядоченная пара инкрементирует счетчик.
func buildAffinityIndex(records []models.PurchaseRecord, version string) *affinityIndex {
	byCustomer := make(map[string]map[string]bool)
	for _, r := range records {
		if r.Product == "" {
			continue
		}
		if byCustomer[r.CustomerID] == nil {
			byCustomer[r.CustomerID] = make(map[string]bool)
		}
		byCustomer[r.CustomerID][r.Product] = true
	}

	idx := &affinityIndex{
		version:   version,
		counts:    make(map[pairKey]int),
		neighbors: make(map[string]map[string]int),
	}

	for _, products := range byCustomer {
		list := make([]string, 0, len(products))
		for p := range products {
			list = append(list, p)
		}
		sort.Strings(list)

		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				idx.counts[newPairKey(list[i], list[j])]++
				idx.addNeighbor(list[i], list[j])
				idx.addNeighbor(list[j], list[i])
			}
		}
	}

	return idx
}

func (idx *affinityIndex) addNeighbor(from, to string) {
	if idx.neighbors[from] == nil {
		idx.neighbors[from] = make(map[string]int)
	}
	idx.neighbors[from][to]++
}

// dedupeSuggestions убирает дубликаты по имени продукта.
// Остается предложение с максимальным co-occurrence; при равенстве — первое
// встреченное (порядок seed-ов детерминирован, поэтому результат стабилен).
func dedupeSuggestions(suggestions []recommendation.RelatedSuggestion) []recommendation.RelatedSuggestion {
	best := make(map[string]recommendation.RelatedSuggestion)
	order := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		existing, ok := best[s.Product]
		if !ok {
			best[s.Product] = s
			order = append(order, s.Product)
			continue
		}
		if s.CoOccurrence > existing.CoOccurrence {
			best[s.Product] = s
		}
	}

	result := make([]recommendation.RelatedSuggestion, 0, len(best))
	for _, product := range order {
		result = append(result, best[product])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CoOccurrence != result[j].CoOccurrence {
			return result[i].CoOccurrence > result[j].CoOccurrence
		}
		return result[i].Product < result[j].Product
	})
	return result
}
