package monitoring

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// PipelineMetrics метрики прогонов пайплайна: счетчики и латентность.
// Латентность пишется в HDR-гистограмму (микросекунды, до 60 секунд).
type PipelineMetrics struct {
	mu        sync.Mutex
	hist      *hdrhistogram.Histogram
	requests  int64
	failures  int64
	lastRun   time.Time
	startedAt time.Time
}

// MetricsSnapshot снимок метрик для отдачи наружу
type MetricsSnapshot struct {
	Requests   int64     `json:"requests"`
	Failures   int64     `json:"failures"`
	P50Millis  float64   `json:"latency_p50_ms"`
	P95Millis  float64   `json:"latency_p95_ms"`
	P99Millis  float64   `json:"latency_p99_ms"`
	MaxMillis  float64   `json:"latency_max_ms"`
	LastRunAt  time.Time `json:"last_run_at"`
	UptimeSecs float64   `json:"uptime_seconds"`
}

// NewPipelineMetrics создает метрики пайплайна
func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		hist:      hdrhistogram.New(1, 60_000_000, 3),
		startedAt: time.Now(),
	}
}

// Observe фиксирует один прогон пайплайна
func (m *PipelineMetrics) Observe(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	if failed {
		m.failures++
	}
	m.lastRun = time.Now()

	micros := duration.Microseconds()
	if micros < 1 {
		micros = 1
	}
	// RecordValue отклоняет значения вне границ гистограммы
	_ = m.hist.RecordValue(micros)
}

// Snapshot возвращает текущий снимок метрик
func (m *PipelineMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MetricsSnapshot{
		Requests:   m.requests,
		Failures:   m.failures,
		P50Millis:  float64(m.hist.ValueAtQuantile(50)) / 1000,
		P95Millis:  float64(m.hist.ValueAtQuantile(95)) / 1000,
		P99Millis:  float64(m.hist.ValueAtQuantile(99)) / 1000,
		MaxMillis:  float64(m.hist.Max()) / 1000,
		LastRunAt:  m.lastRun,
		UptimeSecs: time.Since(m.startedAt).Seconds(),
	}
}
