package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPipelineMetrics_Observe(t *testing.T) {
	m := NewPipelineMetrics()

	m.Observe(10*time.Millisecond, false)
	m.Observe(20*time.Millisecond, false)
	m.Observe(30*time.Millisecond, true)

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.Requests)
	assert.Equal(t, int64(1), s.Failures)
	assert.False(t, s.LastRunAt.IsZero())
	assert.InDelta(t, 30, s.MaxMillis, 1.0)
	assert.GreaterOrEqual(t, s.P95Millis, s.P50Millis)
}

func TestPipelineMetrics_EmptySnapshot(t *testing.T) {
	s := NewPipelineMetrics().Snapshot()
	assert.Equal(t, int64(0), s.Requests)
	assert.Equal(t, int64(0), s.Failures)
	assert.True(t, s.LastRunAt.IsZero())
}

func TestPipelineMetrics_OutOfRangeDuration(t *testing.T) {
	m := NewPipelineMetrics()

	// Значения вне границ гистограммы не должны ронять счетчики
	m.Observe(0, false)
	m.Observe(2*time.Hour, false)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Requests)
}

func TestPipelineMetrics_ConcurrentObserve(t *testing.T) {
	m := NewPipelineMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Observe(5*time.Millisecond, false)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.Snapshot().Requests)
}
