package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	r := NewRegistry()

	r.IncrementCounter("http_requests", map[string]string{"path": "/api/v1/chats"})
	r.IncrementCounter("http_requests", map[string]string{"path": "/api/v1/chats"})
	r.AddToCounter("http_requests", 3, map[string]string{"path": "/health"})

	snap := r.Snapshot()
	counters := snap["counters"].(map[string]Metric)

	assert.Equal(t, 2.0, counters["http_requests,path=/api/v1/chats"].Value)
	assert.Equal(t, 3.0, counters["http_requests,path=/health"].Value)
}

func TestCounterWithoutLabels(t *testing.T) {
	r := NewRegistry()
	r.IncrementCounter("startups", nil)

	counters := r.Snapshot()["counters"].(map[string]Metric)
	assert.Equal(t, 1.0, counters["startups"].Value)
}

func TestLabelOrderDoesNotSplitSeries(t *testing.T) {
	r := NewRegistry()
	r.IncrementCounter("req", map[string]string{"a": "1", "b": "2"})
	r.IncrementCounter("req", map[string]string{"b": "2", "a": "1"})

	counters := r.Snapshot()["counters"].(map[string]Metric)
	require.Len(t, counters, 1)
	assert.Equal(t, 2.0, counters["req,a=1,b=2"].Value)
}

func TestTimers(t *testing.T) {
	r := NewRegistry()

	r.RecordTimer("op", 10*time.Millisecond, nil)
	r.RecordTimer("op", 30*time.Millisecond, nil)
	r.RecordTimer("op", 20*time.Millisecond, nil)

	timers := r.Snapshot()["timers"].(map[string]TimerMetric)
	tm := timers["op"]
	assert.Equal(t, int64(3), tm.Count)
	assert.Equal(t, 60.0, tm.Sum)
	assert.Equal(t, 10.0, tm.Min)
	assert.Equal(t, 30.0, tm.Max)
	assert.Equal(t, 20.0, tm.Average)
}

func TestReset(t *testing.T) {
	r := NewRegistry()
	r.IncrementCounter("x", nil)
	r.RecordTimer("y", time.Millisecond, nil)

	r.Reset()

	snap := r.Snapshot()
	assert.Empty(t, snap["counters"].(map[string]Metric))
	assert.Empty(t, snap["timers"].(map[string]TimerMetric))
}

func TestConcurrentUpdates(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.IncrementCounter("concurrent", nil)
				r.RecordTimer("concurrent_timer", time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()

	counters := r.Snapshot()["counters"].(map[string]Metric)
	assert.Equal(t, 1000.0, counters["concurrent"].Value)
	timers := r.Snapshot()["timers"].(map[string]TimerMetric)
	assert.Equal(t, int64(1000), timers["concurrent_timer"].Count)
}
