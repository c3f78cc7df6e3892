package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric is a single named value with optional labels.
type Metric struct {
	Name       string            `json:"name"`
	Value      float64           `json:"value"`
	Labels     map[string]string `json:"labels,omitempty"`
	LastUpdate time.Time         `json:"last_update"`
}

// TimerMetric aggregates durations for one timer name.
type TimerMetric struct {
	Count   int64   `json:"count"`
	Sum     float64 `json:"sum_ms"`
	Min     float64 `json:"min_ms"`
	Max     float64 `json:"max_ms"`
	Average float64 `json:"avg_ms"`
}

// Registry keeps all metrics in memory. There is no external metrics
// backend; the server exposes the registry as JSON.
type Registry struct {
	mu        sync.RWMutex
	counters  map[string]*Metric
	timers    map[string]*TimerMetric
	startTime time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		counters:  make(map[string]*Metric),
		timers:    make(map[string]*TimerMetric),
		startTime: time.Now(),
	}
}

var globalRegistry = NewRegistry()

// GetRegistry returns the process-wide registry.
func GetRegistry() *Registry {
	return globalRegistry
}

func metricKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		fmt.Fprintf(&b, ",%s=%s", k, labels[k])
	}
	return b.String()
}

// IncrementCounter adds one to a counter.
func (r *Registry) IncrementCounter(name string, labels map[string]string) {
	r.AddToCounter(name, 1, labels)
}

// AddToCounter adds an arbitrary delta to a counter.
func (r *Registry) AddToCounter(name string, delta float64, labels map[string]string) {
	key := metricKey(name, labels)

	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.counters[key]
	if !ok {
		m = &Metric{Name: name, Labels: labels}
		r.counters[key] = m
	}
	m.Value += delta
	m.LastUpdate = time.Now()
}

// RecordTimer records one duration sample.
func (r *Registry) RecordTimer(name string, d time.Duration, labels map[string]string) {
	key := metricKey(name, labels)
	ms := float64(d.Milliseconds())

	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.timers[key]
	if !ok {
		t = &TimerMetric{Min: ms, Max: ms}
		r.timers[key] = t
	}
	t.Count++
	t.Sum += ms
	if ms < t.Min {
		t.Min = ms
	}
	if ms > t.Max {
		t.Max = ms
	}
	t.Average = t.Sum / float64(t.Count)
}

// Snapshot returns a copy of everything the registry holds, suitable for
// JSON rendering.
func (r *Registry) Snapshot() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counters := make(map[string]Metric, len(r.counters))
	for k, v := range r.counters {
		counters[k] = *v
	}
	timers := make(map[string]TimerMetric, len(r.timers))
	for k, v := range r.timers {
		timers[k] = *v
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(r.startTime).Seconds(),
		"counters":       counters,
		"timers":         timers,
	}
}

// Reset clears the registry. Tests use this between cases.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = make(map[string]*Metric)
	r.timers = make(map[string]*TimerMetric)
	r.startTime = time.Now()
}

// IncrementCounter increments a counter on the global registry.
func IncrementCounter(name string, labels map[string]string) {
	globalRegistry.IncrementCounter(name, labels)
}

// RecordTimer records a duration on the global registry.
func RecordTimer(name string, d time.Duration, labels map[string]string) {
	globalRegistry.RecordTimer(name, d, labels)
}
