package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts parse requests by the source that resolved them.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	sources   map[string]*SourceMetrics
	languages map[string]int64

	// Recent durations, oldest first.
	durations    []time.Duration
	maxDurations int
}

// SourceMetrics are the counters for one parse source.
type SourceMetrics struct {
	count         atomic.Int64
	totalDuration atomic.Int64 // milliseconds
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		sources:      make(map[string]*SourceMetrics),
		languages:    make(map[string]int64),
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
}

// RecordParse records a completed parse.
func (m *Metrics) RecordParse(language, source string, duration time.Duration) {
	m.requestTotal.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.languages[language]++

	sm := m.sourceLocked(source)
	sm.count.Add(1)
	sm.totalDuration.Add(duration.Milliseconds())
}

// RecordFailure records a rejected request.
func (m *Metrics) RecordFailure() {
	m.requestTotal.Add(1)
	m.requestFailed.Add(1)
}

// sourceLocked gets or creates the counters of source. m.mu must be held.
func (m *Metrics) sourceLocked(source string) *SourceMetrics {
	sm, ok := m.sources[source]
	if !ok {
		sm = &SourceMetrics{}
		m.sources[source] = sm
	}
	return sm
}

// Reset resets all metrics.
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)

	m.mu.Lock()
	m.sources = make(map[string]*SourceMetrics)
	m.languages = make(map[string]int64)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources := make(map[string]*SourceMetricsSnapshot, len(m.sources))
	for name, sm := range m.sources {
		s := &SourceMetricsSnapshot{
			Count:         sm.count.Load(),
			TotalDuration: sm.totalDuration.Load(),
		}
		if s.Count > 0 {
			s.AverageDuration = s.TotalDuration / s.Count
		}
		sources[name] = s
	}
	languages := make(map[string]int64, len(m.languages))
	for lang, n := range m.languages {
		languages[lang] = n
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		Sources:       sources,
		Languages:     languages,
		P95Duration:   percentile(m.durations, 0.95).Milliseconds(),
	}
}

func percentile(durations []time.Duration, p float64) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	RequestTotal  int64                             `json:"request_total"`
	RequestFailed int64                             `json:"request_failed"`
	Sources       map[string]*SourceMetricsSnapshot `json:"sources"`
	Languages     map[string]int64                  `json:"languages"`
	P95Duration   int64                             `json:"p95_duration_ms"`
}

// SourceMetricsSnapshot is the snapshot of one source.
type SourceMetricsSnapshot struct {
	Count           int64 `json:"count"`
	TotalDuration   int64 `json:"total_duration_ms"`
	AverageDuration int64 `json:"average_duration_ms"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
