package upstream

import (
	"context"
	"sync"
	"time"

	"award-sync/core/endpoint"
)

// Stats is a snapshot of fetch counters.
type Stats struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	AvgLatencyMs int64 `json:"avg_latency_ms"`
}

// MetricsFetcher wraps a fetcher with request counters
type MetricsFetcher struct {
	inner        endpoint.Fetcher
	fetchCount   int64
	fetchErrors  int64
	totalLatency time.Duration
	mu           sync.RWMutex
}

// NewMetricsFetcher creates a metrics wrapper
func NewMetricsFetcher(inner endpoint.Fetcher) *MetricsFetcher {
	return &MetricsFetcher{inner: inner}
}

// Fetch delegates to the wrapped fetcher and records the outcome.
func (m *MetricsFetcher) Fetch(ctx context.Context, req endpoint.FetchRequest) (*endpoint.FetchResponse, error) {
	start := time.Now()
	resp, err := m.inner.Fetch(ctx, req)

	m.mu.Lock()
	m.fetchCount++
	m.totalLatency += time.Since(start)
	if err != nil {
		m.fetchErrors++
	}
	m.mu.Unlock()

	return resp, err
}

// Stats returns the current counters
func (m *MetricsFetcher) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Requests: m.fetchCount, Errors: m.fetchErrors}
	if m.fetchCount > 0 {
		s.AvgLatencyMs = (m.totalLatency / time.Duration(m.fetchCount)).Milliseconds()
	}
	return s
}
