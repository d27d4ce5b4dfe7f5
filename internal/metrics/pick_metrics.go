// Package metrics collects timing and throughput statistics for the pick
// engine, for harness summaries and performance regression tracking.
package metrics

import (
	"sync/atomic"
	"time"
)

// PickMetrics tracks evaluation performance across a draft run.
type PickMetrics struct {
	// EvalLatency is the per-pick evaluation latency distribution.
	EvalLatency *Histogram

	// Counters
	PicksEvaluated atomic.Uint64
	CardsScored    atomic.Uint64

	startTime time.Time
}

// NewPickMetrics creates a new metrics collector.
func NewPickMetrics() *PickMetrics {
	return &PickMetrics{
		EvalLatency: NewHistogram(10000),
		startTime:   time.Now(),
	}
}

// RecordPick records one pick evaluation: its duration and the number of
// candidates scored.
func (m *PickMetrics) RecordPick(d time.Duration, candidates int) {
	m.EvalLatency.Record(d)
	m.PicksEvaluated.Add(1)
	m.CardsScored.Add(uint64(candidates))
}

// PickStats contains the computed statistics from metrics.
type PickStats struct {
	EvalLatency LatencyStats `json:"eval_latency"`

	PicksEvaluated uint64 `json:"picks_evaluated"`
	CardsScored    uint64 `json:"cards_scored"`

	Uptime string `json:"uptime"`
}

// LatencyStats contains statistics for a latency histogram.
type LatencyStats struct {
	Mean  float64 `json:"mean"` // milliseconds
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// GetStats returns a snapshot of the current statistics.
func (m *PickMetrics) GetStats() *PickStats {
	return &PickStats{
		EvalLatency: LatencyStats{
			Mean:  m.EvalLatency.Mean(),
			P50:   m.EvalLatency.Percentile(50),
			P95:   m.EvalLatency.Percentile(95),
			Max:   m.EvalLatency.Max(),
			Count: m.EvalLatency.Count(),
		},
		PicksEvaluated: m.PicksEvaluated.Load(),
		CardsScored:    m.CardsScored.Load(),
		Uptime:         time.Since(m.startTime).Round(time.Second).String(),
	}
}
