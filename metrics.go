package stabiliser

import (
	"slices"
	"sync"
	"time"
)

/*
Metrics tracks what a Reconstructor has done. It is safe to share between
goroutines.

Latencies go into a fixed-size ring, and percentiles are only sorted out of it
when someone asks. Reconstruction cost grows with 2^k, so the average latency
is also kept per X-row count k.
*/
type Metrics struct {
	mu sync.RWMutex

	Reductions        int64
	ReductionFailures int64
	Reconstructions   int64
	ParallelRuns      int64
	AmplitudesWritten int64
	LargestVector     int
	TotalTime         time.Duration

	latencies []time.Duration
	next      int
	byXRows   map[int]*latencyStat
}

type latencyStat struct {
	count int64
	total time.Duration
}

func NewMetrics() *Metrics {
	return newMetricsWindow(1000)
}

func newMetricsWindow(size int) *Metrics {
	return &Metrics{
		latencies: make([]time.Duration, 0, size),
		byXRows:   make(map[int]*latencyStat),
	}
}

func (m *Metrics) recordReduction(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reductions++
	if err != nil {
		m.ReductionFailures++
	}
}

func (m *Metrics) recordReconstruction(startTime time.Time, size, xRows int, parallel bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reconstructions++
	m.AmplitudesWritten += int64(1) << uint(xRows)
	m.TotalTime += duration

	if parallel {
		m.ParallelRuns++
	}

	if size > m.LargestVector {
		m.LargestVector = size
	}

	// Overwrite the oldest sample once the ring is full.
	if len(m.latencies) < cap(m.latencies) {
		m.latencies = append(m.latencies, duration)
	} else {
		m.latencies[m.next] = duration
		m.next = (m.next + 1) % len(m.latencies)
	}

	stat, ok := m.byXRows[xRows]
	if !ok {
		stat = &latencyStat{}
		m.byXRows[xRows] = stat
	}
	stat.count++
	stat.total += duration
}

// Percentile returns the latency below which fraction p of the kept samples fall.
func (m *Metrics) Percentile(p float64) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return percentile(m.latencies, p)
}

func percentile(samples []time.Duration, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	return sorted[min(int(float64(len(sorted))*p), len(sorted)-1)]
}

func (m *Metrics) AverageLatency() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Reconstructions == 0 {
		return 0
	}
	return m.TotalTime / time.Duration(m.Reconstructions)
}

// LatencyByXRows returns the average reconstruction latency for each k seen.
func (m *Metrics) LatencyByXRows() map[int]time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[int]time.Duration, len(m.byXRows))
	for k, stat := range m.byXRows {
		out[k] = stat.total / time.Duration(stat.count)
	}
	return out
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	avg := m.AverageLatency()

	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"reductions":         m.Reductions,
		"reduction_failures": m.ReductionFailures,
		"reconstructions":    m.Reconstructions,
		"parallel_runs":      m.ParallelRuns,
		"amplitudes_written": m.AmplitudesWritten,
		"largest_vector":     m.LargestVector,
		"avg_latency":        avg.Microseconds(),
		"p95_latency":        percentile(m.latencies, 0.95).Microseconds(),
		"p99_latency":        percentile(m.latencies, 0.99).Microseconds(),
	}
}
