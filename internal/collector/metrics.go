package collector

import (
	"sort"
	"time"
)

// Metrics contains aggregated show results.
type Metrics struct {
	Effects       int                       `json:"effects"`
	Ticks         int                       `json:"ticks"`
	EffectsPerMin float64                   `json:"effectsPerMin"`
	TestDuration  time.Duration             `json:"testDuration"`
	Duration      DurationMetrics           `json:"durations"`
	Last          string                    `json:"last"`
	PerEffect     map[string]*EffectMetrics `json:"perEffect"`
}

// DurationMetrics contains effect run-time statistics.
type DurationMetrics struct {
	Min time.Duration `json:"min"`
	Max time.Duration `json:"max"`
	Avg time.Duration `json:"avg"`
	P50 time.Duration `json:"p50"`
	P90 time.Duration `json:"p90"`
	P99 time.Duration `json:"p99"`
}

// EffectMetrics contains statistics for one effect kind.
type EffectMetrics struct {
	Count    int             `json:"count"`
	Ticks    int             `json:"ticks"`
	Duration DurationMetrics `json:"durations"`
}

// Share is the fraction of all runs taken by this effect, in percent.
func (e *EffectMetrics) Share(total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(e.Count) / float64(total) * 100
}

// ComputePercentile returns the nearest-rank percentile p (0..1) of an
// ascending slice.
func ComputePercentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}

// ComputeDurationMetrics calculates all duration statistics.
func ComputeDurationMetrics(durations []time.Duration) DurationMetrics {
	if len(durations) == 0 {
		return DurationMetrics{}
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return DurationMetrics{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: total / time.Duration(len(sorted)),
		P50: ComputePercentile(sorted, 0.50),
		P90: ComputePercentile(sorted, 0.90),
		P99: ComputePercentile(sorted, 0.99),
	}
}
