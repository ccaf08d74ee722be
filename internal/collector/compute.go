package collector

import (
	"time"

	"flicker/internal/core"
)

// ComputeMetrics computes metrics from events. Pure function, no side effects.
// Run time is measured with wraparound-safe clock arithmetic.
func ComputeMetrics(events []core.Event, testDuration time.Duration) *Metrics {
	m := &Metrics{
		PerEffect:    make(map[string]*EffectMetrics),
		TestDuration: testDuration,
	}

	if len(events) == 0 {
		return m
	}

	all := make([]time.Duration, 0, len(events))
	perEffect := make(map[string][]time.Duration)

	var lastSeq uint64
	for _, e := range events {
		m.Effects++
		m.Ticks += e.Ticks
		if e.Sequence >= lastSeq {
			lastSeq = e.Sequence
			m.Last = e.Effect
		}

		d := core.Elapsed(e.Finished, e.Started).Duration()
		all = append(all, d)

		em, ok := m.PerEffect[e.Effect]
		if !ok {
			em = &EffectMetrics{}
			m.PerEffect[e.Effect] = em
		}
		em.Count++
		em.Ticks += e.Ticks
		perEffect[e.Effect] = append(perEffect[e.Effect], d)
	}

	if m.TestDuration > 0 {
		m.EffectsPerMin = float64(m.Effects) / m.TestDuration.Minutes()
	}

	m.Duration = ComputeDurationMetrics(all)
	for name, durations := range perEffect {
		m.PerEffect[name].Duration = ComputeDurationMetrics(durations)
	}

	return m
}
