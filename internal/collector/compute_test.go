package collector

import (
	"math"
	"testing"
	"time"

	"flicker/internal/core"
)

func TestComputeMetrics_EmptyEvents(t *testing.T) {
	m := ComputeMetrics(nil, 10*time.Second)

	if m.Effects != 0 {
		t.Errorf("expected 0 effects, got %d", m.Effects)
	}
	if m.TestDuration != 10*time.Second {
		t.Errorf("expected 10s duration, got %v", m.TestDuration)
	}
}

func TestComputeMetrics_EffectsPerMin(t *testing.T) {
	events := make([]core.Event, 30)
	for i := range events {
		events[i] = core.Event{Effect: "steady_on", Sequence: uint64(i + 1)}
	}

	m := ComputeMetrics(events, 30*time.Second)

	if m.EffectsPerMin != 60.0 {
		t.Errorf("expected 60 effects/min, got %.1f", m.EffectsPerMin)
	}
}

func TestComputeMetrics_RunTimeAcrossClockWrap(t *testing.T) {
	events := []core.Event{
		{Effect: "dropout", Started: math.MaxUint32 - 999, Finished: 6000, Sequence: 1},
	}

	m := ComputeMetrics(events, time.Minute)

	if m.Duration.Max != 7*time.Second {
		t.Errorf("expected 7s run time across wrap, got %v", m.Duration.Max)
	}
}

func TestComputeMetrics_PerEffect(t *testing.T) {
	events := []core.Event{
		{Effect: "bad_wiring", Started: 0, Finished: 2000, Ticks: 100, Sequence: 1},
		{Effect: "bad_wiring", Started: 2000, Finished: 8000, Ticks: 300, Sequence: 2},
		{Effect: "random_flicker", Started: 8000, Finished: 8000, Ticks: 1, Sequence: 3},
	}

	m := ComputeMetrics(events, time.Minute)

	bw := m.PerEffect["bad_wiring"]
	if bw.Count != 2 || bw.Ticks != 400 {
		t.Errorf("bad_wiring: expected 2 runs / 400 ticks, got %d / %d", bw.Count, bw.Ticks)
	}
	if bw.Duration.Avg != 4*time.Second {
		t.Errorf("expected 4s average, got %v", bw.Duration.Avg)
	}
	if bw.Duration.Min != 2*time.Second || bw.Duration.Max != 6*time.Second {
		t.Errorf("unexpected min/max: %v / %v", bw.Duration.Min, bw.Duration.Max)
	}
	if share := m.PerEffect["random_flicker"].Share(m.Effects); math.Abs(share-33.333) > 0.01 {
		t.Errorf("expected ~33.3%% share, got %.3f", share)
	}
}

func TestComputeMetrics_LastBySequence(t *testing.T) {
	events := []core.Event{
		{Effect: "ramp_off", Sequence: 5},
		{Effect: "dropout", Sequence: 3},
	}

	m := ComputeMetrics(events, time.Second)

	if m.Last != "ramp_off" {
		t.Errorf("expected last effect ramp_off, got %q", m.Last)
	}
}

func TestComputePercentile(t *testing.T) {
	durations := []time.Duration{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		p    float64
		want time.Duration
	}{
		{0, 10},
		{0.50, 50},
		{0.90, 90},
		{1, 100},
	}
	for _, tt := range tests {
		if got := ComputePercentile(durations, tt.p); got != tt.want {
			t.Errorf("ComputePercentile(p=%.2f) = %d, expected %d", tt.p, got, tt.want)
		}
	}

	if ComputePercentile(nil, 0.5) != 0 {
		t.Error("empty slice should yield 0")
	}
}

func TestComputeDurationMetrics_DoesNotMutateInput(t *testing.T) {
	durations := []time.Duration{30, 10, 20}
	ComputeDurationMetrics(durations)

	if durations[0] != 30 {
		t.Error("input slice was sorted in place")
	}
}
