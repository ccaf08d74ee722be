package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// FormatText writes metrics in human-readable format.
func FormatText(w io.Writer, m *Metrics) {
	if m.Effects == 0 {
		fmt.Fprintln(w, "No effects finished")
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flicker - Show Results")
	fmt.Fprintln(w, "======================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Duration:       %v\n", m.TestDuration.Round(time.Millisecond))
	fmt.Fprintf(w, "Effects:        %s\n", formatNumber(m.Effects))
	fmt.Fprintf(w, "Ticks:          %s\n", formatNumber(m.Ticks))
	fmt.Fprintf(w, "Effects/min:    %.1f\n", m.EffectsPerMin)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run Times:")
	fmt.Fprintf(w, "  Min:    %s\n", FormatDuration(m.Duration.Min))
	fmt.Fprintf(w, "  Avg:    %s\n", FormatDuration(m.Duration.Avg))
	fmt.Fprintf(w, "  P50:    %s\n", FormatDuration(m.Duration.P50))
	fmt.Fprintf(w, "  P90:    %s\n", FormatDuration(m.Duration.P90))
	fmt.Fprintf(w, "  P99:    %s\n", FormatDuration(m.Duration.P99))
	fmt.Fprintf(w, "  Max:    %s\n", FormatDuration(m.Duration.Max))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "By Effect:")
	for _, name := range effectNames(m) {
		em := m.PerEffect[name]
		fmt.Fprintf(w, "  %-15s %s runs (%4.1f%%)  avg=%s  max=%s\n",
			name, formatNumber(em.Count), em.Share(m.Effects),
			FormatDuration(em.Duration.Avg),
			FormatDuration(em.Duration.Max))
	}
}

// FormatJSON writes metrics in JSON format.
func FormatJSON(w io.Writer, m *Metrics) {
	output := struct {
		Duration      string                       `json:"duration"`
		Effects       int                          `json:"effects"`
		Ticks         int                          `json:"ticks"`
		EffectsPerMin float64                      `json:"effectsPerMin"`
		Last          string                       `json:"last,omitempty"`
		Durations     jsonDurationMetrics          `json:"durations"`
		PerEffect     map[string]jsonEffectMetrics `json:"perEffect"`
	}{
		Duration:      m.TestDuration.Round(time.Millisecond).String(),
		Effects:       m.Effects,
		Ticks:         m.Ticks,
		EffectsPerMin: m.EffectsPerMin,
		Last:          m.Last,
		Durations:     toJSONDurationMetrics(m.Duration),
		PerEffect:     make(map[string]jsonEffectMetrics),
	}

	for name, em := range m.PerEffect {
		output.PerEffect[name] = jsonEffectMetrics{
			Count:     em.Count,
			Ticks:     em.Ticks,
			Share:     em.Share(m.Effects),
			Durations: toJSONDurationMetrics(em.Duration),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}

type jsonDurationMetrics struct {
	Min string `json:"min"`
	Max string `json:"max"`
	Avg string `json:"avg"`
	P50 string `json:"p50"`
	P90 string `json:"p90"`
	P99 string `json:"p99"`
}

type jsonEffectMetrics struct {
	Count     int                 `json:"count"`
	Ticks     int                 `json:"ticks"`
	Share     float64             `json:"share"`
	Durations jsonDurationMetrics `json:"durations"`
}

func toJSONDurationMetrics(d DurationMetrics) jsonDurationMetrics {
	return jsonDurationMetrics{
		Min: FormatDuration(d.Min),
		Max: FormatDuration(d.Max),
		Avg: FormatDuration(d.Avg),
		P50: FormatDuration(d.P50),
		P90: FormatDuration(d.P90),
		P99: FormatDuration(d.P99),
	}
}

func effectNames(m *Metrics) []string {
	names := make([]string, 0, len(m.PerEffect))
	for name := range m.PerEffect {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d,%03d", n/1000, n%1000)
}
