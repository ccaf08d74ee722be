package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"

	"flicker/internal/core"

	"github.com/tidwall/gjson"
)

// Summary describes a recorded trace. Each level is assumed to hold until
// the next record.
type Summary struct {
	Records   int           `json:"records"`
	Binary    int           `json:"binary"`
	Intensity int           `json:"intensity"`
	Span      time.Duration `json:"-"`
	Dark      time.Duration `json:"-"`         // time spent at level 0
	MeanLevel float64       `json:"meanLevel"` // time-weighted
	MinLevel  uint8         `json:"minLevel"`
	MaxLevel  uint8         `json:"maxLevel"`
}

// DarkRatio is the share of the span spent dark.
func (s *Summary) DarkRatio() float64 {
	if s.Span == 0 {
		return 0
	}
	return float64(s.Dark) / float64(s.Span)
}

// Summarize reads JSON-lines records from r.
func Summarize(r io.Reader) (*Summary, error) {
	s := &Summary{MinLevel: 255}
	scanner := bufio.NewScanner(r)

	var (
		prevT     core.Millis
		prevLevel uint8
		weighted  float64
		line      int
	)
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("line %d: invalid JSON", line)
		}

		fields := gjson.GetManyBytes(raw, "t", "op", "value")
		if !fields[0].Exists() || !fields[2].Exists() {
			return nil, fmt.Errorf("line %d: missing t or value", line)
		}
		ts := fields[0].Int()
		if ts < 0 || ts > math.MaxUint32 {
			return nil, fmt.Errorf("line %d: t %d out of range 0..%d", line, ts, uint32(math.MaxUint32))
		}
		v := fields[2].Int()
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("line %d: value %d out of range 0..255", line, v)
		}
		t := core.Millis(ts)
		level := uint8(v)

		switch fields[1].String() {
		case "binary":
			s.Binary++
		case "intensity":
			s.Intensity++
		default:
			return nil, fmt.Errorf("line %d: unknown op %q", line, fields[1].String())
		}

		if s.Records > 0 {
			held := core.Elapsed(t, prevT).Duration()
			s.Span += held
			weighted += float64(prevLevel) * float64(held)
			if prevLevel == 0 {
				s.Dark += held
			}
		}

		if level < s.MinLevel {
			s.MinLevel = level
		}
		if level > s.MaxLevel {
			s.MaxLevel = level
		}
		prevT, prevLevel = t, level
		s.Records++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	if s.Records == 0 {
		s.MinLevel = 0
	}
	if s.Span > 0 {
		s.MeanLevel = weighted / float64(s.Span)
	}
	return s, nil
}

// Format writes the summary in human-readable form.
func (s *Summary) Format(w io.Writer) {
	if s.Records == 0 {
		fmt.Fprintln(w, "Empty trace")
		return
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flicker - Trace Summary")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Records:    %d (%d binary, %d intensity)\n", s.Records, s.Binary, s.Intensity)
	fmt.Fprintf(w, "Span:       %v\n", s.Span.Round(time.Millisecond))
	fmt.Fprintf(w, "Dark:       %v (%.1f%%)\n", s.Dark.Round(time.Millisecond), s.DarkRatio()*100)
	fmt.Fprintf(w, "Mean level: %.1f\n", s.MeanLevel)
	fmt.Fprintf(w, "Range:      %d..%d\n", s.MinLevel, s.MaxLevel)
}
