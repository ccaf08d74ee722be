package trace

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"flicker/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRecorder_WritesLinesAndForwards(t *testing.T) {
	var buf bytes.Buffer
	clock := core.NewFakeClock(100)
	next := &core.RecordingOutput{}
	r := NewRecorder(&buf, clock, next)

	r.SetIntensity(200)
	clock.AdvanceMillis(50)
	r.SetBinary(false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"t":100,"op":"intensity","value":200}`, lines[0])
	assert.JSONEq(t, `{"t":150,"op":"binary","value":0}`, lines[1])
	assert.Len(t, next.Writes, 2)
	assert.NoError(t, r.Err())
}

func TestRecorder_StopsOnWriteError(t *testing.T) {
	next := &core.RecordingOutput{}
	r := NewRecorder(failingWriter{}, core.NewFakeClock(0), next)

	r.SetIntensity(1)
	r.SetIntensity(2)

	assert.Error(t, r.Err())
	assert.Len(t, next.Writes, 2, "writes must still reach the light")
}

func TestSummarize(t *testing.T) {
	input := `{"t":0,"op":"intensity","value":200}
{"t":1000,"op":"binary","value":0}
{"t":3000,"op":"intensity","value":100}

{"t":4000,"op":"binary","value":255}
`
	s, err := Summarize(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Records)
	assert.Equal(t, 2, s.Binary)
	assert.Equal(t, 2, s.Intensity)
	assert.Equal(t, 4*time.Second, s.Span)
	assert.Equal(t, 2*time.Second, s.Dark)
	assert.InDelta(t, 0.5, s.DarkRatio(), 0.0001)
	// (200*1000 + 0*2000 + 100*1000) / 4000
	assert.InDelta(t, 75.0, s.MeanLevel, 0.0001)
	assert.Equal(t, uint8(0), s.MinLevel)
	assert.Equal(t, uint8(255), s.MaxLevel)
}

func TestSummarize_AcrossClockWrap(t *testing.T) {
	input := `{"t":4294967286,"op":"intensity","value":10}
{"t":10,"op":"intensity","value":20}
`
	s, err := Summarize(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, s.Span)
}

func TestSummarize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid json", "{not json}\n", "line 1: invalid JSON"},
		{"missing value", `{"t":1,"op":"binary"}` + "\n", "missing t or value"},
		{"unknown op", `{"t":1,"op":"strobe","value":3}` + "\n", "unknown op"},
		{"value above range", `{"t":0,"op":"intensity","value":300}` + "\n", "line 1: value 300 out of range 0..255"},
		{"negative value", `{"t":0,"op":"intensity","value":10}` + "\n" + `{"t":10,"op":"intensity","value":-1}` + "\n", "line 2: value -1 out of range 0..255"},
		{"negative t", `{"t":-5,"op":"binary","value":0}` + "\n", "line 1: t -5 out of range"},
		{"t past clock width", `{"t":4294967296,"op":"binary","value":0}` + "\n", "line 1: t 4294967296 out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSummary_Format(t *testing.T) {
	var buf bytes.Buffer
	(&Summary{}).Format(&buf)
	assert.Contains(t, buf.String(), "Empty trace")

	buf.Reset()
	s := &Summary{Records: 2, Intensity: 2, Span: time.Second, Dark: 250 * time.Millisecond, MaxLevel: 9}
	s.Format(&buf)
	assert.Contains(t, buf.String(), "Dark:       250ms (25.0%)")
	assert.Contains(t, buf.String(), "Range:      0..9")
}

func TestRecorder_RoundTripThroughSummary(t *testing.T) {
	var buf bytes.Buffer
	clock := core.NewFakeClock(0)
	r := NewRecorder(&buf, clock, nil)

	for i := 0; i < 10; i++ {
		r.SetIntensity(uint8(i * 10))
		clock.Advance(100 * time.Millisecond)
	}

	s, err := Summarize(&buf)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Records)
	assert.Equal(t, 900*time.Millisecond, s.Span)
	assert.Equal(t, 100*time.Millisecond, s.Dark)
}
