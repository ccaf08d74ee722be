package core

import "sync"

// MockWriter is a thread-safe io.Writer for testing.
type MockWriter struct {
	mu   sync.Mutex
	data []byte
}

func (w *MockWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *MockWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.data)
}

// ScriptedRandom replays a fixed list of raw values, wrapping around when
// exhausted. Each raw value is folded into the requested range, so the same
// script always yields the same draws.
type ScriptedRandom struct {
	values []int
	next   int
}

func NewScriptedRandom(values ...int) *ScriptedRandom {
	if len(values) == 0 {
		values = []int{0}
	}
	return &ScriptedRandom{values: values}
}

func (s *ScriptedRandom) Uniform(min, max int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	if max <= min {
		return min
	}
	if v < 0 {
		v = -v
	}
	return min + v%(max-min)
}

// Draws returns how many values have been consumed.
func (s *ScriptedRandom) Draws() int {
	return s.next
}

// Write is one recorded call on a RecordingOutput.
type Write struct {
	Binary bool  // true for SetBinary, false for SetIntensity
	Value  uint8 // 0 or 255 for binary writes
}

// RecordingOutput is an Output that remembers every write.
type RecordingOutput struct {
	Writes []Write
}

func (o *RecordingOutput) SetBinary(on bool) {
	w := Write{Binary: true}
	if on {
		w.Value = 255
	}
	o.Writes = append(o.Writes, w)
}

func (o *RecordingOutput) SetIntensity(value uint8) {
	o.Writes = append(o.Writes, Write{Value: value})
}

// Level returns the value of the most recent write, or 0 if none.
func (o *RecordingOutput) Level() uint8 {
	if len(o.Writes) == 0 {
		return 0
	}
	return o.Writes[len(o.Writes)-1].Value
}

// Reset forgets all recorded writes.
func (o *RecordingOutput) Reset() {
	o.Writes = o.Writes[:0]
}
