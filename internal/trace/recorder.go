// Package trace records light commands as JSON lines and summarises them.
package trace

import (
	"encoding/json"
	"io"
	"sync"

	"flicker/internal/core"
)

// Record is one line of a trace.
type Record struct {
	T     core.Millis `json:"t"`
	Op    string      `json:"op"` // "binary" or "intensity"
	Value uint8       `json:"value"`
}

// Recorder is an Output that appends every write to w before forwarding it
// to next. The first encoding error stops recording; forwarding continues.
type Recorder struct {
	mu    sync.Mutex
	enc   *json.Encoder
	clock core.Clock
	next  core.Output
	err   error
}

func NewRecorder(w io.Writer, clock core.Clock, next core.Output) *Recorder {
	if next == nil {
		next = core.NullOutput
	}
	return &Recorder{enc: json.NewEncoder(w), clock: clock, next: next}
}

func (r *Recorder) SetBinary(on bool) {
	var v uint8
	if on {
		v = 255
	}
	r.record("binary", v)
	r.next.SetBinary(on)
}

func (r *Recorder) SetIntensity(value uint8) {
	r.record("intensity", value)
	r.next.SetIntensity(value)
}

func (r *Recorder) record(op string, value uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	r.err = r.enc.Encode(Record{T: r.clock.Millis(), Op: op, Value: value})
}

// Err returns the error that stopped recording, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
