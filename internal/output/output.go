// Package output provides light sinks the effects write to.
package output

import (
	"log/slog"

	"flicker/internal/core"
)

// Fanout copies every write to each sink in order.
type Fanout []core.Output

func (f Fanout) SetBinary(on bool) {
	for _, o := range f {
		o.SetBinary(on)
	}
}

func (f Fanout) SetIntensity(value uint8) {
	for _, o := range f {
		o.SetIntensity(value)
	}
}

// Log writes each light command to a structured logger at debug level.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SetBinary(on bool) {
	l.logger.Debug("light", "op", "binary", "on", on)
}

func (l *Log) SetIntensity(value uint8) {
	l.logger.Debug("light", "op", "intensity", "value", value)
}
