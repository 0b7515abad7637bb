// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/castcut/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveBundleJSON does nothing.
func (s *Sink) SaveBundleJSON(data []byte) error {
	return nil
}

// SaveCursorTimelineJSON does nothing.
func (s *Sink) SaveCursorTimelineJSON(data []byte) error {
	return nil
}

// SaveComposedFrame does nothing.
func (s *Sink) SaveComposedFrame(index uint64, timeMs float64, rgba []byte, width, height int) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
