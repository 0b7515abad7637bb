package mocks

import (
	"github.com/user/castcut/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records
// what was saved.
type DebugSink struct {
	EnabledValue bool

	BundleJSON    []byte
	TimelineJSON  []byte
	FrameIndexes  []uint64
	FrameTimesMs  []float64
	SavedFrameLen int
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveBundleJSON(data []byte) error {
	m.BundleJSON = data
	return nil
}

func (m *DebugSink) SaveCursorTimelineJSON(data []byte) error {
	m.TimelineJSON = data
	return nil
}

func (m *DebugSink) SaveComposedFrame(index uint64, timeMs float64, rgba []byte, width, height int) error {
	m.FrameIndexes = append(m.FrameIndexes, index)
	m.FrameTimesMs = append(m.FrameTimesMs, timeMs)
	m.SavedFrameLen = len(rgba)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
