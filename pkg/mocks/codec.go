package mocks

import (
	"github.com/user/castcut/pkg/ports"
)

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	ProbeFunc func(path string) (ports.VideoMeta, error)
}

func (m *VideoProber) Probe(path string) (ports.VideoMeta, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.VideoMeta{Width: 1920, Height: 1080, TotalFrames: 60, FPS: 30}, nil
}

var _ ports.VideoProber = (*VideoProber)(nil)

// FrameSource is a mock implementation of ports.FrameSource that serves
// a fixed slice of frames and then reports end of stream.
type FrameSource struct {
	MetaValue ports.VideoMeta
	Frames    [][]byte

	ReadFrameFunc func() ([]byte, error)

	ReadCalls   int
	CloseCalled bool
}

func (m *FrameSource) Meta() ports.VideoMeta {
	return m.MetaValue
}

func (m *FrameSource) ReadFrame() ([]byte, error) {
	m.ReadCalls++
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	if m.ReadCalls > len(m.Frames) {
		return nil, nil
	}
	return m.Frames[m.ReadCalls-1], nil
}

func (m *FrameSource) Close() {
	m.CloseCalled = true
}

var _ ports.FrameSource = (*FrameSource)(nil)

// FrameSink is a mock implementation of ports.FrameSink that records
// every frame it receives.
type FrameSink struct {
	WriteFrameFunc func(frame []byte) error
	FinishFunc     func() error

	Frames       [][]byte
	FinishCalled bool
	CloseCalled  bool
}

func (m *FrameSink) WriteFrame(frame []byte) error {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	m.Frames = append(m.Frames, cp)
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(frame)
	}
	return nil
}

func (m *FrameSink) Finish() error {
	m.FinishCalled = true
	if m.FinishFunc != nil {
		return m.FinishFunc()
	}
	return nil
}

func (m *FrameSink) Close() {
	m.CloseCalled = true
}

var _ ports.FrameSink = (*FrameSink)(nil)
