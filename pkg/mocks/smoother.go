package mocks

import (
	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/ports"
)

// CursorSmoother is a mock implementation of ports.CursorSmoother. The
// default behavior passes raw moves through as samples unchanged.
type CursorSmoother struct {
	SmoothFunc func(moves []cursor.Move, cfg cursor.SpringConfig, fps float64) cursor.Timeline

	SmoothCalls int
}

func (m *CursorSmoother) Smooth(moves []cursor.Move, cfg cursor.SpringConfig, fps float64) cursor.Timeline {
	m.SmoothCalls++
	if m.SmoothFunc != nil {
		return m.SmoothFunc(moves, cfg, fps)
	}
	timeline := make(cursor.Timeline, 0, len(moves))
	for _, mv := range moves {
		timeline = append(timeline, cursor.Sample{
			X:             mv.X,
			Y:             mv.Y,
			CursorID:      mv.CursorID,
			ProcessTimeMs: mv.ProcessTimeMs,
		})
	}
	return timeline
}

var _ ports.CursorSmoother = (*CursorSmoother)(nil)
