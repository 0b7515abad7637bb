// Package smooth implements the cursor smoothing stage.
package smooth

import (
	"context"

	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

// Stage turns raw mouse moves into the smoothed cursor timeline.
type Stage struct {
	smoother ports.CursorSmoother
	log      ports.Logger
}

// NewStage creates a new smoothing stage.
func NewStage(smoother ports.CursorSmoother, log ports.Logger) *Stage {
	return &Stage{
		smoother: smoother,
		log:      log.WithComponent("smooth"),
	}
}

// Execute runs the smoother over the raw moves. No moves means an
// empty timeline, which downstream treats as "no cursor overlay".
func (s *Stage) Execute(ctx context.Context, input pipeline.SmoothInput) (pipeline.SmoothResult, error) {
	if len(input.Moves) == 0 {
		s.log.Debug("No mouse moves to smooth")
		return pipeline.SmoothResult{}, nil
	}

	s.log.Info("Smoothing %d cursor samples", len(input.Moves))
	timeline := s.smoother.Smooth(input.Moves, input.Config, input.FPS)
	s.log.Info("Cursor timeline: %d samples", len(timeline))

	return pipeline.SmoothResult{Timeline: timeline}, nil
}
