// Package editexport implements the fast edit path: cuts, trims and
// speed changes rendered in a single codec process through a generated
// filter graph, with no frame data crossing the process boundary.
package editexport

import (
	"context"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ffgraph"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

// Stage runs one edit filter graph to completion.
type Stage struct {
	runner ports.GraphRunner
	log    ports.Logger
}

// NewStage creates a new edit export stage.
func NewStage(runner ports.GraphRunner, log ports.Logger) *Stage {
	return &Stage{
		runner: runner,
		log:    log.WithComponent("editexport"),
	}
}

// Execute builds the filter graph for the edit list and runs it.
// Progress comes from the encoder's output position against the edit
// list's computed output duration.
func (s *Stage) Execute(ctx context.Context, input pipeline.EditExportInput) (pipeline.EditExportResult, error) {
	opts := input.Options
	b := input.Bundle

	graphInputs := ffgraph.GraphInputs{
		ScreenPath:   b.ScreenVideo,
		Options:      opts,
		Edits:        input.Edits,
		SourceWidth:  input.Meta.Width,
		SourceHeight: input.Meta.Height,
		SourceFPS:    input.Meta.FPS,
	}
	if opts.IncludeWebcam {
		graphInputs.WebcamPath = b.WebcamVideo
	}
	if opts.IncludeMicAudio {
		graphInputs.MicPath = b.MicAudio
	}
	if opts.IncludeSystemAudio {
		graphInputs.SystemPath = b.SystemAudio
	}

	totalMs := input.Edits.TotalOutputDurationMs()
	args := ffgraph.EditGraph(graphInputs)

	s.log.Info("Encoding %d frames at %.1f fps", input.Meta.TotalFrames, input.Meta.FPS)
	s.log.Debug("Edit graph: %d segments, %dms output", len(input.Edits.Segments), totalMs)

	onProgress := func(outMs uint64) {
		if input.OnProgress == nil {
			return
		}
		if outMs > totalMs {
			outMs = totalMs
		}
		input.OnProgress(export.Encoding(outMs, totalMs))
	}

	if err := s.runner.Run(args, onProgress, input.Cancelled); err != nil {
		return pipeline.EditExportResult{}, err
	}
	s.log.Info("Encoding completed")

	return pipeline.EditExportResult{OutputDurationMs: totalMs}, nil
}
