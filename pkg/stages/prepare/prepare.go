// Package prepare implements the first export stage: option
// validation, bundle loading, source probing and the edit-path versus
// frame-path decision.
package prepare

import (
	"context"

	"github.com/user/castcut/pkg/bundle"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

// Stage loads and probes the recording bundle.
type Stage struct {
	fs     ports.FileSystem
	prober ports.VideoProber
	log    ports.Logger
}

// NewStage creates a new prepare stage.
func NewStage(fs ports.FileSystem, prober ports.VideoProber, log ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		prober: prober,
		log:    log.WithComponent("prepare"),
	}
}

// Execute validates the options, loads the bundle, probes the screen
// video and decides which export path the run takes. Non-trivial screen
// edits always go down the edit path; a cursor overlay cannot survive
// that and is dropped with a warning rather than failing the run.
func (s *Stage) Execute(ctx context.Context, input pipeline.PrepareInput) (pipeline.PrepareResult, error) {
	opts := input.Options
	if err := opts.Validate(); err != nil {
		return pipeline.PrepareResult{}, err
	}

	s.log.Info("Loading recording bundle")
	b, err := bundle.Load(input.ProjectDir, s.fs, s.log)
	if err != nil {
		return pipeline.PrepareResult{}, err
	}

	s.log.Info("Probing screen video")
	meta, err := s.prober.Probe(b.ScreenVideo)
	if err != nil {
		return pipeline.PrepareResult{}, err
	}
	s.log.Info("Probed %dx%d, %d frames, %.2f fps", meta.Width, meta.Height, meta.TotalFrames, meta.FPS)

	durationMs := b.DurationMs
	if durationMs == 0 && meta.FPS > 0 {
		// Fragmented container without a finalized header; fall back to
		// the packet count.
		durationMs = uint64(float64(meta.TotalFrames) / meta.FPS * 1000.0)
	}

	useEditPath := opts.ScreenEdits != nil && !opts.ScreenEdits.IsFullSource(durationMs)

	edits := export.TrackEdits{
		Segments: []export.Segment{{SourceStartMs: 0, SourceEndMs: durationMs, TimeScale: 1.0}},
	}
	if useEditPath {
		edits = *opts.ScreenEdits
		if opts.IncludeCursor && len(b.MouseMoves) > 0 {
			s.log.Warn("Edits requested, cursor overlay disabled")
		}
		s.log.Debug("Using fast edit path")
	} else {
		s.log.Debug("Using frame composition path")
	}

	return pipeline.PrepareResult{
		Bundle:      b,
		Meta:        meta,
		UseEditPath: useEditPath,
		Edits:       edits,
	}, nil
}
