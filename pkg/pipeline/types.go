package pipeline

import (
	"github.com/user/castcut/pkg/bundle"
	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// OpenDecoder opens a sequential frame source for a video file whose
// metadata has already been probed.
type OpenDecoder func(path string, meta ports.VideoMeta) (ports.FrameSource, error)

// OpenEncoder starts a frame sink encoding to opts.OutputPath. The
// audio paths are already gated on the include flags; empty means no
// such track.
type OpenEncoder func(meta ports.VideoMeta, opts export.Options, micPath, systemPath string) (ports.FrameSink, error)

// =============================================================================
// Prepare Stage Types
// =============================================================================

// PrepareInput identifies the recording and the requested export.
type PrepareInput struct {
	ProjectDir string
	Options    export.Options
}

// PrepareResult is the loaded and probed input state plus the path
// decision for the rest of the pipeline.
type PrepareResult struct {
	Bundle *bundle.Bundle
	Meta   ports.VideoMeta

	// UseEditPath selects the single-process filter graph export.
	// False selects frame-by-frame composition.
	UseEditPath bool

	// Edits is the effective screen edit list. On the edit path this is
	// what the filter graph renders; on the frame path it is the
	// implicit full-source single segment.
	Edits export.TrackEdits
}

// =============================================================================
// Smooth Stage Types
// =============================================================================

// SmoothInput carries the raw cursor data into the smoothing stage.
type SmoothInput struct {
	Moves  []cursor.Move
	Config cursor.SpringConfig
	FPS    float64
}

// SmoothResult is the smoothed timeline, empty when the cursor overlay
// is disabled or no moves were recorded.
type SmoothResult struct {
	Timeline cursor.Timeline
}

// =============================================================================
// Render Stage Types (frame composition path)
// =============================================================================

// RenderInput is everything the frame path needs: decoded input state,
// the smoothed cursor timeline, and the run's progress/cancel hooks.
type RenderInput struct {
	Bundle   *bundle.Bundle
	Meta     ports.VideoMeta
	Options  export.Options
	Timeline cursor.Timeline

	OnProgress func(export.Progress)
	Cancelled  func() bool
}

// RenderResult reports what the frame path produced.
type RenderResult struct {
	FramesWritten uint64
	WebcamDrawn   uint64
	WebcamMissed  uint64
}

// =============================================================================
// Edit Export Stage Types (filter graph path)
// =============================================================================

// EditExportInput carries the edit list the filter graph renders.
type EditExportInput struct {
	Bundle  *bundle.Bundle
	Meta    ports.VideoMeta
	Options export.Options
	Edits   export.TrackEdits

	OnProgress func(export.Progress)
	Cancelled  func() bool
}

// EditExportResult reports the rendered output duration.
type EditExportResult struct {
	OutputDurationMs uint64
}
