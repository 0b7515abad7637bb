// Package export defines the edit model and configuration for exporting
// a recording bundle to a finished video: segments, track edits, output
// options, progress reporting and the classified error kinds.
package export

import (
	"encoding/json"
)

// Format is the output container/codec family.
type Format string

const (
	FormatMp4  Format = "mp4"
	FormatWebm Format = "webm"
	FormatGif  Format = "gif"
)

// Extension returns the file extension for this format.
func (f Format) Extension() string {
	return string(f)
}

// VideoCodec returns the FFmpeg video codec for this format.
func (f Format) VideoCodec() string {
	switch f {
	case FormatWebm:
		return "libvpx-vp9"
	case FormatGif:
		return "gif"
	default:
		return "libx264"
	}
}

// Quality is the export quality tier.
type Quality string

const (
	QualityLow      Quality = "low"
	QualityMedium   Quality = "medium"
	QualityHigh     Quality = "high"
	QualityLossless Quality = "lossless"
)

// CRF returns the constant rate factor for H.264/VP9 encoding.
// Lower values mean higher quality and larger files.
func (q Quality) CRF() int {
	switch q {
	case QualityLow:
		return 28
	case QualityHigh:
		return 18
	case QualityLossless:
		// CRF 1 is visually lossless. True lossless (0) has compatibility
		// issues with scaling and yuv420p.
		return 1
	default:
		return 23
	}
}

// H264Preset returns the encoder speed/quality preset.
func (q Quality) H264Preset() string {
	switch q {
	case QualityLow:
		return "faster"
	case QualityHigh:
		return "slow"
	case QualityLossless:
		return "veryslow"
	default:
		return "medium"
	}
}

// Segment is a contiguous source time range plus a playback speed
// multiplier, included in the export output. Immutable for a run.
type Segment struct {
	// SourceStartMs is the start time in source media, milliseconds.
	SourceStartMs uint64 `json:"sourceStartMs"`
	// SourceEndMs is the end time in source media, milliseconds.
	SourceEndMs uint64 `json:"sourceEndMs"`
	// TimeScale is the speed factor: 1.0 normal, 2.0 double, 0.5 half.
	TimeScale float64 `json:"timeScale"`
}

// UnmarshalJSON applies the 1.0 default when timeScale is absent.
func (s *Segment) UnmarshalJSON(data []byte) error {
	type segment Segment
	raw := segment{TimeScale: 1.0}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Segment(raw)
	return nil
}

// SourceDurationMs is the duration covered in the source media.
func (s Segment) SourceDurationMs() uint64 {
	if s.SourceEndMs < s.SourceStartMs {
		return 0
	}
	return s.SourceEndMs - s.SourceStartMs
}

// OutputDurationMs is the duration in the output after time scaling.
func (s Segment) OutputDurationMs() uint64 {
	if s.TimeScale <= 0 {
		return 0
	}
	return uint64(float64(s.SourceDurationMs()) / s.TimeScale)
}

// SourceStartSecs is the start time in seconds for FFmpeg filters.
func (s Segment) SourceStartSecs() float64 {
	return float64(s.SourceStartMs) / 1000.0
}

// SourceEndSecs is the end time in seconds for FFmpeg filters.
func (s Segment) SourceEndSecs() float64 {
	return float64(s.SourceEndMs) / 1000.0
}

// TrackEdits is an ordered list of segments defining a track's output
// timeline. Segment order is output order.
type TrackEdits struct {
	Segments []Segment `json:"segments"`
}

// IsFullSource reports whether the edits represent the full source with
// no cuts: a single segment spanning the whole recording at normal speed.
func (e TrackEdits) IsFullSource(sourceDurationMs uint64) bool {
	if len(e.Segments) != 1 {
		return false
	}
	seg := e.Segments[0]
	tolerated := sourceDurationMs
	if tolerated >= 100 {
		tolerated -= 100
	} else {
		tolerated = 0
	}
	return seg.SourceStartMs == 0 &&
		seg.SourceEndMs >= tolerated &&
		seg.TimeScale > 0.99 && seg.TimeScale < 1.01
}

// TotalOutputDurationMs is the output duration after all edits.
func (e TrackEdits) TotalOutputDurationMs() uint64 {
	var total uint64
	for _, seg := range e.Segments {
		total += seg.OutputDurationMs()
	}
	return total
}

// Validate checks the segment list invariants. Zero-length segments and
// non-positive time scales are rejected; the codec engine would tolerate
// them but the results are never what the caller wanted.
func (e TrackEdits) Validate() error {
	if len(e.Segments) == 0 {
		return invalidConfigf("track edits contain no segments")
	}
	for i, seg := range e.Segments {
		if seg.SourceEndMs < seg.SourceStartMs {
			return invalidConfigf("segment %d: end %dms before start %dms", i, seg.SourceEndMs, seg.SourceStartMs)
		}
		if seg.SourceDurationMs() == 0 {
			return invalidConfigf("segment %d: zero length", i)
		}
		if seg.TimeScale <= 0 {
			return invalidConfigf("segment %d: time scale %v must be positive", i, seg.TimeScale)
		}
	}
	return nil
}

// Options is the caller-supplied export configuration, frozen for a run.
type Options struct {
	// Format is the output container/codec family.
	Format Format `json:"format"`
	// Quality is the quality tier.
	Quality Quality `json:"quality"`
	// Width is the output width in pixels; nil inherits the source.
	Width *int `json:"width"`
	// Height is the output height in pixels; nil inherits the source.
	Height *int `json:"height"`
	// FPS is the output frame rate; nil inherits the source.
	FPS *int `json:"fps"`
	// OutputPath is the destination file path.
	OutputPath string `json:"outputPath"`
	// IncludeCursor composites the smoothed cursor overlay.
	IncludeCursor bool `json:"includeCursor"`
	// IncludeWebcam composites the webcam overlay.
	IncludeWebcam bool `json:"includeWebcam"`
	// IncludeMicAudio mixes in the microphone track.
	IncludeMicAudio bool `json:"includeMicAudio"`
	// IncludeSystemAudio mixes in the system audio track.
	IncludeSystemAudio bool `json:"includeSystemAudio"`
	// ScreenEdits are the cuts for the screen track; nil means full source.
	ScreenEdits *TrackEdits `json:"screenEdits"`
	// CameraEdits are the cuts for the camera track; nil means full source.
	CameraEdits *TrackEdits `json:"cameraEdits"`
}

// OutputWidth resolves the output width against the probed source.
func (o Options) OutputWidth(sourceWidth int) int {
	if o.Width != nil && *o.Width > 0 {
		return *o.Width
	}
	return sourceWidth
}

// OutputHeight resolves the output height against the probed source.
func (o Options) OutputHeight(sourceHeight int) int {
	if o.Height != nil && *o.Height > 0 {
		return *o.Height
	}
	return sourceHeight
}

// OutputFPS resolves the output frame rate against the probed source.
func (o Options) OutputFPS(sourceFPS float64) int {
	if o.FPS != nil && *o.FPS > 0 {
		return *o.FPS
	}
	return int(sourceFPS)
}

// Validate checks the options for contradictions that have no safe
// degradation. GIF with audio is not rejected here: audio is dropped
// silently, which is the documented degradation.
func (o Options) Validate() error {
	switch o.Format {
	case FormatMp4, FormatWebm, FormatGif:
	default:
		return invalidConfigf("unknown format %q", o.Format)
	}
	switch o.Quality {
	case QualityLow, QualityMedium, QualityHigh, QualityLossless:
	default:
		return invalidConfigf("unknown quality %q", o.Quality)
	}
	if o.OutputPath == "" {
		return invalidConfigf("output path is empty")
	}
	if o.Width != nil && *o.Width <= 0 {
		return invalidConfigf("width must be positive")
	}
	if o.Height != nil && *o.Height <= 0 {
		return invalidConfigf("height must be positive")
	}
	if o.FPS != nil && *o.FPS <= 0 {
		return invalidConfigf("fps must be positive")
	}
	if o.ScreenEdits != nil {
		if err := o.ScreenEdits.Validate(); err != nil {
			return err
		}
	}
	if o.CameraEdits != nil {
		if err := o.CameraEdits.Validate(); err != nil {
			return err
		}
	}
	return nil
}
