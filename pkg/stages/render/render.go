// Package render implements the frame-accurate export path: decode
// every screen frame, composite the cursor and webcam overlays in
// memory, and stream the result into the encoder.
package render

import (
	"context"

	"github.com/user/castcut/pkg/compose"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

// How often progress and debug snapshots are emitted, in frames.
const (
	progressInterval   = 10
	debugFrameInterval = 60
)

// Stage runs the decode/compose/encode loop.
type Stage struct {
	openDecoder pipeline.OpenDecoder
	openEncoder pipeline.OpenEncoder
	prober      ports.VideoProber
	sink        ports.DebugSink
	log         ports.Logger
}

// NewStage creates a new render stage.
func NewStage(openDecoder pipeline.OpenDecoder, openEncoder pipeline.OpenEncoder, prober ports.VideoProber, sink ports.DebugSink, log ports.Logger) *Stage {
	return &Stage{
		openDecoder: openDecoder,
		openEncoder: openEncoder,
		prober:      prober,
		sink:        sink,
		log:         log.WithComponent("render"),
	}
}

// Execute decodes the screen video frame by frame, composites overlays
// and feeds the encoder. Frames flow strictly sequentially; the loop
// checks for cancellation once per frame and tears the codec processes
// down on any exit path.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	meta := input.Meta
	opts := input.Options
	b := input.Bundle

	screen, err := s.openDecoder(b.ScreenVideo, meta)
	if err != nil {
		return pipeline.RenderResult{}, err
	}
	defer screen.Close()

	webcam := s.openWebcam(opts, b.WebcamVideo)
	if webcam != nil {
		defer webcam.Close()
	}

	micPath := ""
	if opts.IncludeMicAudio {
		micPath = b.MicAudio
	}
	systemPath := ""
	if opts.IncludeSystemAudio {
		systemPath = b.SystemAudio
	}

	s.log.Info("Encoding %d frames at %.1f fps", meta.TotalFrames, meta.FPS)
	encoder, err := s.openEncoder(meta, opts, micPath, systemPath)
	if err != nil {
		return pipeline.RenderResult{}, err
	}
	defer encoder.Close()

	compositor := compose.New(meta, webcam, input.Timeline, b.CursorImages, s.log)

	var written uint64
	for {
		if input.Cancelled != nil && input.Cancelled() {
			return pipeline.RenderResult{FramesWritten: written}, export.ErrCancelled
		}

		frame, err := screen.ReadFrame()
		if err != nil {
			return pipeline.RenderResult{FramesWritten: written}, err
		}
		if frame == nil {
			break
		}

		if err := compositor.ComposeFrame(frame); err != nil {
			return pipeline.RenderResult{FramesWritten: written}, err
		}

		if s.sink.Enabled() && written%debugFrameInterval == 0 {
			timeMs := float64(written) / meta.FPS * 1000.0
			s.sink.SaveComposedFrame(written, timeMs, frame, meta.Width, meta.Height)
		}

		if err := encoder.WriteFrame(frame); err != nil {
			return pipeline.RenderResult{FramesWritten: written}, err
		}
		written++

		if written%progressInterval == 0 && input.OnProgress != nil {
			input.OnProgress(export.Encoding(written, meta.TotalFrames))
		}
	}
	s.log.Info("Composition completed")

	if err := encoder.Finish(); err != nil {
		return pipeline.RenderResult{FramesWritten: written}, err
	}
	s.log.Info("Encoding completed")

	drawn, missed := compositor.WebcamStats()
	if missed > 0 {
		s.log.Debug("Webcam overlay: %d drawn, %d missed", drawn, missed)
	}

	return pipeline.RenderResult{
		FramesWritten: written,
		WebcamDrawn:   drawn,
		WebcamMissed:  missed,
	}, nil
}

// openWebcam opens the webcam decoder when the overlay is wanted and a
// track exists. Failures degrade to no overlay; a broken webcam track
// never sinks the export.
func (s *Stage) openWebcam(opts export.Options, webcamPath string) ports.FrameSource {
	if !opts.IncludeWebcam || webcamPath == "" || opts.Format == export.FormatGif {
		return nil
	}

	meta, err := s.prober.Probe(webcamPath)
	if err != nil {
		s.log.Warn("Failed to probe video: %s", err)
		return nil
	}
	source, err := s.openDecoder(webcamPath, meta)
	if err != nil {
		s.log.Warn("Failed to open webcam video: %s", err)
		return nil
	}
	return source
}
