package render

import (
	"context"
	"errors"
	"testing"

	"github.com/user/castcut/pkg/adapters/logger"
	"github.com/user/castcut/pkg/bundle"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/mocks"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

func testMeta() ports.VideoMeta {
	return ports.VideoMeta{Width: 4, Height: 4, TotalFrames: 3, FPS: 30}
}

func makeFrames(meta ports.VideoMeta, n int) [][]byte {
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = make([]byte, meta.FrameSize())
	}
	return frames
}

type stageFixture struct {
	source  *mocks.FrameSource
	sink    *mocks.FrameSink
	decoder pipeline.OpenDecoder
	encoder pipeline.OpenEncoder
}

func newFixture(meta ports.VideoMeta, frameCount int) *stageFixture {
	f := &stageFixture{
		source: &mocks.FrameSource{MetaValue: meta, Frames: makeFrames(meta, frameCount)},
		sink:   &mocks.FrameSink{},
	}
	f.decoder = func(path string, m ports.VideoMeta) (ports.FrameSource, error) {
		return f.source, nil
	}
	f.encoder = func(m ports.VideoMeta, opts export.Options, mic, system string) (ports.FrameSink, error) {
		return f.sink, nil
	}
	return f
}

func testInput(meta ports.VideoMeta) pipeline.RenderInput {
	return pipeline.RenderInput{
		Bundle: &bundle.Bundle{ScreenVideo: "/rec/recording-0.mp4"},
		Meta:   meta,
		Options: export.Options{
			Format:     export.FormatMp4,
			Quality:    export.QualityMedium,
			OutputPath: "/tmp/out.mp4",
		},
	}
}

func TestExecuteStreamsAllFrames(t *testing.T) {
	meta := testMeta()
	f := newFixture(meta, 3)
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	result, err := stage.Execute(context.Background(), testInput(meta))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FramesWritten != 3 {
		t.Errorf("frames written = %d, want 3", result.FramesWritten)
	}
	if len(f.sink.Frames) != 3 {
		t.Errorf("encoder received %d frames, want 3", len(f.sink.Frames))
	}
	if !f.sink.FinishCalled {
		t.Error("encoder not finalized")
	}
	if !f.source.CloseCalled {
		t.Error("decoder not closed")
	}
}

func TestExecuteCancellationStopsBeforeFinish(t *testing.T) {
	meta := testMeta()
	f := newFixture(meta, 3)
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	input := testInput(meta)
	cancelAfter := 1
	input.Cancelled = func() bool {
		cancelAfter--
		return cancelAfter < 0
	}

	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, export.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if f.sink.FinishCalled {
		t.Error("encoder finalized despite cancellation")
	}
	if !f.sink.CloseCalled {
		t.Error("encoder not torn down on cancellation")
	}
}

func TestExecuteFirstFrameSizeMismatchFailsBeforeEncoder(t *testing.T) {
	meta := testMeta()
	f := newFixture(meta, 1)
	f.source.Frames[0] = make([]byte, meta.FrameSize()-4)
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	_, err := stage.Execute(context.Background(), testInput(meta))
	if !errors.Is(err, export.ErrDecoding) {
		t.Fatalf("expected ErrDecoding, got %v", err)
	}
	if len(f.sink.Frames) != 0 {
		t.Errorf("encoder received %d frames after fatal mismatch", len(f.sink.Frames))
	}
}

func TestExecuteDecoderErrorPropagates(t *testing.T) {
	meta := testMeta()
	f := newFixture(meta, 0)
	f.source.ReadFrameFunc = func() ([]byte, error) {
		return nil, export.DecodingErrf("truncated frame")
	}
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	_, err := stage.Execute(context.Background(), testInput(meta))
	if !errors.Is(err, export.ErrDecoding) {
		t.Fatalf("expected ErrDecoding, got %v", err)
	}
	if f.sink.FinishCalled {
		t.Error("encoder finalized after decode error")
	}
}

func TestExecuteEncoderWriteErrorPropagates(t *testing.T) {
	meta := testMeta()
	f := newFixture(meta, 2)
	f.sink.WriteFrameFunc = func(frame []byte) error {
		return export.EncodingErrf("broken pipe")
	}
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	_, err := stage.Execute(context.Background(), testInput(meta))
	if !errors.Is(err, export.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestExecuteProgressEveryTenFrames(t *testing.T) {
	meta := ports.VideoMeta{Width: 2, Height: 2, TotalFrames: 25, FPS: 30}
	f := newFixture(meta, 25)
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	var reports []export.Progress
	input := testInput(meta)
	input.OnProgress = func(p export.Progress) {
		reports = append(reports, p)
	}

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d progress reports, want 2 (frames 10 and 20)", len(reports))
	}
	if reports[0].CurrentUnit != 10 || reports[0].TotalUnits != 25 {
		t.Errorf("first report = %+v", reports[0])
	}
	if reports[0].Stage != export.StageEncoding {
		t.Errorf("report stage = %s, want encoding", reports[0].Stage)
	}
	if reports[1].Percent <= reports[0].Percent {
		t.Error("progress percent not increasing")
	}
}

func TestExecuteDebugSinkSamplesFrames(t *testing.T) {
	meta := ports.VideoMeta{Width: 2, Height: 2, TotalFrames: 61, FPS: 30}
	f := newFixture(meta, 61)
	debug := &mocks.DebugSink{EnabledValue: true}
	stage := NewStage(f.decoder, f.encoder, &mocks.VideoProber{}, debug, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), testInput(meta)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Frames 0 and 60.
	if len(debug.FrameIndexes) != 2 {
		t.Fatalf("debug sink got %d frames, want 2", len(debug.FrameIndexes))
	}
	if debug.FrameIndexes[0] != 0 || debug.FrameIndexes[1] != 60 {
		t.Errorf("debug frame indexes = %v", debug.FrameIndexes)
	}
	if debug.FrameTimesMs[1] != 2000 {
		t.Errorf("frame 60 at %v ms, want 2000", debug.FrameTimesMs[1])
	}
}

func TestExecuteWebcamDecoderOpenedWhenIncluded(t *testing.T) {
	meta := testMeta()
	webcamMeta := ports.VideoMeta{Width: 2, Height: 2, TotalFrames: 3, FPS: 30}

	screenSource := &mocks.FrameSource{MetaValue: meta, Frames: makeFrames(meta, 3)}
	webcamSource := &mocks.FrameSource{MetaValue: webcamMeta, Frames: makeFrames(webcamMeta, 3)}
	sink := &mocks.FrameSink{}

	openDecoder := func(path string, m ports.VideoMeta) (ports.FrameSource, error) {
		if path == "/rec/recording-0-webcam.mp4" {
			return webcamSource, nil
		}
		return screenSource, nil
	}
	openEncoder := func(m ports.VideoMeta, opts export.Options, mic, system string) (ports.FrameSink, error) {
		return sink, nil
	}
	prober := &mocks.VideoProber{
		ProbeFunc: func(path string) (ports.VideoMeta, error) {
			return webcamMeta, nil
		},
	}

	stage := NewStage(openDecoder, openEncoder, prober, &mocks.DebugSink{}, logger.NewNoop())

	input := testInput(meta)
	input.Bundle.WebcamVideo = "/rec/recording-0-webcam.mp4"
	input.Options.IncludeWebcam = true

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if webcamSource.ReadCalls != 3 {
		t.Errorf("webcam read %d times, want 3", webcamSource.ReadCalls)
	}
	if !webcamSource.CloseCalled {
		t.Error("webcam decoder not closed")
	}
	if result.WebcamDrawn != 3 {
		t.Errorf("webcam drawn = %d, want 3", result.WebcamDrawn)
	}
}

func TestExecuteAudioPathsGatedByIncludeFlags(t *testing.T) {
	meta := testMeta()
	f := newFixture(meta, 1)

	var gotMic, gotSystem string
	openEncoder := func(m ports.VideoMeta, opts export.Options, mic, system string) (ports.FrameSink, error) {
		gotMic, gotSystem = mic, system
		return f.sink, nil
	}
	stage := NewStage(f.decoder, openEncoder, &mocks.VideoProber{}, &mocks.DebugSink{}, logger.NewNoop())

	input := testInput(meta)
	input.Bundle.MicAudio = "/rec/recording-0-mic.m4a"
	input.Bundle.SystemAudio = "/rec/recording-0-system.m4a"
	input.Options.IncludeMicAudio = true
	// System audio present but excluded.

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMic != "/rec/recording-0-mic.m4a" {
		t.Errorf("mic path = %q", gotMic)
	}
	if gotSystem != "" {
		t.Errorf("system path = %q, want empty", gotSystem)
	}
}
