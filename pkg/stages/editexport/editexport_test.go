package editexport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/castcut/pkg/adapters/logger"
	"github.com/user/castcut/pkg/bundle"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/mocks"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

func testInput() pipeline.EditExportInput {
	return pipeline.EditExportInput{
		Bundle: &bundle.Bundle{
			ScreenVideo: "/rec/recording-0.mp4",
			MicAudio:    "/rec/recording-0-mic.m4a",
			SystemAudio: "/rec/recording-0-system.m4a",
			WebcamVideo: "/rec/recording-0-webcam.mp4",
		},
		Meta: ports.VideoMeta{Width: 1920, Height: 1080, TotalFrames: 600, FPS: 60},
		Options: export.Options{
			Format:     export.FormatMp4,
			Quality:    export.QualityMedium,
			OutputPath: "/tmp/out.mp4",
		},
		Edits: export.TrackEdits{Segments: []export.Segment{
			{SourceStartMs: 1000, SourceEndMs: 5000, TimeScale: 2.0},
		}},
	}
}

func TestExecuteRunsEditGraph(t *testing.T) {
	runner := &mocks.GraphRunner{}
	stage := NewStage(runner, logger.NewNoop())

	result, err := stage.Execute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.RunCalls != 1 {
		t.Fatalf("runner called %d times, want 1", runner.RunCalls)
	}

	args := strings.Join(runner.Args, " ")
	if !strings.Contains(args, "-filter_complex") {
		t.Errorf("args missing filter_complex: %s", args)
	}
	if !strings.Contains(args, "trim=start=1:end=5") {
		t.Errorf("args missing segment trim: %s", args)
	}
	if !strings.HasSuffix(args, "/tmp/out.mp4") {
		t.Errorf("output path not last: %s", args)
	}

	// 4000ms of source at 2x speed is 2000ms of output.
	if result.OutputDurationMs != 2000 {
		t.Errorf("output duration = %dms, want 2000", result.OutputDurationMs)
	}
}

func TestExecuteExcludedTracksStayOutOfGraph(t *testing.T) {
	runner := &mocks.GraphRunner{}
	stage := NewStage(runner, logger.NewNoop())

	// All tracks present in the bundle, none included.
	if _, err := stage.Execute(context.Background(), testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := strings.Join(runner.Args, " ")
	for _, track := range []string{"mic.m4a", "system.m4a", "webcam.mp4"} {
		if strings.Contains(args, track) {
			t.Errorf("excluded track %s in args: %s", track, args)
		}
	}
}

func TestExecuteIncludedTracksEnterGraph(t *testing.T) {
	runner := &mocks.GraphRunner{}
	stage := NewStage(runner, logger.NewNoop())

	input := testInput()
	input.Options.IncludeMicAudio = true
	input.Options.IncludeSystemAudio = true
	input.Options.IncludeWebcam = true

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := strings.Join(runner.Args, " ")
	for _, want := range []string{"mic.m4a", "system.m4a", "webcam.mp4", "amix=inputs=2"} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %s: %s", want, args)
		}
	}
}

func TestExecuteProgressMapsOutputPosition(t *testing.T) {
	runner := &mocks.GraphRunner{
		RunFunc: func(args []string, onProgress func(uint64), cancelled func() bool) error {
			onProgress(500)
			onProgress(9999) // past the end; must clamp
			return nil
		},
	}
	stage := NewStage(runner, logger.NewNoop())

	var reports []export.Progress
	input := testInput()
	input.OnProgress = func(p export.Progress) {
		reports = append(reports, p)
	}

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].CurrentUnit != 500 || reports[0].TotalUnits != 2000 {
		t.Errorf("first report = %+v", reports[0])
	}
	if reports[1].CurrentUnit != 2000 {
		t.Errorf("overshoot not clamped: %+v", reports[1])
	}
	if reports[1].Percent != 95 {
		t.Errorf("clamped percent = %v, want 95", reports[1].Percent)
	}
}

func TestExecuteRunnerErrorPropagates(t *testing.T) {
	runner := &mocks.GraphRunner{
		RunFunc: func(args []string, onProgress func(uint64), cancelled func() bool) error {
			return export.FFmpegErrf("exit status 1")
		},
	}
	stage := NewStage(runner, logger.NewNoop())

	_, err := stage.Execute(context.Background(), testInput())
	if !errors.Is(err, export.ErrFFmpeg) {
		t.Errorf("expected ErrFFmpeg, got %v", err)
	}
}

func TestExecuteCancellationPropagates(t *testing.T) {
	runner := &mocks.GraphRunner{
		RunFunc: func(args []string, onProgress func(uint64), cancelled func() bool) error {
			if cancelled() {
				return export.ErrCancelled
			}
			return nil
		},
	}
	stage := NewStage(runner, logger.NewNoop())

	input := testInput()
	input.Cancelled = func() bool { return true }

	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, export.ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}
