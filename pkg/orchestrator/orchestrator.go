// Package orchestrator coordinates the export pipeline stages: prepare,
// smooth, and one of the two delivery paths (edit graph or frame
// composition), with progress and cancellation flowing through a Job
// handle.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
)

// Orchestrator coordinates the execution of the export stages.
type Orchestrator struct {
	prepareStage pipeline.Stage[pipeline.PrepareInput, pipeline.PrepareResult]
	smoothStage  pipeline.Stage[pipeline.SmoothInput, pipeline.SmoothResult]
	renderStage  pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult]
	editStage    pipeline.Stage[pipeline.EditExportInput, pipeline.EditExportResult]
	fs           ports.FileSystem
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	prepareStage pipeline.Stage[pipeline.PrepareInput, pipeline.PrepareResult],
	smoothStage pipeline.Stage[pipeline.SmoothInput, pipeline.SmoothResult],
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult],
	editStage pipeline.Stage[pipeline.EditExportInput, pipeline.EditExportResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		prepareStage: prepareStage,
		smoothStage:  smoothStage,
		renderStage:  renderStage,
		editStage:    editStage,
		fs:           fs,
		sink:         sink,
		logger:       logger,
	}
}

// RunResult contains the results of one export run.
type RunResult struct {
	UsedEditPath     bool
	FramesWritten    uint64
	OutputDurationMs uint64
	OutputPath       string
}

// Export starts an export asynchronously and returns its Job handle.
// The job carries progress reports, cancellation and the final error.
func (o *Orchestrator) Export(ctx context.Context, projectDir string, opts export.Options) *export.Job {
	job := export.NewJob()
	go func() {
		_, err := o.Run(ctx, projectDir, opts, job)
		if err != nil && !errors.Is(err, export.ErrCancelled) {
			job.Publish(export.Failed(err.Error()))
		}
		job.Finish(err)
	}()
	return job
}

// Run executes one export synchronously, reporting progress through
// job. Cancellation comes from the job handle or the context.
func (o *Orchestrator) Run(ctx context.Context, projectDir string, opts export.Options, job *export.Job) (RunResult, error) {
	publish := func(p export.Progress) {
		if job != nil {
			job.Publish(p)
		}
	}
	cancelled := func() bool {
		return (job != nil && job.Cancelled()) || ctx.Err() != nil
	}

	o.logger.Info("Exporting %s to %s (%s, %s quality)...",
		projectDir, opts.OutputPath, string(opts.Format), string(opts.Quality))

	// 1. Prepare: load, probe, pick the path
	publish(export.Preparing())
	prep, err := o.prepareStage.Execute(ctx, pipeline.PrepareInput{
		ProjectDir: projectDir,
		Options:    opts,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("prepare stage: %w", err)
	}

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(prep.Bundle.Summarize(), "", "  "); err == nil {
			o.sink.SaveBundleJSON(data)
		}
	}

	if cancelled() {
		return RunResult{}, export.ErrCancelled
	}

	result := RunResult{
		UsedEditPath: prep.UseEditPath,
		OutputPath:   opts.OutputPath,
	}

	if prep.UseEditPath {
		o.logger.Info("Using fast edit path")
		edited, err := o.editStage.Execute(ctx, pipeline.EditExportInput{
			Bundle:     prep.Bundle,
			Meta:       prep.Meta,
			Options:    opts,
			Edits:      prep.Edits,
			OnProgress: publish,
			Cancelled:  cancelled,
		})
		if err != nil {
			return RunResult{}, fmt.Errorf("edit export stage: %w", err)
		}
		result.OutputDurationMs = edited.OutputDurationMs
	} else {
		o.logger.Info("Using frame composition path")

		// 2. Smooth cursor data at the source frame rate
		publish(export.SmoothingCursor(5))
		var moves []cursor.Move
		if opts.IncludeCursor {
			moves = prep.Bundle.MouseMoves
		}
		smoothed, err := o.smoothStage.Execute(ctx, pipeline.SmoothInput{
			Moves:  moves,
			Config: cursor.DefaultSpringConfig(),
			FPS:    prep.Meta.FPS,
		})
		if err != nil {
			return RunResult{}, fmt.Errorf("smooth stage: %w", err)
		}
		publish(export.SmoothingCursor(10))

		if o.sink.Enabled() && len(smoothed.Timeline) > 0 {
			if data, err := json.MarshalIndent(smoothed.Timeline, "", "  "); err == nil {
				o.sink.SaveCursorTimelineJSON(data)
			}
		}

		if cancelled() {
			return RunResult{}, export.ErrCancelled
		}

		// 3. Decode, composite and encode frame by frame
		rendered, err := o.renderStage.Execute(ctx, pipeline.RenderInput{
			Bundle:     prep.Bundle,
			Meta:       prep.Meta,
			Options:    opts,
			Timeline:   smoothed.Timeline,
			OnProgress: publish,
			Cancelled:  cancelled,
		})
		if err != nil {
			return RunResult{}, fmt.Errorf("render stage: %w", err)
		}
		result.FramesWritten = rendered.FramesWritten
		result.OutputDurationMs = prep.Edits.TotalOutputDurationMs()
	}

	// 4. Finalize: the encoder has drained; confirm the file landed
	publish(export.Finalizing())
	if ok, err := o.fs.Exists(opts.OutputPath); err != nil || !ok {
		return RunResult{}, export.EncodingErrf("output file missing: %s", opts.OutputPath)
	}

	o.logger.Info("Export completed: %s", opts.OutputPath)
	publish(export.Complete())

	return result, nil
}
