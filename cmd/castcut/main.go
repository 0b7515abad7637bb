// Package main provides the CLI entry point for castcut.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/castcut/pkg/adapters/ffmpegcodec"
	"github.com/user/castcut/pkg/adapters/framesink"
	"github.com/user/castcut/pkg/adapters/logger"
	"github.com/user/castcut/pkg/adapters/nullsink"
	"github.com/user/castcut/pkg/adapters/osfilesystem"
	"github.com/user/castcut/pkg/adapters/springsmoother"
	"github.com/user/castcut/pkg/config"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/orchestrator"
	"github.com/user/castcut/pkg/pipeline"
	"github.com/user/castcut/pkg/ports"
	"github.com/user/castcut/pkg/stages/editexport"
	"github.com/user/castcut/pkg/stages/prepare"
	"github.com/user/castcut/pkg/stages/render"
	"github.com/user/castcut/pkg/stages/smooth"
	"github.com/user/castcut/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Export   ExportCmd   `cmd:"" help:"Export a recording project to a video file."`
	Probe    ProbeCmd    `cmd:"" help:"Show metadata of a recorded video."`
	Waveform WaveformCmd `cmd:"" help:"Compute amplitude peaks of an audio track as JSON."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// ExportCmd defines the export subcommand.
type ExportCmd struct {
	// Required arguments
	ProjectDir string `arg:"" help:"Recording project directory."`
	Output     string `short:"o" required:"" help:"Output video file path."`

	// Config file; flags win over file values
	Config string `short:"c" help:"YAML config file path."`

	// Output format
	Format  string `short:"f" default:"mp4" enum:"mp4,gif,webm" help:"Output format (mp4, gif, webm)."`
	Quality string `short:"q" default:"medium" enum:"low,medium,high,lossless" help:"Quality tier (low, medium, high, lossless)."`
	Width   *int   `short:"W" help:"Output video width (default: source width)."`
	Height  *int   `short:"H" help:"Output video height (default: source height)."`
	FPS     *int   `help:"Output frame rate (default: source rate)."`

	// Overlays and audio
	NoCursor      bool `help:"Disable the smoothed cursor overlay."`
	NoWebcam      bool `help:"Disable the webcam overlay."`
	NoMicAudio    bool `help:"Disable the microphone audio track."`
	NoSystemAudio bool `help:"Disable the system audio track."`

	// Edits
	Edits string `help:"JSON edit list for the screen track."`

	// Codec binaries
	FFmpegPath  string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default)."`
	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default)."`

	// Summary
	Summary string `help:"Output execution summary to file (Markdown format)."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Video string `arg:"" help:"Video file path."`

	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default)."`
}

// WaveformCmd defines the waveform subcommand.
type WaveformCmd struct {
	Audio string `arg:"" help:"Audio file path."`

	Output         string `short:"o" help:"Write the waveform JSON to a file instead of stdout."`
	PeaksPerSecond int    `default:"50" help:"Amplitude peaks per second of audio."`

	FFmpegPath  string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default)."`
	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default)."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("castcut"),
		kong.Description("Export screen recording projects to shareable videos."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the export command.
func (cmd *ExportCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	if cfg.FFmpegPath != "" {
		ffmpegcodec.SetFFmpegPath(cfg.FFmpegPath)
	}
	if cfg.FFprobePath != "" {
		ffmpegcodec.SetFFprobePath(cfg.FFprobePath)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create adapters
	fs := osfilesystem.New()
	prober, err := ffmpegcodec.NewProber()
	if err != nil {
		return err
	}
	runner, err := ffmpegcodec.NewEditRunner(log)
	if err != nil {
		return err
	}
	smoother := springsmoother.New()

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = framesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	openDecoder := pipeline.OpenDecoder(func(path string, meta ports.VideoMeta) (ports.FrameSource, error) {
		return ffmpegcodec.OpenDecoder(path, meta)
	})
	openEncoder := pipeline.OpenEncoder(func(meta ports.VideoMeta, opts export.Options, micPath, systemPath string) (ports.FrameSink, error) {
		return ffmpegcodec.NewEncoder(ffmpegcodec.EncoderConfig{
			SourceWidth:  meta.Width,
			SourceHeight: meta.Height,
			SourceFPS:    meta.FPS,
			Options:      opts,
			MicPath:      micPath,
			SystemPath:   systemPath,
		})
	})

	// Create stages
	prepareStage := prepare.NewStage(fs, prober, log)
	smoothStage := smooth.NewStage(smoother, log)
	renderStage := render.NewStage(openDecoder, openEncoder, prober, sink, log)
	editStage := editexport.NewStage(runner, log)

	// Create orchestrator
	orch := orchestrator.New(
		prepareStage,
		smoothStage,
		renderStage,
		editStage,
		fs,
		sink,
		log,
	)

	// Build export options
	opts := cfg.ToOptions()
	edits, err := cfg.LoadEdits(fs)
	if err != nil {
		return err
	}
	opts.ScreenEdits = edits

	job := orch.Export(ctx, cfg.ProjectDir, opts)

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		job.Cancel()
		cancel()
	}()

	reportProgress(job, log)

	if err := job.Wait(); err != nil {
		return err
	}
	log.Info("Output saved to %s", cfg.OutputPath)

	if cmd.Summary != "" {
		if err := cmd.writeSummary(cfg, opts, prober, fs); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", cmd.Summary)
		}
	}
	return nil
}

// writeSummary probes the finished output file and writes a Markdown
// run summary next to it.
func (cmd *ExportCmd) writeSummary(cfg config.Config, opts export.Options, prober ports.VideoProber, fs ports.FileSystem) error {
	video := summarizer.VideoInfo{}
	if meta, err := prober.Probe(cfg.OutputPath); err == nil {
		video.Width = meta.Width
		video.Height = meta.Height
		video.FPS = meta.FPS
		video.FrameCount = int(meta.TotalFrames)
		if meta.FPS > 0 {
			video.DurationMs = int(float64(meta.TotalFrames) / meta.FPS * 1000.0)
		}
	}
	if info, err := os.Stat(cfg.OutputPath); err == nil {
		video.FileSize = info.Size()
	}

	summary := summarizer.NewBuilder().
		WithProject(cfg.ProjectDir, cfg.OutputPath).
		WithSettings(summarizer.Settings{
			Format:             cfg.Format,
			Quality:            cfg.Quality,
			IncludeCursor:      cfg.IncludeCursor,
			IncludeWebcam:      cfg.IncludeWebcam,
			IncludeMicAudio:    cfg.IncludeMicAudio,
			IncludeSystemAudio: cfg.IncludeSystemAudio,
			EditsPath:          cfg.EditsPath,
			UsedEditPath:       opts.ScreenEdits != nil,
		}).
		WithVideo(video).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(cmd.Summary, summary)
}

// reportProgress consumes the job's progress stream and logs stage
// transitions, plus every report at debug level.
func reportProgress(job *export.Job, log ports.Logger) {
	var lastStage export.Stage
	for p := range job.Progress() {
		if p.Stage != lastStage {
			log.Info("%s (%d%%)", string(p.Stage), int(p.Percent))
			lastStage = p.Stage
		} else {
			log.Debug("%s (%d%%)", string(p.Stage), int(p.Percent))
		}
	}
}

// buildConfig merges the config file (when given) with CLI overrides.
func (cmd *ExportCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		var err error
		cfg, err = config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", cmd.Config, err)
		}
	}

	cfg.ProjectDir = cmd.ProjectDir
	cfg.OutputPath = cmd.Output
	cfg.Format = cmd.Format
	cfg.Quality = cmd.Quality

	if cmd.Width != nil {
		cfg.Width = *cmd.Width
	}
	if cmd.Height != nil {
		cfg.Height = *cmd.Height
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}

	if cmd.NoCursor {
		cfg.IncludeCursor = false
	}
	if cmd.NoWebcam {
		cfg.IncludeWebcam = false
	}
	if cmd.NoMicAudio {
		cfg.IncludeMicAudio = false
	}
	if cmd.NoSystemAudio {
		cfg.IncludeSystemAudio = false
	}

	if cmd.Edits != "" {
		cfg.EditsPath = cmd.Edits
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.FFprobePath != "" {
		cfg.FFprobePath = cmd.FFprobePath
	}
	if cmd.Debug {
		cfg.Debug = true
		cfg.DebugDir = cmd.DebugDir
	}

	return cfg, nil
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	if cmd.FFprobePath != "" {
		ffmpegcodec.SetFFprobePath(cmd.FFprobePath)
	}
	prober, err := ffmpegcodec.NewProber()
	if err != nil {
		return err
	}

	meta, err := prober.Probe(cmd.Video)
	if err != nil {
		return err
	}

	fmt.Println(l10n.F("Resolution: %dx%d", meta.Width, meta.Height))
	fmt.Println(l10n.F("Frame rate: %.2f fps", meta.FPS))
	fmt.Println(l10n.F("Frames: %d", meta.TotalFrames))
	if meta.FPS > 0 {
		fmt.Println(l10n.F("Duration: %.2fs", float64(meta.TotalFrames)/meta.FPS))
	}
	return nil
}

// Run executes the waveform command.
func (cmd *WaveformCmd) Run() error {
	if cmd.FFmpegPath != "" {
		ffmpegcodec.SetFFmpegPath(cmd.FFmpegPath)
	}
	if cmd.FFprobePath != "" {
		ffmpegcodec.SetFFprobePath(cmd.FFprobePath)
	}
	extractor, err := ffmpegcodec.NewWaveformExtractor()
	if err != nil {
		return err
	}

	data, err := extractor.Extract(cmd.Audio, cmd.PeaksPerSecond)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if cmd.Output != "" {
		return osfilesystem.New().WriteFile(cmd.Output, encoded)
	}
	fmt.Println(string(encoded))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("castcut version %s", version))
	return nil
}
