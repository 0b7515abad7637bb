package ffmpegcodec

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ffgraph"
	"github.com/user/castcut/pkg/ports"
)

// EncoderConfig describes one encoding session: composited frames come
// in over stdin at the source dimensions and rate; scaling, frame rate
// conversion and audio muxing happen inside the ffmpeg process.
type EncoderConfig struct {
	SourceWidth  int
	SourceHeight int
	SourceFPS    float64

	Options export.Options

	// MicPath and SystemPath are the audio tracks to mux, already gated
	// on the Include* flags by the caller. Empty means absent.
	MicPath    string
	SystemPath string
}

// Encoder feeds raw RGBA frames to an ffmpeg child process over stdin.
type Encoder struct {
	cfg EncoderConfig

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	finished bool
	closed   bool
}

// NewEncoder starts the encoding process. The output file is written
// directly to cfg.Options.OutputPath; on failure the partial file is
// the caller's to clean up.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	e := &Encoder{cfg: cfg}
	e.cmd = exec.Command(ffmpegPath, encoderArgs(cfg)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, export.EncodingErrf("failed to get stdin pipe: %s", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return nil, export.EncodingErrf("failed to start ffmpeg: %s", err)
	}

	return e, nil
}

// WriteFrame writes exactly one frame's worth of RGBA bytes.
func (e *Encoder) WriteFrame(frame []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return export.EncodingErrf("encoder already closed")
	}
	if _, err := e.stdin.Write(frame); err != nil {
		return export.EncodingErrf("failed to write frame: %s: %s",
			err, strings.TrimSpace(e.stderr.String()))
	}
	return nil
}

// Finish closes stdin and waits for ffmpeg to finalize the output.
func (e *Encoder) Finish() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return export.EncodingErrf("encoder already closed")
	}

	e.stdin.Close()
	e.stdin = nil
	e.finished = true

	if err := e.cmd.Wait(); err != nil {
		return export.EncodingErrf("ffmpeg encoding failed: %s: %s",
			err, strings.TrimSpace(e.stderr.String()))
	}
	return nil
}

// Close terminates the encoder without finalizing the output. Used on
// error and cancellation paths; safe after Finish.
func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if !e.finished && e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
}

// encoderArgs builds the complete argument list for one session.
func encoderArgs(cfg EncoderConfig) []string {
	opts := cfg.Options
	isGif := opts.Format == export.FormatGif

	outputWidth := opts.OutputWidth(cfg.SourceWidth)
	outputHeight := opts.OutputHeight(cfg.SourceHeight)
	outputFPS := opts.OutputFPS(cfg.SourceFPS)

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", cfg.SourceWidth, cfg.SourceHeight),
		"-r", fmt.Sprintf("%.2f", cfg.SourceFPS),
		"-i", "pipe:0",
	}

	// GIF drops audio entirely.
	micIndex := 0
	systemIndex := 0
	nextInput := 1
	if !isGif && cfg.MicPath != "" {
		args = append(args, "-i", cfg.MicPath)
		micIndex = nextInput
		nextInput++
	}
	if !isGif && cfg.SystemPath != "" {
		args = append(args, "-i", cfg.SystemPath)
		systemIndex = nextInput
	}

	var videoFilter string
	switch {
	case isGif:
		videoFilter = ffgraph.GifPaletteFilter("0:v", outputFPS, outputWidth)
	case cfg.SourceWidth != outputWidth || cfg.SourceHeight != outputHeight:
		videoFilter = fmt.Sprintf(
			"[0:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black,fps=%d[vout]",
			outputWidth, outputHeight, outputWidth, outputHeight, outputFPS)
	default:
		videoFilter = fmt.Sprintf("[0:v]fps=%d[vout]", outputFPS)
	}

	filterParts := []string{videoFilter}
	audioMap := ""
	switch {
	case micIndex > 0 && systemIndex > 0:
		filterParts = append(filterParts, fmt.Sprintf(
			"[%d:a][%d:a]amix=inputs=2:duration=longest[aout]", micIndex, systemIndex))
		audioMap = "[aout]"
	case micIndex > 0:
		audioMap = fmt.Sprintf("%d:a", micIndex)
	case systemIndex > 0:
		audioMap = fmt.Sprintf("%d:a", systemIndex)
	}

	args = append(args, "-filter_complex", strings.Join(filterParts, ";"))
	args = append(args, "-map", "[vout]")
	if audioMap != "" {
		args = append(args, "-map", audioMap)
	}

	args = append(args, ffgraph.CodecArgs(opts)...)
	if audioMap != "" {
		args = append(args, "-c:a", "aac", "-b:a", "192k", "-shortest")
	}

	args = append(args, opts.OutputPath)
	return args
}

var _ ports.FrameSink = (*Encoder)(nil)
