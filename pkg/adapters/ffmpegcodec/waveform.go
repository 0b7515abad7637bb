package ffmpegcodec

import (
	"bytes"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/waveform"
)

// Audio is decoded to mono PCM at this rate before peak bucketing.
// 8 kHz is plenty for amplitude envelopes and keeps the pipe small.
const waveformSampleRate = 8000

// WaveformExtractor computes amplitude peaks for an audio track by
// decoding it to raw PCM with ffmpeg.
type WaveformExtractor struct {
	ffmpegPath  string
	ffprobePath string
}

// NewWaveformExtractor locates ffmpeg and ffprobe and returns an extractor.
func NewWaveformExtractor() (*WaveformExtractor, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	ffprobePath, err := FindFFprobe()
	if err != nil {
		return nil, err
	}
	return &WaveformExtractor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}, nil
}

// Extract decodes the audio file and returns peaksPerSecond amplitude
// peaks for every second of its duration.
func (e *WaveformExtractor) Extract(path string, peaksPerSecond int) (waveform.Data, error) {
	if peaksPerSecond <= 0 {
		return waveform.Data{}, export.InvalidConfigErrf("peaks per second must be positive, got %d", peaksPerSecond)
	}

	durationMs, err := e.probeDuration(path)
	if err != nil {
		return waveform.Data{}, err
	}

	durationSecs := float64(durationMs) / 1000.0
	totalPeaks := int(math.Ceil(durationSecs * float64(peaksPerSecond)))
	if totalPeaks == 0 {
		return waveform.Data{DurationMs: durationMs, PeaksPerSecond: peaksPerSecond}, nil
	}

	cmd := exec.Command(e.ffmpegPath, waveformDecodeArgs(path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return waveform.Data{}, export.FFmpegErrf("ffmpeg PCM decode failed for %s: %s: %s",
			path, err, strings.TrimSpace(stderr.String()))
	}

	return waveform.Data{
		Peaks:          waveform.ComputePeaks(stdout.Bytes(), waveformSampleRate, peaksPerSecond, totalPeaks),
		DurationMs:     durationMs,
		PeaksPerSecond: peaksPerSecond,
	}, nil
}

// probeDuration returns the container duration in milliseconds.
func (e *WaveformExtractor) probeDuration(path string) (uint64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.Command(e.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, export.FFmpegErrf("ffprobe failed for %s: %s: %s",
			path, err, strings.TrimSpace(stderr.String()))
	}

	return parseDurationMs(strings.TrimSpace(stdout.String()))
}

// parseDurationMs parses ffprobe's duration in seconds ("12.345").
func parseDurationMs(s string) (uint64, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, export.DecodingErrf("bad duration in ffprobe output: %q", s)
	}
	return uint64(secs * 1000.0), nil
}

// waveformDecodeArgs builds the decode command: downmix to mono,
// resample, and stream signed 16-bit PCM to stdout.
func waveformDecodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-i", path,
		"-ac", "1",
		"-ar", strconv.Itoa(waveformSampleRate),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"pipe:1",
	}
}
