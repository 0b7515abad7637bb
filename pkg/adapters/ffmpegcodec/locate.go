// Package ffmpegcodec drives external ffmpeg/ffprobe processes: stream
// probing, raw RGBA frame decoding and encoding over pipes, and running
// complete edit filter graphs with progress reporting.
package ffmpegcodec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/user/castcut/pkg/export"
)

// Both sentinels are also classified as export.ErrFFmpeg: a missing
// engine is a codec-engine failure the user fixes by installing ffmpeg.
var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")
	// ErrFFprobeNotFound is returned when no ffprobe binary can be located.
	ErrFFprobeNotFound = errors.New("ffprobe not found")
)

var (
	customFFmpegPath  string
	customFFprobePath string
)

// SetFFmpegPath overrides ffmpeg discovery with an explicit binary path.
// Pass "" to restore automatic discovery.
func SetFFmpegPath(path string) {
	customFFmpegPath = path
}

// SetFFprobePath overrides ffprobe discovery with an explicit binary path.
// Pass "" to restore automatic discovery.
func SetFFprobePath(path string) {
	customFFprobePath = path
}

// FindFFmpeg searches for ffmpeg in PATH and common locations.
// Priority: 1) custom path (set via SetFFmpegPath), 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	return findBinary("ffmpeg", customFFmpegPath, "FFMPEG_PATH", ErrFFmpegNotFound)
}

// FindFFprobe searches for ffprobe in PATH and common locations.
// Priority: 1) custom path (set via SetFFprobePath), 2) FFPROBE_PATH env, 3) PATH, 4) common locations
func FindFFprobe() (string, error) {
	return findBinary("ffprobe", customFFprobePath, "FFPROBE_PATH", ErrFFprobeNotFound)
}

func findBinary(name, customPath, envVar string, notFound error) (string, error) {
	// Check custom path first
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: %w: custom path %s not found", export.ErrFFmpeg, notFound, customPath)
	}

	// Check environment variable
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %w: %s %s not found", export.ErrFFmpeg, notFound, envVar, envPath)
	}

	// Check PATH
	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	// Check common locations
	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
			`C:\Program Files (x86)\ffmpeg\bin\` + execName,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/" + name,
			"/usr/local/bin/" + name,
			"/usr/bin/" + name,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/" + name,
			"/usr/local/bin/" + name,
			"/opt/homebrew/bin/" + name,
			"/snap/bin/" + name,
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %w", export.ErrFFmpeg, notFound)
}
