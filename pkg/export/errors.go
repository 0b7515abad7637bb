package export

import (
	"errors"
	"fmt"
)

// Error kinds for a run. Every failure is terminal for that run: the
// core never retries a subprocess, probe or stream error. Callers match
// with errors.Is.
var (
	// ErrFFmpeg marks codec-engine failures: missing binary, refused
	// start, or non-zero exit. User-actionable (install/repair ffmpeg).
	ErrFFmpeg = errors.New("ffmpeg error")

	// ErrBundleNotFound marks a required input file being absent.
	ErrBundleNotFound = errors.New("recording bundle not found")

	// ErrInvalidConfig marks contradictory caller-supplied options.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCancelled marks a caller-requested abort. Not a failure; UIs
	// should not present it as a problem.
	ErrCancelled = errors.New("export cancelled")

	// ErrDecoding marks stream-level corruption on the decode side.
	ErrDecoding = errors.New("decoding error")

	// ErrEncoding marks stream-level failures on the encode side.
	ErrEncoding = errors.New("encoding error")
)

func ffmpegErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFFmpeg, fmt.Sprintf(format, args...))
}

func invalidConfigf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// FFmpegErrf wraps a codec-engine failure description in ErrFFmpeg.
func FFmpegErrf(format string, args ...interface{}) error {
	return ffmpegErrf(format, args...)
}

// BundleNotFoundErrf wraps a missing-input description in ErrBundleNotFound.
func BundleNotFoundErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBundleNotFound, fmt.Sprintf(format, args...))
}

// InvalidConfigErrf wraps a configuration problem in ErrInvalidConfig.
func InvalidConfigErrf(format string, args ...interface{}) error {
	return invalidConfigf(format, args...)
}

// DecodingErrf wraps a decode-side stream failure in ErrDecoding.
func DecodingErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDecoding, fmt.Sprintf(format, args...))
}

// EncodingErrf wraps an encode-side stream failure in ErrEncoding.
func EncodingErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrEncoding, fmt.Sprintf(format, args...))
}
