package ffmpegcodec

import (
	"bufio"
	"bytes"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// cancelPollInterval is how often a running edit graph checks for
// cancellation.
const cancelPollInterval = 100 * time.Millisecond

// EditRunner executes a complete edit filter graph in one ffmpeg
// process, reporting output progress parsed from the -progress stream.
type EditRunner struct {
	ffmpegPath string
	log        ports.Logger
}

// NewEditRunner locates ffmpeg and returns a runner.
func NewEditRunner(log ports.Logger) (*EditRunner, error) {
	path, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	return &EditRunner{ffmpegPath: path, log: log.WithComponent("ffmpeg")}, nil
}

// Run executes ffmpeg with the given arguments. The argument list must
// end with "-progress pipe:1" ahead of the output path so progress
// key/value lines arrive on stdout. onProgress receives the output
// position in milliseconds; cancelled is polled while the process runs
// and a true result kills it and returns ErrCancelled.
func (r *EditRunner) Run(args []string, onProgress func(outMs uint64), cancelled func() bool) error {
	cmd := exec.Command(r.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return export.FFmpegErrf("failed to get stdout pipe: %s", err)
	}

	if err := cmd.Start(); err != nil {
		return export.FFmpegErrf("failed to start ffmpeg: %s", err)
	}

	r.log.Debug("Started ffmpeg pid %d with %d args", cmd.Process.Pid, len(args))

	// Poll for cancellation while the process runs.
	done := make(chan struct{})
	wasCancelled := false
	go func() {
		ticker := time.NewTicker(cancelPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if cancelled != nil && cancelled() {
					wasCancelled = true
					cmd.Process.Kill()
					return
				}
			}
		}
	}()

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if outMs, ok := parseProgressLine(scanner.Text()); ok && onProgress != nil {
			onProgress(outMs)
		}
	}

	waitErr := cmd.Wait()
	close(done)

	if wasCancelled {
		return export.ErrCancelled
	}
	if waitErr != nil {
		return export.FFmpegErrf("ffmpeg exited with error: %s: %s",
			waitErr, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// parseProgressLine extracts the output position from one -progress
// key/value line. Despite the name, out_time_ms is in microseconds;
// it is converted to milliseconds here.
func parseProgressLine(line string) (uint64, bool) {
	value, found := strings.CutPrefix(strings.TrimSpace(line), "out_time_ms=")
	if !found {
		return 0, false
	}
	us, err := strconv.ParseInt(value, 10, 64)
	if err != nil || us < 0 {
		// Early progress reports can carry "N/A" or negative values.
		return 0, false
	}
	return uint64(us) / 1000, true
}
