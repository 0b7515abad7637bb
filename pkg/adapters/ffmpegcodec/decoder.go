package ffmpegcodec

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// Decoder streams raw RGBA frames out of a video file through an
// ffmpeg child process. Frames come out strictly sequentially; there
// is no seeking.
type Decoder struct {
	meta ports.VideoMeta

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	eof    bool
	closed bool
}

// OpenDecoder starts an ffmpeg process decoding videoPath to raw RGBA
// at the probed dimensions. The -s flag pins the output size so every
// frame is exactly meta.FrameSize() bytes regardless of what the
// stream itself claims.
func OpenDecoder(videoPath string, meta ports.VideoMeta) (*Decoder, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	args := []string{
		"-v", "error",
		"-i", videoPath,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		"pipe:1",
	}

	d := &Decoder{meta: meta}
	d.cmd = exec.Command(ffmpegPath, args...)
	d.cmd.Stderr = &d.stderr

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return nil, export.DecodingErrf("failed to get stdout pipe: %s", err)
	}
	d.stdout = stdout

	if err := d.cmd.Start(); err != nil {
		return nil, export.DecodingErrf("failed to start ffmpeg: %s", err)
	}

	return d, nil
}

// Meta returns the metadata of the opened stream.
func (d *Decoder) Meta() ports.VideoMeta {
	return d.meta
}

// ReadFrame returns the next raw RGBA frame, or nil at clean
// end-of-stream. A read that ends mid-frame is a decode error.
func (d *Decoder) ReadFrame() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.eof {
		return nil, nil
	}

	frame := make([]byte, d.meta.FrameSize())
	n, err := io.ReadFull(d.stdout, frame)
	switch err {
	case nil:
		return frame, nil
	case io.EOF:
		d.eof = true
		if waitErr := d.cmd.Wait(); waitErr != nil {
			return nil, export.DecodingErrf("ffmpeg decode failed: %s: %s",
				waitErr, strings.TrimSpace(d.stderr.String()))
		}
		return nil, nil
	case io.ErrUnexpectedEOF:
		d.eof = true
		return nil, export.DecodingErrf("truncated frame: %d of %d bytes", n, d.meta.FrameSize())
	default:
		return nil, export.DecodingErrf("frame read error: %s", err)
	}
}

// Close terminates the decoder process. Safe to call more than once.
func (d *Decoder) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	if d.stdout != nil {
		d.stdout.Close()
	}
	if !d.eof && d.cmd != nil && d.cmd.Process != nil {
		d.cmd.Process.Kill()
		d.cmd.Wait()
	}
}

var _ ports.FrameSource = (*Decoder)(nil)
