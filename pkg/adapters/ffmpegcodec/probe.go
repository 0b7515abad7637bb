package ffmpegcodec

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// Prober reads stream metadata with ffprobe. Packets are counted rather
// than trusting the container's frame count, which is wrong or missing
// for fragmented recordings.
type Prober struct {
	ffprobePath string
}

// NewProber locates ffprobe and returns a prober.
func NewProber() (*Prober, error) {
	path, err := FindFFprobe()
	if err != nil {
		return nil, err
	}
	return &Prober{ffprobePath: path}, nil
}

// Probe returns dimensions, packet-counted frame total and frame rate
// of the first video stream in the file.
func (p *Prober) Probe(path string) (ports.VideoMeta, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=width,height,r_frame_rate,nb_read_packets",
		"-of", "csv=p=0",
		path,
	}

	cmd := exec.Command(p.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ports.VideoMeta{}, export.FFmpegErrf("ffprobe failed for %s: %s: %s",
			path, err, strings.TrimSpace(stderr.String()))
	}

	return parseProbeOutput(strings.TrimSpace(stdout.String()))
}

// parseProbeOutput parses one CSV line in the field order requested
// above: width,height,r_frame_rate,nb_read_packets.
func parseProbeOutput(line string) (ports.VideoMeta, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return ports.VideoMeta{}, export.DecodingErrf("unexpected ffprobe output: %q", line)
	}

	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return ports.VideoMeta{}, export.DecodingErrf("bad width in ffprobe output: %q", fields[0])
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return ports.VideoMeta{}, export.DecodingErrf("bad height in ffprobe output: %q", fields[1])
	}
	fps, err := parseFrameRate(fields[2])
	if err != nil {
		return ports.VideoMeta{}, err
	}
	frames, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return ports.VideoMeta{}, export.DecodingErrf("bad packet count in ffprobe output: %q", fields[3])
	}

	if width <= 0 || height <= 0 {
		return ports.VideoMeta{}, export.DecodingErrf("non-positive dimensions %dx%d", width, height)
	}

	return ports.VideoMeta{
		Width:       width,
		Height:      height,
		TotalFrames: frames,
		FPS:         fps,
	}, nil
}

// parseFrameRate parses ffprobe's rational frame rate ("60/1", "30000/1001").
func parseFrameRate(s string) (float64, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return 0, export.DecodingErrf("bad frame rate %q", s)
		}
		return v, nil
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, export.DecodingErrf("bad frame rate %q", s)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, export.DecodingErrf("bad frame rate %q", s)
	}
	v := n / d
	if v <= 0 {
		return 0, export.DecodingErrf("non-positive frame rate %q", s)
	}
	return v, nil
}

var _ ports.VideoProber = (*Prober)(nil)
