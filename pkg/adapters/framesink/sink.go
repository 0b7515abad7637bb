// Package framesink provides a file-based debug sink that dumps
// intermediate export artifacts: the loaded bundle summary, the
// smoothed cursor timeline and annotated snapshots of composited
// frames.
package framesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/user/castcut/pkg/ports"
)

// Sink saves debug output under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new frame sink writing under baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveBundleJSON saves the loaded bundle summary as JSON.
func (s *Sink) SaveBundleJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "bundle.json")
	return s.fs.WriteFile(path, data)
}

// SaveCursorTimelineJSON saves the smoothed cursor timeline as JSON.
func (s *Sink) SaveCursorTimelineJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "cursor-timeline.json")
	return s.fs.WriteFile(path, data)
}

// SaveComposedFrame saves one composited frame as an annotated PNG.
// The frame index and source timestamp are stamped into the top-left
// corner so dumped frames can be matched against progress logs.
func (s *Sink) SaveComposedFrame(index uint64, timeMs float64, rgba []byte, width, height int) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	img := &image.RGBA{
		Pix:    rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	dc := gg.NewContext(width, height)
	dc.DrawImage(img, 0, 0)

	label := fmt.Sprintf("frame %d @ %.1fms", index, timeMs)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(4, 4, float64(8*len(label)+12), 20)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawString(label, 10, 18)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame-%05d.png", index))
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
