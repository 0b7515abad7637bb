package bundle

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/castcut/pkg/ports"
)

// containerDurationMs reads the movie duration from the MP4 movie
// header. Used to decide whether supplied edits still cover the full
// source. Fragmented recordings without a finalized mvhd report 0.
func containerDurationMs(fs ports.FileSystem, videoPath string) (uint64, error) {
	data, err := fs.ReadFile(videoPath)
	if err != nil {
		return 0, err
	}

	f, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode mp4: %w", err)
	}

	if f.Moov == nil || f.Moov.Mvhd == nil || f.Moov.Mvhd.Timescale == 0 {
		return 0, nil
	}
	mvhd := f.Moov.Mvhd
	return mvhd.Duration * 1000 / uint64(mvhd.Timescale), nil
}
