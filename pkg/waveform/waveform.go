// Package waveform computes audio peak data for visualization: the
// maximum absolute amplitude per time bucket, normalized to 0..1.
package waveform

import "encoding/binary"

// Data is the waveform of one audio track.
type Data struct {
	// Peaks normalized to the 0.0-1.0 range.
	Peaks []float32 `json:"peaks"`
	// DurationMs is the duration of the source audio in milliseconds.
	DurationMs uint64 `json:"durationMs"`
	// PeaksPerSecond is the bucket rate the peaks were computed at.
	PeaksPerSecond int `json:"peaksPerSecond"`
}

// ComputePeaks buckets raw 16-bit signed little-endian mono PCM into
// totalPeaks buckets of peaksPerSecond each covering
// sampleRate/peaksPerSecond source samples. The result is padded with
// zeros or trimmed to exactly totalPeaks entries.
func ComputePeaks(raw []byte, sampleRate, peaksPerSecond, totalPeaks int) []float32 {
	if totalPeaks <= 0 {
		return nil
	}
	if peaksPerSecond <= 0 || sampleRate < peaksPerSecond || len(raw) < 2 {
		return make([]float32, totalPeaks)
	}

	samplesPerPeak := sampleRate / peaksPerSecond
	sampleCount := len(raw) / 2

	peaks := make([]float32, 0, totalPeaks)
	for start := 0; start < sampleCount; start += samplesPerPeak {
		end := min(start+samplesPerPeak, sampleCount)

		var maxAmplitude int32
		for i := start; i < end; i++ {
			s := int32(int16(binary.LittleEndian.Uint16(raw[i*2:])))
			if s < 0 {
				s = -s
			}
			if s > maxAmplitude {
				maxAmplitude = s
			}
		}
		peaks = append(peaks, float32(maxAmplitude)/32767.0)
	}

	// Pad or trim to the exact size the duration promised.
	for len(peaks) < totalPeaks {
		peaks = append(peaks, 0)
	}
	return peaks[:totalPeaks]
}
