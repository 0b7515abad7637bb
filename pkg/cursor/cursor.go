// Package cursor defines the cursor timeline consumed by the frame
// compositor: raw mouse-move samples as captured during recording, and
// the smoothed samples produced from them at the source frame rate.
package cursor

import "sort"

// Move is a raw mouse-move sample from the recording side-channel.
type Move struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	CursorID      string  `json:"cursorId"`
	ProcessTimeMs float64 `json:"processTimeMs"`
}

// Sample is one smoothed cursor position on the source timeline.
type Sample struct {
	ProcessTimeMs float64 `json:"processTimeMs"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	CursorID      string  `json:"cursorId"`
}

// SpringConfig tunes the spring-physics smoothing model.
type SpringConfig struct {
	Stiffness float64 `json:"stiffness" yaml:"stiffness"`
	Damping   float64 `json:"damping" yaml:"damping"`
	Mass      float64 `json:"mass" yaml:"mass"`
}

// DefaultSpringConfig returns the tuning used by the recorder UI.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness: 470.0,
		Damping:   70.0,
		Mass:      3.0,
	}
}

// Timeline is a sparse sequence of smoothed samples ordered by
// ProcessTimeMs, queried at arbitrary output-frame timestamps.
type Timeline []Sample

// At returns the sample closest at or before timeMs. When timeMs is past
// the end the last sample is returned. Returns nil for an empty timeline.
func (t Timeline) At(timeMs float64) *Sample {
	if len(t) == 0 {
		return nil
	}
	// First sample strictly after timeMs; the one before it is the match.
	idx := sort.Search(len(t), func(i int) bool {
		return t[i].ProcessTimeMs > timeMs
	})
	if idx > 0 {
		idx--
	}
	return &t[idx]
}

// DurationMs returns the timestamp of the last sample, or 0 when empty.
func (t Timeline) DurationMs() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].ProcessTimeMs
}
