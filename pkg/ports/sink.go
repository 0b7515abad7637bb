package ports

// DebugSink abstracts debug output for intermediate export results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveBundleJSON saves the loaded bundle summary as JSON.
	SaveBundleJSON(data []byte) error

	// SaveCursorTimelineJSON saves the smoothed cursor timeline as JSON.
	SaveCursorTimelineJSON(data []byte) error

	// SaveComposedFrame saves one composited frame. timeMs is the frame's
	// timestamp on the source timeline.
	SaveComposedFrame(index uint64, timeMs float64, rgba []byte, width, height int) error
}
