package ports

// VideoMeta describes a probed video stream.
type VideoMeta struct {
	Width       int
	Height      int
	TotalFrames uint64
	FPS         float64
}

// FrameSize returns the byte length of one raw RGBA frame.
func (m VideoMeta) FrameSize() int {
	return m.Width * m.Height * 4
}

// VideoProber extracts stream metadata from a media file.
type VideoProber interface {
	// Probe returns the dimensions, packet-counted frame total and frame
	// rate of the first video stream in the file.
	Probe(path string) (VideoMeta, error)
}

// FrameSource produces raw RGBA frames in strict sequential order.
// There is no random access; each frame is width*height*4 bytes.
type FrameSource interface {
	// Meta returns the metadata of the opened stream.
	Meta() VideoMeta

	// ReadFrame returns the next frame, or nil at clean end-of-stream.
	// A truncated read mid-frame is an error.
	ReadFrame() ([]byte, error)

	// Close terminates the underlying decoder. Safe to call more than once.
	Close()
}

// FrameSink consumes raw RGBA frames in strict sequential order.
type FrameSink interface {
	// WriteFrame writes exactly one frame's worth of bytes.
	WriteFrame(frame []byte) error

	// Finish signals end-of-stream and blocks until the encoder exits.
	// A non-zero exit is surfaced as an error.
	Finish() error

	// Close terminates the encoder without finalizing the output.
	// Used on error and cancellation paths.
	Close()
}
