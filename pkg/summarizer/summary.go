// Package summarizer provides summary generation for export results.
package summarizer

import "time"

// Summary contains all data collected during one export run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Project information
	Project ProjectInfo

	// Export settings
	Settings Settings

	// Output video details
	Video VideoInfo
}

// ProjectInfo identifies the exported recording project.
type ProjectInfo struct {
	Dir        string
	OutputPath string
}

// Settings contains the export configuration.
type Settings struct {
	Format  string
	Quality string

	IncludeCursor      bool
	IncludeWebcam      bool
	IncludeMicAudio    bool
	IncludeSystemAudio bool

	// EditsPath is the screen edit list file, "" when none was given.
	EditsPath string

	// UsedEditPath reports whether the run took the fast edit path.
	UsedEditPath bool
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	DurationMs int
	FileSize   int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithProject sets project information.
func (b *Builder) WithProject(dir, outputPath string) *Builder {
	b.summary.Project = ProjectInfo{
		Dir:        dir,
		OutputPath: outputPath,
	}
	return b
}

// WithSettings sets export settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets output video information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
