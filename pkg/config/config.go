// Package config provides configuration loading and management.
package config

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// Config represents the full configuration for an export run. Flags
// and YAML share this shape; flags win when both are given.
type Config struct {
	// Input/Output
	ProjectDir string `yaml:"project_dir"`
	OutputPath string `yaml:"output"`

	// Output format
	Format  string `yaml:"format"`
	Quality string `yaml:"quality"`
	Width   int    `yaml:"width"`  // 0 inherits the source width
	Height  int    `yaml:"height"` // 0 inherits the source height
	FPS     int    `yaml:"fps"`    // 0 inherits the source rate

	// Overlays and audio
	IncludeCursor      bool `yaml:"include_cursor"`
	IncludeWebcam      bool `yaml:"include_webcam"`
	IncludeMicAudio    bool `yaml:"include_mic_audio"`
	IncludeSystemAudio bool `yaml:"include_system_audio"`

	// EditsPath points at a JSON edit list for the screen track.
	EditsPath string `yaml:"edits"`

	// Cursor smoothing
	Spring cursor.SpringConfig `yaml:"spring"`

	// Codec binaries; empty means automatic discovery.
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Format:  string(export.FormatMp4),
		Quality: string(export.QualityMedium),

		IncludeCursor:      true,
		IncludeWebcam:      true,
		IncludeMicAudio:    true,
		IncludeSystemAudio: true,

		Spring: cursor.DefaultSpringConfig(),

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOptions converts the configuration to export options. Zero-valued
// dimensions become nil so the source values are inherited.
func (c Config) ToOptions() export.Options {
	opts := export.Options{
		Format:             export.Format(c.Format),
		Quality:            export.Quality(c.Quality),
		OutputPath:         c.OutputPath,
		IncludeCursor:      c.IncludeCursor,
		IncludeWebcam:      c.IncludeWebcam,
		IncludeMicAudio:    c.IncludeMicAudio,
		IncludeSystemAudio: c.IncludeSystemAudio,
	}
	if c.Width > 0 {
		w := c.Width
		opts.Width = &w
	}
	if c.Height > 0 {
		h := c.Height
		opts.Height = &h
	}
	if c.FPS > 0 {
		f := c.FPS
		opts.FPS = &f
	}
	return opts
}

// LoadEdits reads a screen edit list from the configured JSON file.
// Returns nil when no edits file is configured.
func (c Config) LoadEdits(fs ports.FileSystem) (*export.TrackEdits, error) {
	if c.EditsPath == "" {
		return nil, nil
	}

	data, err := fs.ReadFile(c.EditsPath)
	if err != nil {
		return nil, err
	}

	var edits export.TrackEdits
	if err := json.Unmarshal(data, &edits); err != nil {
		return nil, export.InvalidConfigErrf("failed to parse edits file %s: %s", c.EditsPath, err)
	}
	if err := edits.Validate(); err != nil {
		return nil, err
	}
	return &edits, nil
}
