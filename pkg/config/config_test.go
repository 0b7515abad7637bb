package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/mocks"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Format != "mp4" || cfg.Quality != "medium" {
		t.Errorf("format/quality defaults: %s/%s", cfg.Format, cfg.Quality)
	}
	if !cfg.IncludeCursor || !cfg.IncludeWebcam || !cfg.IncludeMicAudio || !cfg.IncludeSystemAudio {
		t.Error("include flags should default on")
	}
	if cfg.Spring.Stiffness != 470 {
		t.Errorf("spring defaults not applied: %+v", cfg.Spring)
	}
	if cfg.Width != 0 || cfg.Height != 0 || cfg.FPS != 0 {
		t.Error("dimensions should default to inherit")
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte(`
output: /tmp/demo.webm
format: webm
quality: high
width: 1280
height: 720
include_webcam: false
spring:
  stiffness: 300
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "webm" || cfg.Quality != "high" {
		t.Errorf("format/quality = %s/%s", cfg.Format, cfg.Quality)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("dimensions = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.IncludeWebcam {
		t.Error("include_webcam not overridden")
	}
	// Untouched keys keep defaults.
	if !cfg.IncludeCursor {
		t.Error("include_cursor default lost")
	}
	if cfg.Spring.Stiffness != 300 {
		t.Errorf("spring stiffness = %v, want 300", cfg.Spring.Stiffness)
	}
	if cfg.Spring.Damping != 70 {
		t.Errorf("spring damping default lost: %v", cfg.Spring.Damping)
	}
}

func TestToOptionsInheritsZeroDimensions(t *testing.T) {
	cfg := Defaults()
	cfg.OutputPath = "/tmp/out.mp4"

	opts := cfg.ToOptions()
	if opts.Width != nil || opts.Height != nil || opts.FPS != nil {
		t.Error("zero dimensions should map to nil")
	}
	if opts.Format != export.FormatMp4 || opts.Quality != export.QualityMedium {
		t.Errorf("format/quality = %s/%s", opts.Format, opts.Quality)
	}
}

func TestToOptionsExplicitDimensions(t *testing.T) {
	cfg := Defaults()
	cfg.Width = 1920
	cfg.FPS = 30

	opts := cfg.ToOptions()
	if opts.Width == nil || *opts.Width != 1920 {
		t.Errorf("width = %v", opts.Width)
	}
	if opts.Height != nil {
		t.Error("height should stay nil")
	}
	if opts.FPS == nil || *opts.FPS != 30 {
		t.Errorf("fps = %v", opts.FPS)
	}
}

func TestLoadEditsAbsent(t *testing.T) {
	cfg := Defaults()
	edits, err := cfg.LoadEdits(mocks.NewFileSystem())
	if err != nil || edits != nil {
		t.Errorf("expected nil edits without a path, got %v / %v", edits, err)
	}
}

func TestLoadEditsParsesAndValidates(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/proj/edits.json", []byte(
		`{"segments":[{"sourceStartMs":1000,"sourceEndMs":5000,"timeScale":2.0},{"sourceStartMs":7000,"sourceEndMs":9000}]}`))

	cfg := Defaults()
	cfg.EditsPath = "/proj/edits.json"

	edits, err := cfg.LoadEdits(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edits.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(edits.Segments))
	}
	// Absent timeScale defaults to 1.0.
	if edits.Segments[1].TimeScale != 1.0 {
		t.Errorf("default time scale = %v, want 1", edits.Segments[1].TimeScale)
	}
}

func TestLoadEditsRejectsInvalid(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/proj/edits.json", []byte(
		`{"segments":[{"sourceStartMs":5000,"sourceEndMs":1000}]}`))

	cfg := Defaults()
	cfg.EditsPath = "/proj/edits.json"

	if _, err := cfg.LoadEdits(fs); !errors.Is(err, export.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
