// Package bundle loads a recording bundle: the directory of media files
// and JSON side-channels one recording session produces. The export
// core treats everything in here as read-only input.
package bundle

import (
	"encoding/json"
	"path"

	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// File names inside the recording directory. Session 0 is the only
// session the recorder currently writes.
const (
	recordingDirName = "recording"
	screenVideoName  = "recording-0.mp4"
	micAudioName     = "recording-0-mic.m4a"
	systemAudioName  = "recording-0-system.m4a"
	webcamVideoName  = "recording-0-webcam.mp4"
	mouseMovesName   = "recording-0-mouse-moves.json"
	cursorsJSONName  = "recording-0-cursors.json"
	cursorsDirName   = "recording-0-cursors"
)

// CursorInfo is the sprite metadata side-channel entry for one cursor.
type CursorInfo struct {
	ImagePath string  `json:"imagePath"`
	HotspotX  float64 `json:"hotspotX"`
	HotspotY  float64 `json:"hotspotY"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// Bundle is one loaded recording session. Only the screen video is
// required; every other track is independently optional.
type Bundle struct {
	ScreenVideo string
	MicAudio    string
	SystemAudio string
	WebcamVideo string

	MouseMoves   []cursor.Move
	CursorInfo   map[string]CursorInfo
	CursorImages map[string]*CursorImage

	// DurationMs is the screen video duration read from the container,
	// or 0 when it could not be determined.
	DurationMs uint64
}

// Summary is the loggable/debuggable shape of a loaded bundle.
type Summary struct {
	ScreenVideo string `json:"screenVideo"`
	MicAudio    string `json:"micAudio,omitempty"`
	SystemAudio string `json:"systemAudio,omitempty"`
	WebcamVideo string `json:"webcamVideo,omitempty"`
	MouseMoves  int    `json:"mouseMoves"`
	Cursors     int    `json:"cursors"`
	DurationMs  uint64 `json:"durationMs"`
}

// Summarize returns the bundle summary.
func (b *Bundle) Summarize() Summary {
	return Summary{
		ScreenVideo: b.ScreenVideo,
		MicAudio:    b.MicAudio,
		SystemAudio: b.SystemAudio,
		WebcamVideo: b.WebcamVideo,
		MouseMoves:  len(b.MouseMoves),
		Cursors:     len(b.CursorInfo),
		DurationMs:  b.DurationMs,
	}
}

// Load reads the recording bundle under projectDir. A missing recording
// directory or screen video is ErrBundleNotFound; missing optional
// tracks and sidecars are tolerated. Cursor sprites that fail to decode
// are skipped with a warning so one bad sprite cannot sink an export.
func Load(projectDir string, fs ports.FileSystem, log ports.Logger) (*Bundle, error) {
	log = log.WithComponent("bundle")
	recordingDir := path.Join(projectDir, recordingDirName)

	if ok, err := fs.Exists(recordingDir); err != nil {
		return nil, err
	} else if !ok {
		return nil, export.BundleNotFoundErrf("recording directory not found: %s", recordingDir)
	}

	screenVideo := path.Join(recordingDir, screenVideoName)
	if ok, err := fs.Exists(screenVideo); err != nil {
		return nil, err
	} else if !ok {
		return nil, export.BundleNotFoundErrf("screen video not found: %s", screenVideo)
	}

	b := &Bundle{
		ScreenVideo:  screenVideo,
		CursorInfo:   map[string]CursorInfo{},
		CursorImages: map[string]*CursorImage{},
	}

	b.MicAudio = optionalFile(fs, recordingDir, micAudioName)
	b.SystemAudio = optionalFile(fs, recordingDir, systemAudioName)
	b.WebcamVideo = optionalFile(fs, recordingDir, webcamVideoName)

	moves, err := loadMouseMoves(fs, recordingDir, log)
	if err != nil {
		return nil, err
	}
	b.MouseMoves = moves

	if err := loadCursors(fs, recordingDir, log, b); err != nil {
		return nil, err
	}

	if ms, err := containerDurationMs(fs, screenVideo); err != nil {
		log.Warn("Could not read screen video duration: %s", err)
	} else {
		b.DurationMs = ms
	}

	log.Debug("Loaded bundle: mic=%v system=%v webcam=%v moves=%d cursors=%d",
		b.MicAudio != "", b.SystemAudio != "", b.WebcamVideo != "",
		len(b.MouseMoves), len(b.CursorInfo))

	return b, nil
}

// optionalFile returns the track path when present, "" otherwise.
func optionalFile(fs ports.FileSystem, dir, name string) string {
	p := path.Join(dir, name)
	if ok, err := fs.Exists(p); err == nil && ok {
		return p
	}
	return ""
}

func loadMouseMoves(fs ports.FileSystem, recordingDir string, log ports.Logger) ([]cursor.Move, error) {
	p := path.Join(recordingDir, mouseMovesName)
	if ok, err := fs.Exists(p); err != nil || !ok {
		if err == nil {
			log.Warn("Mouse moves file not found: %s", p)
		}
		return nil, err
	}

	data, err := fs.ReadFile(p)
	if err != nil {
		return nil, err
	}

	var moves []cursor.Move
	if err := json.Unmarshal(data, &moves); err != nil {
		return nil, export.BundleNotFoundErrf("failed to parse mouse moves: %s", err)
	}
	return moves, nil
}

func loadCursors(fs ports.FileSystem, recordingDir string, log ports.Logger, b *Bundle) error {
	metaPath := path.Join(recordingDir, cursorsJSONName)
	spriteDir := path.Join(recordingDir, cursorsDirName)

	if ok, err := fs.Exists(metaPath); err != nil || !ok {
		if err == nil {
			log.Warn("Cursor metadata file not found: %s", metaPath)
		}
		return err
	}

	data, err := fs.ReadFile(metaPath)
	if err != nil {
		return err
	}

	var infos map[string]CursorInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		return export.BundleNotFoundErrf("failed to parse cursor metadata: %s", err)
	}

	for id, info := range infos {
		b.CursorInfo[id] = info

		spritePath := path.Join(spriteDir, info.ImagePath)
		if ok, err := fs.Exists(spritePath); err != nil || !ok {
			continue
		}
		img, err := loadSprite(fs, spritePath, info)
		if err != nil {
			log.Warn("Failed to load cursor sprite %s: %s", spritePath, err)
			continue
		}
		b.CursorImages[id] = img
	}

	return nil
}
