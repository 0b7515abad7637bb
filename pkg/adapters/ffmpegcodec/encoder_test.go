package ffmpegcodec

import (
	"strings"
	"testing"

	"github.com/user/castcut/pkg/export"
)

func baseEncoderConfig() EncoderConfig {
	return EncoderConfig{
		SourceWidth:  1920,
		SourceHeight: 1080,
		SourceFPS:    60,
		Options: export.Options{
			Format:     export.FormatMp4,
			Quality:    export.QualityMedium,
			OutputPath: "/tmp/out.mp4",
		},
	}
}

func argsString(cfg EncoderConfig) string {
	return strings.Join(encoderArgs(cfg), " ")
}

func TestEncoderArgsRawInputPinnedToSource(t *testing.T) {
	s := argsString(baseEncoderConfig())
	for _, want := range []string{
		"-f rawvideo",
		"-pix_fmt rgba",
		"-s 1920x1080",
		"-r 60.00",
		"-i pipe:0",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("args missing %q: %s", want, s)
		}
	}
}

func TestEncoderArgsVideoOnly(t *testing.T) {
	s := argsString(baseEncoderConfig())
	if !strings.Contains(s, "[0:v]fps=60[vout]") {
		t.Errorf("missing passthrough fps filter: %s", s)
	}
	if strings.Contains(s, "amix") || strings.Contains(s, "-c:a") {
		t.Errorf("audio args present without audio inputs: %s", s)
	}
	if !strings.HasSuffix(s, "/tmp/out.mp4") {
		t.Errorf("output path not last: %s", s)
	}
}

func TestEncoderArgsScalesWhenOutputDiffers(t *testing.T) {
	cfg := baseEncoderConfig()
	w, h := 1280, 720
	cfg.Options.Width = &w
	cfg.Options.Height = &h

	s := argsString(cfg)
	want := "[0:v]scale=1280:720:force_original_aspect_ratio=decrease,pad=1280:720:(ow-iw)/2:(oh-ih)/2:black,fps=60[vout]"
	if !strings.Contains(s, want) {
		t.Errorf("missing scale/pad chain %q: %s", want, s)
	}
}

func TestEncoderArgsMixesBothAudioTracks(t *testing.T) {
	cfg := baseEncoderConfig()
	cfg.MicPath = "/rec/mic.m4a"
	cfg.SystemPath = "/rec/system.m4a"

	s := argsString(cfg)
	if !strings.Contains(s, "-i /rec/mic.m4a -i /rec/system.m4a") {
		t.Errorf("audio inputs missing or misordered: %s", s)
	}
	if !strings.Contains(s, "[1:a][2:a]amix=inputs=2:duration=longest[aout]") {
		t.Errorf("missing amix: %s", s)
	}
	if !strings.Contains(s, "-map [vout] -map [aout]") {
		t.Errorf("missing stream maps: %s", s)
	}
	if !strings.Contains(s, "-c:a aac -b:a 192k") {
		t.Errorf("missing audio codec args: %s", s)
	}
}

func TestEncoderArgsSingleAudioMapsDirectly(t *testing.T) {
	cfg := baseEncoderConfig()
	cfg.SystemPath = "/rec/system.m4a"

	s := argsString(cfg)
	if strings.Contains(s, "amix") {
		t.Errorf("amix present for single audio track: %s", s)
	}
	if !strings.Contains(s, "-map [vout] -map 1:a") {
		t.Errorf("single audio track not mapped: %s", s)
	}
}

func TestEncoderArgsGifDropsAudioAndUsesPalette(t *testing.T) {
	cfg := baseEncoderConfig()
	cfg.Options.Format = export.FormatGif
	cfg.Options.OutputPath = "/tmp/out.gif"
	cfg.MicPath = "/rec/mic.m4a"
	cfg.SystemPath = "/rec/system.m4a"

	s := argsString(cfg)
	if strings.Contains(s, "mic.m4a") || strings.Contains(s, "-c:a") {
		t.Errorf("gif output kept audio: %s", s)
	}
	if !strings.Contains(s, "palettegen") || !strings.Contains(s, "paletteuse") {
		t.Errorf("gif output missing palette chain: %s", s)
	}
	if !strings.Contains(s, "fps=15") || !strings.Contains(s, "scale=800:-1") {
		t.Errorf("gif fps/width not clamped: %s", s)
	}
}

func TestEncoderArgsWebmCodec(t *testing.T) {
	cfg := baseEncoderConfig()
	cfg.Options.Format = export.FormatWebm
	cfg.Options.Quality = export.QualityHigh
	cfg.Options.OutputPath = "/tmp/out.webm"

	s := argsString(cfg)
	if !strings.Contains(s, "-c:v libvpx-vp9 -crf 18 -b:v 0") {
		t.Errorf("webm codec args wrong: %s", s)
	}
}

func TestEncoderArgsQualityMapping(t *testing.T) {
	tests := []struct {
		quality export.Quality
		crf     string
		preset  string
	}{
		{export.QualityLow, "-crf 28", "-preset faster"},
		{export.QualityMedium, "-crf 23", "-preset medium"},
		{export.QualityHigh, "-crf 18", "-preset slow"},
		{export.QualityLossless, "-crf 1", "-preset veryslow"},
	}
	for _, tt := range tests {
		cfg := baseEncoderConfig()
		cfg.Options.Quality = tt.quality
		s := argsString(cfg)
		if !strings.Contains(s, tt.crf) || !strings.Contains(s, tt.preset) {
			t.Errorf("quality %s: missing %q/%q in %s", tt.quality, tt.crf, tt.preset, s)
		}
	}
}
