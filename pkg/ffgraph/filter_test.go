package ffgraph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/user/castcut/pkg/export"
)

func fullSourceEdits(durationMs uint64) export.TrackEdits {
	return export.TrackEdits{Segments: []export.Segment{
		{SourceStartMs: 0, SourceEndMs: durationMs, TimeScale: 1.0},
	}}
}

func baseInputs(edits export.TrackEdits) GraphInputs {
	return GraphInputs{
		ScreenPath: "/rec/recording-0.mp4",
		Options: export.Options{
			Format:     export.FormatMp4,
			Quality:    export.QualityMedium,
			OutputPath: "/out/export.mp4",
		},
		Edits:        edits,
		SourceWidth:  1920,
		SourceHeight: 1080,
		SourceFPS:    60,
	}
}

func filterComplex(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "-filter_complex" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatal("no -filter_complex in args")
	return ""
}

func TestVideoSegmentFilter_SingleSegment(t *testing.T) {
	segments := []export.Segment{
		{SourceStartMs: 1000, SourceEndMs: 5000, TimeScale: 1.0},
	}

	filter, label := videoSegmentFilter(segments, 0)
	if !strings.Contains(filter, "trim=start=1:end=5") {
		t.Errorf("expected trim bounds in seconds, got %q", filter)
	}
	if label != "v0" {
		t.Errorf("expected label v0, got %q", label)
	}
	if strings.Contains(filter, "concat") {
		t.Errorf("single segment must not concat: %q", filter)
	}
}

func TestVideoSegmentFilter_MultipleSegments(t *testing.T) {
	segments := []export.Segment{
		{SourceStartMs: 0, SourceEndMs: 2000, TimeScale: 1.0},
		{SourceStartMs: 5000, SourceEndMs: 8000, TimeScale: 1.0},
	}

	filter, label := videoSegmentFilter(segments, 0)
	if !strings.Contains(filter, "concat=n=2:v=1:a=0[vconcat]") {
		t.Errorf("expected single n-way concat, got %q", filter)
	}
	if label != "vconcat" {
		t.Errorf("expected label vconcat, got %q", label)
	}
}

func TestVideoSegmentFilter_WithSpeed(t *testing.T) {
	segments := []export.Segment{
		{SourceStartMs: 0, SourceEndMs: 4000, TimeScale: 2.0},
	}

	filter, _ := videoSegmentFilter(segments, 0)
	if !strings.Contains(filter, "setpts=(PTS-STARTPTS)/2") {
		t.Errorf("expected speed via setpts division, got %q", filter)
	}
}

func TestAudioSegmentFilter_Labels(t *testing.T) {
	one := []export.Segment{{SourceStartMs: 0, SourceEndMs: 1000, TimeScale: 1.0}}
	filter, label := audioSegmentFilter(one, 2, "mic")
	if label != "mic0" {
		t.Errorf("expected label mic0, got %q", label)
	}
	if !strings.Contains(filter, "[2:a]atrim=start=0:end=1,asetpts=PTS-STARTPTS,anull[mic0]") {
		t.Errorf("unexpected audio filter %q", filter)
	}

	two := []export.Segment{
		{SourceStartMs: 0, SourceEndMs: 1000, TimeScale: 1.0},
		{SourceStartMs: 2000, SourceEndMs: 3000, TimeScale: 2.0},
	}
	filter, label = audioSegmentFilter(two, 3, "sys")
	if label != "sysconcat" {
		t.Errorf("expected label sysconcat, got %q", label)
	}
	if !strings.Contains(filter, "atempo=2.0000") {
		t.Errorf("expected tempo chain for scaled segment, got %q", filter)
	}
	if !strings.Contains(filter, "concat=n=2:v=0:a=1[sysconcat]") {
		t.Errorf("expected n-way audio concat, got %q", filter)
	}
}

func TestEditGraph_SingleFullSegmentNoExtras(t *testing.T) {
	// One full-range segment, no webcam, no audio: one trim node per
	// track and no concat/mix nodes.
	args := EditGraph(baseInputs(fullSourceEdits(10000)))
	filter := filterComplex(t, args)

	if got := strings.Count(filter, "trim="); got != 1 {
		t.Errorf("expected exactly one trim node, got %d in %q", got, filter)
	}
	if strings.Contains(filter, "concat") {
		t.Errorf("unexpected concat node: %q", filter)
	}
	if strings.Contains(filter, "amix") {
		t.Errorf("unexpected mix node: %q", filter)
	}
	for _, arg := range args {
		if arg == "[aout]" {
			t.Error("video-only export must not map audio")
		}
	}
}

func TestEditGraph_Deterministic(t *testing.T) {
	edits := export.TrackEdits{Segments: []export.Segment{
		{SourceStartMs: 0, SourceEndMs: 2000, TimeScale: 1.0},
		{SourceStartMs: 5000, SourceEndMs: 8000, TimeScale: 1.5},
	}}
	in := baseInputs(edits)
	in.WebcamPath = "/rec/recording-0-webcam.mp4"
	in.MicPath = "/rec/recording-0-mic.m4a"
	in.SystemPath = "/rec/recording-0-system.m4a"
	in.Options.IncludeWebcam = true
	in.Options.IncludeMicAudio = true
	in.Options.IncludeSystemAudio = true

	first := EditGraph(in)
	second := EditGraph(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("graph construction not deterministic:\n%v\n%v", first, second)
	}
}

func TestEditGraph_WebcamOverlay(t *testing.T) {
	edits := export.TrackEdits{Segments: []export.Segment{
		{SourceStartMs: 0, SourceEndMs: 2000, TimeScale: 1.0},
		{SourceStartMs: 5000, SourceEndMs: 8000, TimeScale: 1.0},
	}}
	in := baseInputs(edits)
	in.WebcamPath = "/rec/recording-0-webcam.mp4"
	in.Options.IncludeWebcam = true

	filter := filterComplex(t, EditGraph(in))

	// Webcam cuts follow the screen edit list.
	if !strings.Contains(filter, "concat=n=2:v=1:a=0[wcconcat]") {
		t.Errorf("expected webcam segments concatenated, got %q", filter)
	}
	// 12.5% of output width 1920.
	if !strings.Contains(filter, "[wcconcat]scale=240:-1[wc_scaled]") {
		t.Errorf("expected webcam scaled to width fraction, got %q", filter)
	}
	if !strings.Contains(filter, "overlay=W-w-20:H-h-20:shortest=1[vout]") {
		t.Errorf("expected bottom-right overlay stopping at shorter track, got %q", filter)
	}
}

func TestEditGraph_AudioMixing(t *testing.T) {
	in := baseInputs(fullSourceEdits(10000))
	in.MicPath = "/rec/recording-0-mic.m4a"
	in.SystemPath = "/rec/recording-0-system.m4a"
	in.Options.IncludeMicAudio = true
	in.Options.IncludeSystemAudio = true

	args := EditGraph(in)
	filter := filterComplex(t, args)

	if !strings.Contains(filter, "amix=inputs=2:duration=longest[aout]") {
		t.Errorf("expected equal-weight longest-wins mix, got %q", filter)
	}

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-map [vout] -map [aout]") {
		t.Errorf("expected explicit output maps, got %q", joined)
	}
	if !strings.Contains(joined, "-c:a aac -b:a 192k") {
		t.Errorf("expected aac audio codec options, got %q", joined)
	}
}

func TestEditGraph_SingleAudioSourceMapsDirectly(t *testing.T) {
	in := baseInputs(fullSourceEdits(10000))
	in.MicPath = "/rec/recording-0-mic.m4a"
	in.Options.IncludeMicAudio = true

	args := EditGraph(in)
	joined := strings.Join(args, " ")

	if strings.Contains(joined, "amix") {
		t.Errorf("single audio source must not mix: %q", joined)
	}
	if !strings.Contains(joined, "-map [mic0]") {
		t.Errorf("expected direct mic map, got %q", joined)
	}
}

func TestEditGraph_ScaleAppliedOnceAfterConcat(t *testing.T) {
	edits := export.TrackEdits{Segments: []export.Segment{
		{SourceStartMs: 0, SourceEndMs: 2000, TimeScale: 1.0},
		{SourceStartMs: 5000, SourceEndMs: 8000, TimeScale: 1.0},
	}}
	in := baseInputs(edits)
	width, height := 1280, 720
	in.Options.Width = &width
	in.Options.Height = &height

	filter := filterComplex(t, EditGraph(in))

	if got := strings.Count(filter, "force_original_aspect_ratio"); got != 1 {
		t.Errorf("expected one scale node, got %d in %q", got, filter)
	}
	if !strings.Contains(filter, "[vconcat]scale=1280:720:force_original_aspect_ratio=decrease,pad=1280:720:(ow-iw)/2:(oh-ih)/2:black,fps=60[vout]") {
		t.Errorf("expected scale+pad after concat, got %q", filter)
	}
}

func TestEditGraph_GifSuppressesAudioAndUsesPalette(t *testing.T) {
	in := baseInputs(fullSourceEdits(10000))
	in.Options.Format = export.FormatGif
	in.Options.OutputPath = "/out/export.gif"
	in.MicPath = "/rec/recording-0-mic.m4a"
	in.Options.IncludeMicAudio = true

	args := EditGraph(in)
	filter := filterComplex(t, args)

	if !strings.Contains(filter, "palettegen") || !strings.Contains(filter, "paletteuse") {
		t.Errorf("expected two-pass palette sub-graph, got %q", filter)
	}
	if !strings.Contains(filter, "fps=15") {
		t.Errorf("expected fps clamped to %d, got %q", gifMaxFPS, filter)
	}
	if !strings.Contains(filter, "scale=800:-1") {
		t.Errorf("expected width clamped to %d, got %q", gifMaxWidth, filter)
	}

	joined := strings.Join(args, " ")
	if strings.Contains(joined, "[mic0]") || strings.Contains(joined, "aac") {
		t.Errorf("gif must not map audio: %q", joined)
	}
}
