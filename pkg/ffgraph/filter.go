package ffgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/castcut/pkg/export"
)

// Overlay geometry for the webcam thumbnail in edit-graph exports.
// Matches the frame compositor: 12.5% of output width, 20px margin.
const (
	webcamWidthFraction = 0.125
	webcamMarginPx      = 20
)

// GIF outputs are clamped for file-size sanity.
const (
	gifMaxFPS   = 15
	gifMaxWidth = 800
)

// GraphInputs carries everything the edit-graph builder needs. Paths
// left empty mean the track is absent; Include* flags on Options gate
// the present ones.
type GraphInputs struct {
	ScreenPath string
	WebcamPath string
	MicPath    string
	SystemPath string

	Options export.Options
	Edits   export.TrackEdits

	SourceWidth  int
	SourceHeight int
	SourceFPS    float64
}

// secs formats a seconds value the shortest way FFmpeg accepts.
func secs(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// videoSegmentFilter emits one trim+setpts chain per segment and, for
// more than one segment, a single n-way concat node. Pairwise binary
// concatenation is never used; a single concat keeps segment order
// explicit and stable. Returns the filter text and the output label.
func videoSegmentFilter(segments []export.Segment, inputIndex int) (string, string) {
	var filters []string
	var concatInputs []string

	for i, seg := range segments {
		label := fmt.Sprintf("v%d", i)

		var filter string
		if seg.TimeScale > 0.99 && seg.TimeScale < 1.01 {
			filter = fmt.Sprintf("[%d:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[%s]",
				inputIndex, secs(seg.SourceStartSecs()), secs(seg.SourceEndSecs()), label)
		} else {
			filter = fmt.Sprintf("[%d:v]trim=start=%s:end=%s,setpts=(PTS-STARTPTS)/%s[%s]",
				inputIndex, secs(seg.SourceStartSecs()), secs(seg.SourceEndSecs()), secs(seg.TimeScale), label)
		}
		filters = append(filters, filter)
		concatInputs = append(concatInputs, "["+label+"]")
	}

	outLabel := "v0"
	if len(segments) > 1 {
		filters = append(filters, fmt.Sprintf("%sconcat=n=%d:v=1:a=0[vconcat]",
			strings.Join(concatInputs, ""), len(segments)))
		outLabel = "vconcat"
	}

	return strings.Join(filters, ";"), outLabel
}

// audioSegmentFilter is the audio counterpart of videoSegmentFilter.
// Speed changes go through the bounded atempo chain rather than setpts
// so pitch is preserved; both reduce duration by the same factor, but
// floating point residue can desynchronize within a segment by up to a
// frame. Synchronization is only guaranteed at segment boundaries.
func audioSegmentFilter(segments []export.Segment, inputIndex int, prefix string) (string, string) {
	var filters []string
	var concatInputs []string

	for i, seg := range segments {
		label := fmt.Sprintf("%s%d", prefix, i)
		atempo := AtempoChain(seg.TimeScale)
		filters = append(filters, fmt.Sprintf("[%d:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS,%s[%s]",
			inputIndex, secs(seg.SourceStartSecs()), secs(seg.SourceEndSecs()), atempo, label))
		concatInputs = append(concatInputs, "["+label+"]")
	}

	outLabel := prefix + "0"
	if len(segments) > 1 {
		outLabel = prefix + "concat"
		filters = append(filters, fmt.Sprintf("%sconcat=n=%d:v=0:a=1[%s]",
			strings.Join(concatInputs, ""), len(segments), outLabel))
	}

	return strings.Join(filters, ";"), outLabel
}

// GifPaletteFilter pipes the final video label through the two-pass
// palettegen/paletteuse sub-graph with frame rate and width clamped.
func GifPaletteFilter(inLabel string, outputFPS, outputWidth int) string {
	fps := outputFPS
	if fps > gifMaxFPS {
		fps = gifMaxFPS
	}
	width := outputWidth
	if width > gifMaxWidth {
		width = gifMaxWidth
	}
	return fmt.Sprintf("[%s]fps=%d,scale=%d:-1:flags=lanczos,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse[vout]",
		inLabel, fps, width)
}

// EditGraph assembles the complete FFmpeg argument list for an
// edit-graph export: inputs, filter_complex, stream maps, codec options,
// progress reporting and the output path. The caller has already probed
// the screen video and validated the options.
func EditGraph(in GraphInputs) []string {
	opts := in.Options
	segments := in.Edits.Segments

	outputWidth := opts.OutputWidth(in.SourceWidth)
	outputHeight := opts.OutputHeight(in.SourceHeight)
	outputFPS := opts.OutputFPS(in.SourceFPS)

	args := []string{"-y", "-i", in.ScreenPath}

	// GIF suppresses audio and the webcam overlay; the palette sub-graph
	// replaces the scale/fps chain entirely.
	isGif := opts.Format == export.FormatGif

	webcamIndex := 0
	micIndex := 0
	systemIndex := 0
	nextInput := 1

	if !isGif && opts.IncludeWebcam && in.WebcamPath != "" {
		args = append(args, "-i", in.WebcamPath)
		webcamIndex = nextInput
		nextInput++
	}
	if !isGif && opts.IncludeMicAudio && in.MicPath != "" {
		args = append(args, "-i", in.MicPath)
		micIndex = nextInput
		nextInput++
	}
	if !isGif && opts.IncludeSystemAudio && in.SystemPath != "" {
		args = append(args, "-i", in.SystemPath)
		systemIndex = nextInput
	}

	var filterParts []string
	var audioLabels []string

	videoFilter, videoLabel := videoSegmentFilter(segments, 0)
	filterParts = append(filterParts, videoFilter)

	switch {
	case isGif:
		filterParts = append(filterParts, GifPaletteFilter(videoLabel, outputFPS, outputWidth))

	default:
		// Scaling and fps conversion are applied once, after concat,
		// never per segment.
		scaledLabel := "vout"
		if webcamIndex > 0 {
			scaledLabel = "vscaled"
		}
		if in.SourceWidth != outputWidth || in.SourceHeight != outputHeight {
			filterParts = append(filterParts, fmt.Sprintf(
				"[%s]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black,fps=%d[%s]",
				videoLabel, outputWidth, outputHeight, outputWidth, outputHeight, outputFPS, scaledLabel))
		} else {
			filterParts = append(filterParts, fmt.Sprintf("[%s]fps=%d[%s]", videoLabel, outputFPS, scaledLabel))
		}

		if webcamIndex > 0 {
			filterParts = append(filterParts, webcamOverlayFilter(segments, webcamIndex, outputWidth)...)
		}
	}

	if micIndex > 0 {
		filter, label := audioSegmentFilter(segments, micIndex, "mic")
		filterParts = append(filterParts, filter)
		audioLabels = append(audioLabels, "["+label+"]")
	}
	if systemIndex > 0 {
		filter, label := audioSegmentFilter(segments, systemIndex, "sys")
		filterParts = append(filterParts, filter)
		audioLabels = append(audioLabels, "["+label+"]")
	}

	// Mix audio sources with equal weight; the longest source decides
	// the mixed duration.
	finalAudioLabel := ""
	switch {
	case len(audioLabels) > 1:
		filterParts = append(filterParts, fmt.Sprintf("%samix=inputs=%d:duration=longest[aout]",
			strings.Join(audioLabels, ""), len(audioLabels)))
		finalAudioLabel = "[aout]"
	case len(audioLabels) == 1:
		finalAudioLabel = audioLabels[0]
	}

	args = append(args, "-filter_complex", strings.Join(filterParts, ";"))

	args = append(args, "-map", "[vout]")
	if finalAudioLabel != "" {
		args = append(args, "-map", finalAudioLabel)
	}

	args = append(args, CodecArgs(opts)...)

	if finalAudioLabel != "" {
		args = append(args, "-c:a", "aac", "-b:a", "192k")
	}

	args = append(args, "-progress", "pipe:1")
	args = append(args, opts.OutputPath)

	return args
}

// webcamOverlayFilter trims and concatenates the webcam track with the
// same edit list as the screen track so cuts stay synchronized, scales
// it to a fixed fraction of the output width, and overlays it onto the
// scaled screen video anchored bottom-right. The overlay stops at the
// shorter track.
func webcamOverlayFilter(segments []export.Segment, webcamIndex, outputWidth int) []string {
	var parts []string
	var segmentLabels []string

	for i, seg := range segments {
		label := fmt.Sprintf("wc%d", i)
		parts = append(parts, fmt.Sprintf("[%d:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[%s]",
			webcamIndex, secs(seg.SourceStartSecs()), secs(seg.SourceEndSecs()), label))
		segmentLabels = append(segmentLabels, "["+label+"]")
	}

	concatLabel := "wc0"
	if len(segmentLabels) > 1 {
		parts = append(parts, fmt.Sprintf("%sconcat=n=%d:v=1:a=0[wcconcat]",
			strings.Join(segmentLabels, ""), len(segmentLabels)))
		concatLabel = "wcconcat"
	}

	webcamWidth := int(float64(outputWidth) * webcamWidthFraction)
	parts = append(parts, fmt.Sprintf("[%s]scale=%d:-1[wc_scaled]", concatLabel, webcamWidth))
	parts = append(parts, fmt.Sprintf("[vscaled][wc_scaled]overlay=W-w-%d:H-h-%d:shortest=1[vout]",
		webcamMarginPx, webcamMarginPx))

	return parts
}

// CodecArgs returns the per-format encoder options.
func CodecArgs(opts export.Options) []string {
	switch opts.Format {
	case export.FormatWebm:
		return []string{
			"-c:v", "libvpx-vp9",
			"-crf", strconv.Itoa(opts.Quality.CRF()),
			"-b:v", "0",
		}
	case export.FormatGif:
		// The palette sub-graph already produced GIF-ready frames.
		return []string{"-f", "gif"}
	default:
		return []string{
			"-c:v", "libx264",
			"-preset", opts.Quality.H264Preset(),
			"-crf", strconv.Itoa(opts.Quality.CRF()),
			"-pix_fmt", "yuv420p",
			"-movflags", "+faststart",
		}
	}
}
