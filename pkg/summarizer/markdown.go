package summarizer

import (
	"fmt"
	"strings"
)

// Translator converts a display key to the user's language. The
// identity function is used when none is configured.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the translator for display keys.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion sets the version string shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
		version:   "dev",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders the summary as Markdown tables.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Export Summary"))
	fmt.Fprintf(&sb, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	// Project section
	fmt.Fprintf(&sb, "## %s\n\n", t("Project"))
	f.tableHeader(&sb)
	f.row(&sb, t("Project Directory"), summary.Project.Dir)
	f.row(&sb, t("Output File"), summary.Project.OutputPath)
	sb.WriteString("\n")

	// Settings section
	s := summary.Settings
	fmt.Fprintf(&sb, "## %s\n\n", t("Settings"))
	f.tableHeader(&sb)
	f.row(&sb, t("Format"), s.Format)
	f.row(&sb, t("Quality"), s.Quality)
	f.row(&sb, t("Cursor Overlay"), f.onOff(s.IncludeCursor))
	f.row(&sb, t("Webcam Overlay"), f.onOff(s.IncludeWebcam))
	f.row(&sb, t("Microphone Audio"), f.onOff(s.IncludeMicAudio))
	f.row(&sb, t("System Audio"), f.onOff(s.IncludeSystemAudio))
	if s.EditsPath != "" {
		f.row(&sb, t("Edit List"), s.EditsPath)
	} else {
		f.row(&sb, t("Edit List"), t("None"))
	}
	if s.UsedEditPath {
		f.row(&sb, t("Export Path"), t("Fast edit path"))
	} else {
		f.row(&sb, t("Export Path"), t("Frame composition path"))
	}
	sb.WriteString("\n")

	// Video details section
	v := summary.Video
	fmt.Fprintf(&sb, "## %s\n\n", t("Video Details"))
	f.tableHeader(&sb)
	f.row(&sb, t("Resolution"), fmt.Sprintf("%dx%d", v.Width, v.Height))
	f.row(&sb, t("Frame Rate"), fmt.Sprintf("%.2f fps", v.FPS))
	f.row(&sb, t("Frame Count"), fmt.Sprintf("%d", v.FrameCount))
	f.row(&sb, t("Video Duration"), fmt.Sprintf("%d ms", v.DurationMs))
	f.row(&sb, t("Video File Size"), formatBytes(v.FileSize))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%s castcut %s\n", t("Generated by"), f.version)

	return sb.String()
}

func (f *MarkdownFormatter) tableHeader(sb *strings.Builder) {
	t := f.translate
	fmt.Fprintf(sb, "| %s | %s |\n", t("Item"), t("Value"))
	sb.WriteString("| --- | --- |\n")
}

func (f *MarkdownFormatter) row(sb *strings.Builder, item, value string) {
	fmt.Fprintf(sb, "| %s | %s |\n", item, value)
}

func (f *MarkdownFormatter) onOff(enabled bool) string {
	if enabled {
		return f.translate("Enabled")
	}
	return f.translate("Disabled")
}

// formatBytes renders a byte count in a human readable unit.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

var _ Formatter = (*MarkdownFormatter)(nil)
