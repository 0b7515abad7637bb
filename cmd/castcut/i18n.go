// Package main provides localization for the castcut CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", jaLexicon)
}

// jaLexicon translates CLI help, log and summary strings. Keys must
// match the English source strings exactly or the translation is
// silently skipped.
var jaLexicon = l10n.LexiconMap{
	// Root command
	"Export screen recording projects to shareable videos.": "画面録画プロジェクトを共有可能な動画に書き出します。",

	// Export command
	"Export a recording project to a video file.": "録画プロジェクトを動画ファイルに書き出し",
	"Recording project directory.":                "録画プロジェクトのディレクトリ",
	"Output video file path.":                     "出力動画ファイルのパス",

	// Probe command
	"Show metadata of a recorded video.": "録画動画のメタデータを表示",
	"Video file path.":                   "動画ファイルのパス",

	// Waveform command
	"Compute amplitude peaks of an audio track as JSON.":   "音声トラックの振幅ピークをJSONとして計算",
	"Audio file path.":                                     "音声ファイルのパス",
	"Write the waveform JSON to a file instead of stdout.": "波形JSONを標準出力ではなくファイルに書き込み",
	"Amplitude peaks per second of audio.":                 "音声1秒あたりの振幅ピーク数",

	// Version command
	"Show version information.": "バージョン情報を表示",
	"castcut version %s":        "castcut バージョン %s",

	// Format flags
	"Output format (mp4, gif, webm).":               "出力フォーマット（mp4, gif, webm）",
	"Quality tier (low, medium, high, lossless).":   "品質ティア（low, medium, high, lossless）",
	"Output video width (default: source width).":   "出力動画の幅（デフォルト: ソースの幅）",
	"Output video height (default: source height).": "出力動画の高さ（デフォルト: ソースの高さ）",
	"Output frame rate (default: source rate).":     "出力フレームレート（デフォルト: ソースのレート）",

	// Overlay and audio flags
	"Disable the smoothed cursor overlay.": "スムージングされたカーソルオーバーレイを無効化",
	"Disable the webcam overlay.":          "ウェブカメラオーバーレイを無効化",
	"Disable the microphone audio track.":  "マイク音声トラックを無効化",
	"Disable the system audio track.":      "システム音声トラックを無効化",

	// Edit flags
	"JSON edit list for the screen track.": "画面トラック用のJSON編集リスト",

	// Config and codec flags
	"YAML config file path.":                                                            "YAML設定ファイルのパス",
	"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default).":   "ffmpeg実行ファイルのパス（FFMPEG_PATH環境変数、システムデフォルトの順にフォールバック)",
	"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default).": "ffprobe実行ファイルのパス（FFPROBE_PATH環境変数、システムデフォルトの順にフォールバック)",

	// Debug flags
	"Enable debug output.":        "デバッグ出力を有効化",
	"Directory for debug output.": "デバッグ出力のディレクトリ",

	// Logging flags
	"Log level (debug, info, warn, error).": "ログレベル（debug, info, warn, error）",
	"Suppress all log output.":              "全てのログ出力を抑制",

	// Summary flag and messages
	"Output execution summary to file (Markdown format).": "実行サマリーをファイルに出力（Markdown形式）",
	"Summary saved to %s":                                 "サマリーを %s に保存しました",
	"Failed to write summary: %s":                         "サマリーの書き込みに失敗しました: %s",

	// Summary content
	"Export Summary":         "エクスポートサマリー",
	"Generated":              "生成日時",
	"Project":                "プロジェクト",
	"Settings":               "設定",
	"Video Details":          "動画詳細",
	"Item":                   "項目",
	"Value":                  "値",
	"Project Directory":      "プロジェクトディレクトリ",
	"Output File":            "出力ファイル",
	"Format":                 "フォーマット",
	"Quality":                "品質",
	"Cursor Overlay":         "カーソルオーバーレイ",
	"Webcam Overlay":         "ウェブカメラオーバーレイ",
	"Microphone Audio":       "マイク音声",
	"System Audio":           "システム音声",
	"Edit List":              "編集リスト",
	"Export Path":            "エクスポートパス",
	"Fast edit path":         "高速編集パス",
	"Frame composition path": "フレーム合成パス",
	"Enabled":                "有効",
	"Disabled":               "無効",
	"None":                   "なし",
	"Resolution":             "解像度",
	"Frame Rate":             "フレームレート",
	"Frame Count":            "フレーム数",
	"Video Duration":         "動画再生時間",
	"Video File Size":        "動画ファイルサイズ",
	"Generated by":           "生成:",

	// Probe output
	"Resolution: %dx%d":    "解像度: %dx%d",
	"Frame rate: %.2f fps": "フレームレート: %.2f fps",
	"Frames: %d":           "フレーム数: %d",
	"Duration: %.2fs":      "再生時間: %.2f秒",
}
