package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Exporting %s to %s (%s, %s quality)...": "%s を %s にエクスポート中 (%s, %s 品質)...",
		"Export completed: %s":                   "エクスポート完了: %s",
		"Export cancelled":                       "エクスポートがキャンセルされました",
		"Using fast edit path":                   "高速編集パスを使用します",
		"Using frame composition path":           "フレーム合成パスを使用します",
		"Interrupted, shutting down...":          "中断されました。シャットダウン中...",
		"Output saved to %s":                     "出力を %s に保存しました",

		// Prepare stage
		"Loading recording bundle":          "録画バンドルを読み込み中",
		"Probing screen video":              "画面動画を解析中",
		"Probed %dx%d, %d frames, %.2f fps": "解析完了 %dx%d, %d フレーム, %.2f fps",

		// Smoothing stage
		"Smoothing %d cursor samples": "%d 個のカーソルサンプルを平滑化中",
		"Cursor timeline: %d samples": "カーソルタイムライン: %d サンプル",

		// Render stage
		"Compositing frame %d/%d":        "フレーム合成中 %d/%d",
		"Composition completed":          "合成が完了しました",
		"Encoding %d frames at %.1f fps": "%d フレームを %.1f fps でエンコード中",
		"Encoding completed":             "エンコードが完了しました",

		// Warnings
		"Mouse moves file not found: %s":             "マウス移動ファイルが見つかりません: %s",
		"Cursor metadata file not found: %s":         "カーソルメタデータファイルが見つかりません: %s",
		"Failed to load cursor sprite %s: %s":        "カーソルスプライト %s の読み込みに失敗しました: %s",
		"Could not read screen video duration: %s":   "画面動画の長さを読み取れませんでした: %s",
		"Edits requested, cursor overlay disabled":   "編集が指定されたため、カーソルオーバーレイは無効になります",
		"Error reading webcam frame at index %d: %s": "ウェブカメラフレームの読み取りエラー (index %d): %s",

		// Errors
		"Failed to probe video: %s":       "動画の解析に失敗しました: %s",
		"Failed to open webcam video: %s": "ウェブカメラ動画を開けませんでした: %s",
		"Failed to encode video: %s":      "動画のエンコードに失敗しました: %s",
		"Failed to write output: %s":      "出力の書き込みに失敗しました: %s",
	})
}
