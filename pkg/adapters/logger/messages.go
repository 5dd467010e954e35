package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages
		"Starting pipeline":             "パイプラインを開始します",
		"Done!":                         "完了しました",
		"Interrupted, shutting down...": "中断されました。終了中...",

		// Library
		"Loading template %s from %s":     "テンプレート %s を %s から読み込み中",
		"Saved template %s to %s":         "テンプレート %s を %s に保存しました",
		"Syncing meme repository %s (%s)": "ミームリポジトリ %s (%s) を同期中",
		"Cloned %s at %s":                 "%s をクローンしました (%s)",
		"Updated %s to %s":                "%s を %s に更新しました",
		"%s is up to date":                "%s は最新です",
		"Failed to sync %s: %s":           "%s の同期に失敗しました: %s",
		"Failed to remove %s: %s":         "%s の削除に失敗しました: %s",

		// Resolve stage
		"Template found: %s (%d slots)":    "テンプレートが見つかりました: %s (%d スロット)",
		"Nested template %s with %d texts": "入れ子テンプレート %s (テキスト %d 個)",
		"Picture %s (%dx%d)":               "画像 %s (%dx%d)",
		"%d inputs given but template %s has %d slots; extra inputs are ignored": "%d 個の入力に対しテンプレート %s のスロットは %d 個です。余分な入力は無視されます",

		// Render stage
		"Rendering %d frames":                                    "%d フレームを描画中",
		"Meme rendered: %dx%d":                                   "ミームを描画しました: %dx%d",
		"Slot %s%d: font size %.1f, %d lines, %d iterations":     "スロット %s%d: フォントサイズ %.1f, %d 行, 探索 %d 回",
		"Slot %s%d: nested template %s":                          "スロット %s%d: 入れ子テンプレート %s",
		"Slot %s%d: %s":                                          "スロット %s%d: %s",
		"Slot %s%d: text does not fit even at the smallest size": "スロット %s%d: 最小サイズでもテキストが収まりません",

		// Caption stage
		"Caption strip: %dx%d": "キャプション帯: %dx%d",
		"Top text added":       "上部テキストを追加しました",

		// Export stage
		"Exported %s to %s (%d bytes)": "%s を %s に出力しました (%d バイト)",

		// Errors
		"Failed to resolve template: %s": "テンプレートの解決に失敗しました: %s",
		"Failed to render meme: %s":      "ミームの描画に失敗しました: %s",
		"Failed to add top text: %s":     "上部テキストの追加に失敗しました: %s",
		"Failed to export meme: %s":      "ミームの出力に失敗しました: %s",
	})
}
