// Package main provides localization for the meme-cli CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"A way to easily generate memes from preconfigured templates": "用意されたテンプレートから手軽にミームを作成します",

		// Version command
		"meme-cli version %s": "meme-cli バージョン %s",

		// Runtime messages
		"Template image: %dx%d":                                           "テンプレート画像: %dx%d",
		"Template saved to %s":                                            "テンプレートを %s に保存しました",
		"Preview of %s with %d slots saved to %s":                         "%s (%d スロット) のプレビューを %s に保存しました",
		"No templates found; run update-sources to fetch the git sources": "テンプレートがありません。update-sources で git ソースを取得してください",
		"All sources are up to date":                                      "全てのソースが最新です",
		"Summary saved to %s":                                             "サマリーを %s に保存しました",
		"Failed to write summary: %s":                                     "サマリーの書き込みに失敗しました: %s",
		"Serving the clipboard for up to %s":                              "最大 %s の間クリップボードを提供します",
		"Stopped serving the clipboard; the meme stays pasteable only with a clipboard manager running": "クリップボードの提供を終了しました。クリップボードマネージャーが無い場合は貼り付けできません",

		// Summary content
		"Meme Summary":  "ミーム作成サマリー",
		"Generated":     "生成日時",
		"Results":       "実行結果",
		"Settings":      "設定",
		"Slots":         "スロット",
		"Item":          "項目",
		"Value":         "値",
		"Template":      "テンプレート",
		"Output":        "出力先",
		"Format":        "形式",
		"Canvas Size":   "キャンバスサイズ",
		"Frame Count":   "フレーム数",
		"File Size":     "ファイルサイズ",
		"Max Font Size": "最大フォントサイズ",
		"Watermark":     "透かし",
		"Top Text":      "上部テキスト",
		"None":          "なし",
		"Kind":          "種類",
		"Content":       "内容",
		"Font Size":     "フォントサイズ",
		"Lines":         "行数",
		"(overflow)":    "(はみ出し)",
		"text":          "テキスト",
		"nested":        "入れ子",
		"picture":       "画像",
		"Generated by":  "生成:",
	})
}
