package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Translator translates a message key.
type Translator func(key string) string

// MarkdownFormatter formats summaries as Markdown tables.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the translator for headings and labels.
func WithTranslator(t Translator) Option {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds a "Generated by" footer with the given version.
func WithVersion(v string) Option {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(key string) string { return key }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Meme Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## %s\n\n", t("Results"))
	f.tableHeader(&b)
	row(&b, t("Template"), s.Template)
	row(&b, t("Output"), destination(s.Output.Destination, t))
	row(&b, t("Format"), strings.ToUpper(s.Output.Format))
	row(&b, t("Canvas Size"), fmt.Sprintf("%dx%d", s.Output.Width, s.Output.Height))
	row(&b, t("Frame Count"), fmt.Sprintf("%d", s.Output.FrameCount))
	row(&b, t("File Size"), formatBytes(s.Output.Bytes))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	f.tableHeader(&b)
	row(&b, t("Max Font Size"), fmt.Sprintf("%.0f px", s.Settings.MaxFontSize))
	if s.Settings.Watermark == "" {
		row(&b, t("Watermark"), t("None"))
	} else {
		row(&b, t("Watermark"), fmt.Sprintf("%s (1/%.0f)", s.Settings.Watermark, s.Settings.WatermarkSizeFraction))
	}
	if s.Settings.TopText != "" {
		row(&b, t("Top Text"), s.Settings.TopText)
	}
	b.WriteString("\n")

	if len(s.Slots) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Slots"))
		fmt.Fprintf(&b, "| # | %s | %s | %s | %s |\n", t("Kind"), t("Content"), t("Font Size"), t("Lines"))
		b.WriteString("|---|---|---|---|---|\n")
		for _, slot := range s.Slots {
			f.slotRow(&b, slot)
		}
		b.WriteString("\n")
	}

	if f.version != "" {
		fmt.Fprintf(&b, "---\n%s meme-cli %s\n", t("Generated by"), f.version)
	}
	return b.String()
}

func (f *MarkdownFormatter) tableHeader(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", f.translate("Item"), f.translate("Value"))
}

func (f *MarkdownFormatter) slotRow(b *strings.Builder, s SlotInfo) {
	content, size, lines := "", "-", "-"
	switch s.Kind {
	case "text":
		content = s.Text
		size = fmt.Sprintf("%.1f", s.FontSize)
		lines = fmt.Sprintf("%d", s.Lines)
		if s.Overflow {
			size += " " + f.translate("(overflow)")
		}
	case "nested":
		content = s.Template
	}
	fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n", s.Path, f.translate(s.Kind), escape(content), size, lines)
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, escape(value))
}

func destination(d string, t Translator) string {
	if d == "" {
		return t("None")
	}
	return d
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func formatBytes(n int) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
