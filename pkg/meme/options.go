package meme

import "github.com/user/memecli/pkg/composite"

const (
	// DefaultMaxFontSize is the upper bound of the font size search.
	DefaultMaxFontSize = 600.0

	// DefaultWatermarkSizeFraction divides the shorter image side to give
	// the watermark font size.
	DefaultWatermarkSizeFraction = 30.0
)

// Options controls a render.
type Options struct {
	// TextColor overrides the template colour when set.
	TextColor *composite.Color

	MaxFontSize float64

	// Watermark is drawn bottom-left in the text colour. Empty means none.
	Watermark             string
	WatermarkSizeFraction float64
}

// DefaultOptions returns options without a watermark.
func DefaultOptions() Options {
	return Options{
		MaxFontSize:           DefaultMaxFontSize,
		WatermarkSizeFraction: DefaultWatermarkSizeFraction,
	}
}
