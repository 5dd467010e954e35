package fit

import (
	"unicode"

	"github.com/user/memecli/pkg/glyph"
)

// MinFontSize is the lower bound of the font size search.
const MinFontSize = 5.0

// tolerance is the size difference, in pixels, at which the search stops.
const tolerance = 0.25

// Result is a fitted layout.
type Result struct {
	Layout
	Iterations int
}

// MaxLines returns the number of whitespace-separated tokens in text, which
// bounds the number of lines word wrapping may need. Adjacent separators
// delimit empty tokens, so the count is one more than the whitespace runes.
func MaxLines(text string) int {
	n := 1
	for _, r := range text {
		if unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Fit finds the largest font size in [minSize, maxSize] at which text,
// wrapped to width and centred, stays within height and within MaxLines
// lines.
//
// The candidate is min + max/2, not the mean. Because min never exceeds max,
// the min-max convergence test accepts the first candidate that fits, so the
// search walks max down towards 2*min. When nothing fits it stops once the
// candidate can no longer shrink and returns that overflowing layout.
func Fit(cache *glyph.Cache, f *glyph.Font, text string, width, height int, minSize, maxSize float64) Result {
	settings := Settings{
		MaxWidth:  float64(width),
		MaxHeight: float64(height),
		HAlign:    AlignCenter,
		VAlign:    AlignTop,
		Wrap:      true,
	}
	absMaxLines := MaxLines(text)

	lo, hi := minSize, maxSize
	for i := 1; ; i++ {
		candidate := lo + hi/2
		if candidate > maxSize {
			candidate = maxSize
		}

		layout := LayoutText(cache, f, text, candidate, settings)
		switch {
		case layout.Lines > absMaxLines || layout.Height > float64(height):
			if hi-candidate <= tolerance {
				return Result{Layout: layout, Iterations: i}
			}
			hi = candidate
		case lo-hi <= tolerance:
			return Result{Layout: layout, Iterations: i}
		default:
			lo = candidate
		}
	}
}
