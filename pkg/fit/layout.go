// Package fit lays out text inside a box and searches for the largest font
// size whose layout satisfies the box's line and height budget.
package fit

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/user/memecli/pkg/glyph"
)

// HAlign specifies horizontal alignment of each line.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign specifies vertical alignment of the text block.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Settings configures a layout.
type Settings struct {
	// MaxWidth is the wrap and alignment width. Zero means unbounded.
	MaxWidth float64
	// MaxHeight is the vertical alignment height. Zero means unbounded.
	MaxHeight float64

	HAlign HAlign
	VAlign VAlign

	// Wrap enables word wrapping at MaxWidth. Hard breaks ('\n') always apply.
	Wrap bool
}

// Glyph is a positioned glyph. X and Y are the pen position on the baseline,
// relative to the layout origin.
type Glyph struct {
	Rune    rune
	X, Y    int
	Control bool
}

// Layout is the result of laying out text at one size.
type Layout struct {
	Px     float64
	Size   fixed.Int26_6
	Glyphs []Glyph
	Lines  int
	Height float64
}

type placed struct {
	r       rune
	x       fixed.Int26_6
	control bool
}

type line struct {
	glyphs []placed
	x      fixed.Int26_6 // pen position
	width  fixed.Int26_6 // pen position after the last non-space glyph
}

type lineBreaker struct {
	face     font.Face
	maxWidth fixed.Int26_6
	wrap     bool
	lines    []line
	cur      line
	prev     rune
}

// LayoutText lays out text at px pixels.
func LayoutText(cache *glyph.Cache, f *glyph.Font, text string, px float64, s Settings) Layout {
	size := glyph.Quantize(px)
	face := cache.Face(f, size)
	metrics := face.Metrics()

	out := Layout{Px: px, Size: size}
	if text == "" {
		return out
	}

	b := &lineBreaker{
		face:     face,
		maxWidth: fixed.Int26_6(math.Floor(s.MaxWidth * 64)),
		wrap:     s.Wrap && s.MaxWidth > 0,
		prev:     -1,
	}
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			b.place('\n', true)
			b.newLine()
		}
		b.paragraph(paragraph)
	}
	b.lines = append(b.lines, b.cur)

	lineHeight := fixedToFloat(metrics.Height)
	ascent := fixedToFloat(metrics.Ascent)

	out.Lines = len(b.lines)
	out.Height = float64(out.Lines) * lineHeight

	y0 := 0.0
	if s.MaxHeight > 0 {
		switch s.VAlign {
		case AlignMiddle:
			y0 = (s.MaxHeight - out.Height) / 2
		case AlignBottom:
			y0 = s.MaxHeight - out.Height
		}
	}

	for i, ln := range b.lines {
		x0 := 0.0
		if s.MaxWidth > 0 {
			switch s.HAlign {
			case AlignCenter:
				x0 = (s.MaxWidth - fixedToFloat(ln.width)) / 2
			case AlignRight:
				x0 = s.MaxWidth - fixedToFloat(ln.width)
			}
		}
		baseline := int(math.Round(y0 + ascent + float64(i)*lineHeight))
		for _, g := range ln.glyphs {
			out.Glyphs = append(out.Glyphs, Glyph{
				Rune:    g.r,
				X:       int(math.Round(x0 + fixedToFloat(g.x))),
				Y:       baseline,
				Control: g.control,
			})
		}
	}

	return out
}

// paragraph breaks one hard-break-free paragraph into lines.
func (b *lineBreaker) paragraph(text string) {
	var word, spaces []rune
	flush := func() {
		if len(word) > 0 {
			b.word(word, spaces)
			word, spaces = word[:0], spaces[:0]
		}
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			if len(word) > 0 {
				flush()
			}
			spaces = append(spaces, r)
			continue
		}
		word = append(word, r)
	}
	flush()
	// Trailing whitespace still occupies the line but never wraps it.
	for _, r := range spaces {
		b.place(r, unicode.IsControl(r))
	}
}

// word places the spaces preceding a word and then the word itself.
func (b *lineBreaker) word(word, spaces []rune) {
	if b.wrap && len(b.cur.glyphs) > 0 {
		if b.cur.x+b.measure(spaces)+b.measure(word) > b.maxWidth {
			b.newLine()
			spaces = nil
		}
	}
	for _, r := range spaces {
		b.place(r, unicode.IsControl(r))
	}

	tooWide := b.wrap && b.measure(word) > b.maxWidth
	for _, r := range word {
		if tooWide && len(b.cur.glyphs) > 0 && b.cur.x+b.advance(r) > b.maxWidth {
			b.newLine()
		}
		b.place(r, unicode.IsControl(r))
		if !unicode.IsControl(r) {
			b.cur.width = b.cur.x
		}
	}
}

// place records r at the pen position, after kerning it against the
// previous rune. Control runes take no space.
func (b *lineBreaker) place(r rune, control bool) {
	if control {
		b.cur.glyphs = append(b.cur.glyphs, placed{r: r, x: b.cur.x, control: true})
		b.prev = r
		return
	}
	b.cur.x += b.kern(r)
	b.cur.glyphs = append(b.cur.glyphs, placed{r: r, x: b.cur.x})
	adv, _ := b.face.GlyphAdvance(r)
	b.cur.x += adv
	b.prev = r
}

func (b *lineBreaker) newLine() {
	b.lines = append(b.lines, b.cur)
	b.cur = line{}
	b.prev = -1
}

// advance returns how far placing r moves the pen, kerning included.
func (b *lineBreaker) advance(r rune) fixed.Int26_6 {
	adv, _ := b.face.GlyphAdvance(r)
	return adv + b.kern(r)
}

func (b *lineBreaker) kern(r rune) fixed.Int26_6 {
	if b.prev < 0 {
		return 0
	}
	return b.face.Kern(b.prev, r)
}

// measure returns the advance width of runes placed on a fresh run.
func (b *lineBreaker) measure(runes []rune) fixed.Int26_6 {
	var w fixed.Int26_6
	prev := rune(-1)
	for _, r := range runes {
		adv, _ := b.face.GlyphAdvance(r)
		if prev >= 0 {
			w += b.face.Kern(prev, r)
		}
		w += adv
		prev = r
	}
	return w
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
