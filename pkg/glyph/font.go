// Package glyph parses fonts and rasterizes their glyphs into coverage masks.
//
// Rasterized glyphs are memoized in a Cache that lives for a single render.
// Fonts are immutable after parsing and can be shared freely.
package glyph

import (
	"errors"
	"fmt"
	"hash/fnv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("glyph: invalid font")

// Font is a parsed OpenType/TrueType font with a stable identity.
type Font struct {
	id   uint64
	name string
	otf  *opentype.Font
}

// Parse parses TTF/OTF data. The font identity is derived from the data, so
// parsing the same bytes twice yields fonts that share cache entries.
func Parse(name string, data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFont, name, err)
	}

	// Open one face so that later per-size faces cannot fail on metrics.
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFont, name, err)
	}
	face.Close()

	h := fnv.New64a()
	h.Write(data)

	return &Font{id: h.Sum64(), name: name, otf: otf}, nil
}

// Default returns the embedded Go Bold font.
func Default() (*Font, error) {
	return Parse("Go Bold", gobold.TTF)
}

// ID returns the font identity used in cache keys.
func (f *Font) ID() uint64 {
	return f.id
}

// Name returns the name the font was parsed with.
func (f *Font) Name() string {
	return f.name
}

// NewFace creates a face at the given pixel size (72 DPI, so points == pixels).
func (f *Font) NewFace(px float64) (font.Face, error) {
	return opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
