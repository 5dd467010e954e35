package glyph

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Key identifies one rasterized glyph.
type Key struct {
	FontID uint64
	Size   fixed.Int26_6
	Rune   rune
}

// Metrics describes a rasterized glyph bitmap.
type Metrics struct {
	// Width and Height of the bitmap in pixels.
	Width  int
	Height int

	// Offset of the bitmap's top-left corner from the pen position on the baseline.
	Offset image.Point

	// Advance is the horizontal pen advance.
	Advance fixed.Int26_6
}

// Glyph is a rasterized glyph. Mask is nil for glyphs without ink (spaces).
type Glyph struct {
	Metrics
	Mask *image.Alpha
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int
	Misses int
}

type faceKey struct {
	fontID uint64
	size   fixed.Int26_6
}

// Cache memoizes faces and rasterized glyphs. It is not safe for concurrent
// use while being filled; rendered masks are read-only once returned.
type Cache struct {
	faces  map[faceKey]font.Face
	glyphs map[Key]Glyph
	stats  Stats
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		faces:  make(map[faceKey]font.Face),
		glyphs: make(map[Key]Glyph),
	}
}

// Quantize rounds a pixel size to the 1/64 px grid used for cache keys.
func Quantize(px float64) fixed.Int26_6 {
	size := fixed.Int26_6(px*64 + 0.5)
	if size < 1 {
		size = 1
	}
	return size
}

// Face returns the face for f at size, creating it on first use.
func (c *Cache) Face(f *Font, size fixed.Int26_6) font.Face {
	key := faceKey{fontID: f.ID(), size: size}
	if face, ok := c.faces[key]; ok {
		return face
	}

	face, err := f.NewFace(float64(size) / 64)
	if err != nil {
		// Parse already opened a face, so this only happens for
		// pathological sizes.
		face = basicfont.Face7x13
	}
	c.faces[key] = face
	return face
}

// Rasterize returns the glyph for r at size, rasterizing it on first use.
func (c *Cache) Rasterize(f *Font, size fixed.Int26_6, r rune) Glyph {
	key := Key{FontID: f.ID(), Size: size, Rune: r}
	if g, ok := c.glyphs[key]; ok {
		c.stats.Hits++
		return g
	}
	c.stats.Misses++

	g := rasterize(c.Face(f, size), r)
	c.glyphs[key] = g
	return g
}

// Stats returns hit/miss counters.
func (c *Cache) Stats() Stats {
	return c.stats
}

// Len returns the number of cached glyphs.
func (c *Cache) Len() int {
	return len(c.glyphs)
}

func rasterize(face font.Face, r rune) Glyph {
	advance, _ := face.GlyphAdvance(r)
	g := Glyph{Metrics: Metrics{Advance: advance}}

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() || mask == nil {
		return g
	}

	// Faces reuse their mask buffer between calls, so copy it out.
	alpha := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)

	g.Width = dr.Dx()
	g.Height = dr.Dy()
	g.Offset = dr.Min
	g.Mask = alpha
	return g
}
