// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/user/memecli/pkg/glyph"
	"github.com/user/memecli/pkg/ports"
)

// lineSpacing is the multiple of the font height between wrapped lines.
const lineSpacing = 1.2

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	font *glyph.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New creates a new Renderer drawing text with f.
func New(f *glyph.Font) *Renderer {
	return &Renderer{
		font:  f,
		faces: make(map[float64]font.Face),
	}
}

// face returns a face at size, falling back to the fixed bitmap font.
func (r *Renderer) face(size float64) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.faces[size]; ok {
		return f
	}
	var f font.Face = basicfont.Face7x13
	if r.font != nil {
		if nf, err := r.font.NewFace(size); err == nil {
			f = nf
		}
	}
	r.faces[size] = f
	return f
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, renderer: r}
}

// DecodeImage decodes PNG, JPEG or GIF data.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatGIF:
		if err := gif.Encode(&buf, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg}); err != nil {
			return nil, fmt.Errorf("encode GIF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// MeasureWrapped returns the height of text wrapped to width.
func (r *Renderer) MeasureWrapped(text string, width float64, style ports.TextStyle) float64 {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(r.face(style.FontSize))
	lines := dc.WordWrap(text, width)
	if len(lines) == 0 {
		return 0
	}
	fh := dc.FontHeight()
	n := float64(len(lines))
	return math.Ceil(n*fh*lineSpacing - (lineSpacing-1)*fh)
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc       *gg.Context
	renderer *Renderer
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawRectStroke draws a rectangle outline.
func (c *Canvas) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Stroke()
}

// DrawText draws a single line of text.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.applyStyle(style)
	c.dc.DrawStringAnchored(text, float64(x), float64(y), anchorX(style.Align), 0.5)
}

// DrawWrappedText draws text wrapped to width with its top edge at y.
func (c *Canvas) DrawWrappedText(text string, x, y int, width float64, style ports.TextStyle) {
	c.applyStyle(style)
	c.dc.DrawStringWrapped(text, float64(x), float64(y), 0, 0, width, lineSpacing, ggAlign(style.Align))
}

func (c *Canvas) applyStyle(style ports.TextStyle) {
	col := style.Color
	if col == nil {
		col = color.Black
	}
	c.dc.SetColor(col)
	c.dc.SetFontFace(c.renderer.face(style.FontSize))
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

func anchorX(a ports.TextAlign) float64 {
	switch a {
	case ports.AlignCenter:
		return 0.5
	case ports.AlignRight:
		return 1.0
	default:
		return 0
	}
}

func ggAlign(a ports.TextAlign) gg.Align {
	switch a {
	case ports.AlignCenter:
		return gg.AlignCenter
	case ports.AlignRight:
		return gg.AlignRight
	default:
		return gg.AlignLeft
	}
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
