package mocks

import (
	"image"
	"image/color"

	"github.com/user/memecli/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc   func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc    func(data []byte) (image.Image, error)
	EncodeImageFunc    func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	MeasureWrappedFunc func(text string, width float64, style ports.TextStyle) float64
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height, bg)
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewNRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) MeasureWrapped(text string, width float64, style ports.TextStyle) float64 {
	if m.MeasureWrappedFunc != nil {
		return m.MeasureWrappedFunc(text, width, style)
	}
	return style.FontSize
}

var _ ports.Renderer = (*Renderer)(nil)

// TextCall records one text drawing call.
type TextCall struct {
	Text  string
	X, Y  int
	Width float64
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas. It paints rectangles
// and images onto a real buffer and records text calls.
type Canvas struct {
	img   *image.NRGBA
	Texts []TextCall
	Rects []image.Rectangle
}

// NewCanvas creates a canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	c := &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
	if bg != nil {
		c.fill(c.img.Bounds(), bg)
	}
	return c
}

func (m *Canvas) fill(r image.Rectangle, c color.Color) {
	r = r.Intersect(m.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.img.Set(x, y, c)
		}
	}
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			m.img.Set(x+sx-b.Min.X, y+sy-b.Min.Y, img.At(sx, sy))
		}
	}
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.fill(image.Rect(x, y, x+w, y+h), c)
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.Rects = append(m.Rects, image.Rect(x, y, x+w, y+h))
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) DrawWrappedText(text string, x, y int, width float64, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Width: width, Style: style})
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
