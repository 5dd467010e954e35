package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts vector drawing and image codecs used around the core
// compositor: caption strips, template previews and still encodings.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes PNG, JPEG or GIF data; the first frame of a GIF.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// MeasureWrapped returns the height of text wrapped to width.
	MeasureWrapped(text string, width float64, style TextStyle) float64
}

// Canvas provides drawing operations.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws a single line anchored at x, vertically centred on y.
	DrawText(text string, x, y int, style TextStyle)

	// DrawWrappedText draws text wrapped to width with its top edge at y.
	DrawWrappedText(text string, x, y int, width float64, style TextStyle)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
	FormatGIF
)

// String returns the conventional file extension of the format, without the dot.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	default:
		return "unknown"
	}
}
