// Package composite blends coverage masks and whole images onto NRGBA rasters.
package composite

import (
	"image"
	"image/color"
)

// Color is a straight-alpha RGBA colour with channels in [0, 1].
type Color [4]float32

// Black is the default text colour.
var Black = Color{0, 0, 0, 1}

// FromColor converts any color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

// NRGBA quantizes the colour the same way blending does.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: quantize(c[0]), G: quantize(c[1]), B: quantize(c[2]), A: quantize(c[3])}
}

// Overlay blends c onto base wherever mask has coverage. The mask's top-left
// pixel lands on origin; pixels falling outside base are skipped.
func Overlay(base *image.NRGBA, mask *image.Alpha, c Color, origin image.Point) {
	OverlayClipped(base, mask, c, origin, base.Bounds())
}

// OverlayClipped is Overlay restricted to clip.
//
// Each channel becomes (1-k)*base + k*c with k = coverage/255, computed on
// values normalized to [0, 1] and truncated back to 8 bits. Full coverage
// writes the colour exactly.
func OverlayClipped(base *image.NRGBA, mask *image.Alpha, c Color, origin image.Point, clip image.Rectangle) {
	clip = clip.Intersect(base.Bounds())
	if clip.Empty() || mask == nil {
		return
	}

	mb := mask.Bounds()
	for my := mb.Min.Y; my < mb.Max.Y; my++ {
		y := origin.Y + my - mb.Min.Y
		if y < clip.Min.Y || y >= clip.Max.Y {
			continue
		}
		for mx := mb.Min.X; mx < mb.Max.X; mx++ {
			x := origin.X + mx - mb.Min.X
			if x < clip.Min.X || x >= clip.Max.X {
				continue
			}
			coverage := mask.Pix[mask.PixOffset(mx, my)]
			if coverage == 0 {
				continue
			}
			i := base.PixOffset(x, y)
			blend(base.Pix[i:i+4:i+4], coverage, c)
		}
	}
}

func blend(px []uint8, coverage uint8, c Color) {
	if coverage == 255 {
		for i := range px {
			px[i] = quantize(c[i])
		}
		return
	}
	k := float32(coverage) / 255
	for i := range px {
		v := float32(px[i]) / 255
		px[i] = quantize(float32((1-k)*v) + float32(k*c[i]))
	}
}

func quantize(v float32) uint8 {
	v *= 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
