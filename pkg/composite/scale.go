package composite

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// ScaleToFit returns the rectangle inside box that holds an image of size src
// scaled uniformly to fit, centred on the axis with slack. The result is empty
// when either src or box has no area.
func ScaleToFit(src image.Point, box image.Rectangle) image.Rectangle {
	bw, bh := box.Dx(), box.Dy()
	if src.X <= 0 || src.Y <= 0 || bw <= 0 || bh <= 0 {
		return image.Rectangle{}
	}

	scale := math.Min(float64(bw)/float64(src.X), float64(bh)/float64(src.Y))
	w := clampDim(int(math.Round(float64(src.X)*scale)), bw)
	h := clampDim(int(math.Round(float64(src.Y)*scale)), bh)

	min := box.Min.Add(image.Pt((bw-w)/2, (bh-h)/2))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(w, h))}
}

func clampDim(v, limit int) int {
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}

// Placed is an image already resampled to its destination rectangle.
type Placed struct {
	Image *image.NRGBA
	At    image.Rectangle
}

// FitImage scales src to fit slot and centres it. It reports false when
// src or slot has no area.
func FitImage(src image.Image, slot image.Rectangle) (Placed, bool) {
	at := ScaleToFit(src.Bounds().Size(), slot)
	if at.Empty() {
		return Placed{}, false
	}
	return Placed{Image: Resize(src, at.Dx(), at.Dy()), At: at}, true
}

// Draw copies the image opaquely onto base.
func (p Placed) Draw(base *image.NRGBA) {
	draw.Draw(base, p.At, p.Image, image.Point{}, draw.Src)
}

// Resize resamples src to width x height. Shrinking uses a box filter,
// enlarging a linear one.
func Resize(src image.Image, width, height int) *image.NRGBA {
	filter := imaging.Box
	if width > src.Bounds().Dx() || height > src.Bounds().Dy() {
		filter = imaging.Linear
	}
	return imaging.Resize(src, width, height, filter)
}
