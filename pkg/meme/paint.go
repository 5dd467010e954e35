package meme

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/user/memecli/pkg/composite"
)

// paintOp is a prepared drawing step. Ops only read their own data, so the
// same slice may be applied to several frames concurrently.
type paintOp interface {
	apply(dst *image.NRGBA)
}

type glyphOp struct {
	mask   *image.Alpha
	origin image.Point
	clip   image.Rectangle
	color  composite.Color
}

func (o glyphOp) apply(dst *image.NRGBA) {
	composite.OverlayClipped(dst, o.mask, o.color, o.origin, o.clip)
}

// imageOp blits an image that was already scaled to its destination.
type imageOp struct {
	placed composite.Placed
}

func newImageOp(src image.Image, slot image.Rectangle) paintOp {
	placed, ok := composite.FitImage(src, slot)
	if !ok {
		return noopOp{}
	}
	return imageOp{placed: placed}
}

func (o imageOp) apply(dst *image.NRGBA) {
	o.placed.Draw(dst)
}

type noopOp struct{}

func (noopOp) apply(*image.NRGBA) {}

// paint returns a copy of base with ops applied in order.
func paint(base *image.NRGBA, ops []paintOp) *image.NRGBA {
	out := image.NewNRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, out.Bounds().Min, draw.Src)
	for _, op := range ops {
		op.apply(out)
	}
	return out
}
