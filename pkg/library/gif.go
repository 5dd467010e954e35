package library

import (
	"image"
	"image/gif"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/user/memecli/pkg/meme"
)

// coalesce expands the frames of g, which may cover only part of the
// canvas, into full frames, honouring each frame's disposal method.
func coalesce(g *gif.GIF) *meme.Animation {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, p := range g.Image {
			bounds = bounds.Union(p.Bounds())
		}
		bounds.Min = image.Point{}
	}

	canvas := image.NewNRGBA(bounds)
	frames := make([]*image.NRGBA, 0, len(g.Image))
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frames = append(frames, imaging.Clone(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	delays := make([]int, len(frames))
	copy(delays, g.Delay)
	return &meme.Animation{Frames: frames, Delays: delays, LoopCount: g.LoopCount}
}
