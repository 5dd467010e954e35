package library

import (
	"image"
	"image/color"
	"image/gif"
	"testing"
)

var testPalette = color.Palette{
	color.NRGBA{0, 0, 0, 0},
	color.NRGBA{255, 0, 0, 255},
	color.NRGBA{0, 0, 255, 255},
}

func paletted(r image.Rectangle, index uint8) *image.Paletted {
	p := image.NewPaletted(r, testPalette)
	for i := range p.Pix {
		p.Pix[i] = index
	}
	return p
}

// twoFrameGIF is a 4x4 red frame followed by a 2x2 blue patch in the top-left corner.
func twoFrameGIF() *gif.GIF {
	return &gif.GIF{
		Image: []*image.Paletted{
			paletted(image.Rect(0, 0, 4, 4), 1),
			paletted(image.Rect(0, 0, 2, 2), 2),
		},
		Delay:    []int{10, 20},
		Disposal: []byte{gif.DisposalNone, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4, ColorModel: testPalette},
	}
}

func TestCoalesce_PartialFrameKeepsBackground(t *testing.T) {
	anim := coalesce(twoFrameGIF())

	if len(anim.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(anim.Frames))
	}
	second := anim.Frames[1]
	if second.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v", second.Bounds())
	}
	if got := second.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("patched pixel = %v, want blue", got)
	}
	if got := second.NRGBAAt(3, 3); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("untouched pixel = %v, want red from previous frame", got)
	}
}

func TestCoalesce_Disposal(t *testing.T) {
	tests := []struct {
		name     string
		disposal byte
		want     color.NRGBA
	}{
		{"background clears the area", gif.DisposalBackground, color.NRGBA{}},
		{"previous restores the canvas", gif.DisposalPrevious, color.NRGBA{255, 0, 0, 255}},
		{"none keeps the pixels", gif.DisposalNone, color.NRGBA{0, 0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoFrameGIF()
			g.Image = append(g.Image, paletted(image.Rect(3, 3, 4, 4), 2))
			g.Delay = append(g.Delay, 5)
			g.Disposal = []byte{gif.DisposalNone, tt.disposal, gif.DisposalNone}

			anim := coalesce(g)
			if got := anim.Frames[2].NRGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel after disposal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoalesce_LoopCountAndDelays(t *testing.T) {
	g := twoFrameGIF()
	g.LoopCount = 3
	anim := coalesce(g)

	if anim.LoopCount != 3 {
		t.Errorf("loop count = %d", anim.LoopCount)
	}
	g.Delay[0] = 99
	if anim.Delays[0] != 10 {
		t.Error("delays should be copied")
	}
}
