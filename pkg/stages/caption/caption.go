// Package caption implements the top text stage: a white strip with
// wrapped black text stacked above every frame of the meme.
package caption

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/pipeline"
	"github.com/user/memecli/pkg/ports"
)

// Strip geometry relative to the meme width.
const (
	fontSizeDivisor = 12.0
	minFontSize     = 12.0
)

// ErrNoMeme is returned when there is nothing to caption.
var ErrNoMeme = errors.New("caption: no meme")

// Stage adds a caption strip above the meme.
type Stage struct {
	renderer ports.Renderer
	workers  int
	logger   ports.Logger
}

// NewStage creates a new caption stage.
func NewStage(renderer ports.Renderer, workers int, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		workers:  workers,
		logger:   logger.WithComponent("caption"),
	}
}

// Execute returns the input meme unchanged when Text is empty.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	result := pipeline.CaptionResult{Meme: input.Meme}
	if input.Meme == nil {
		return result, ErrNoMeme
	}
	if input.Text == "" {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	width := input.Meme.Bounds().Dx()
	strip := s.strip(input.Text, width)
	s.logger.Debug("Caption strip: %dx%d", strip.Bounds().Dx(), strip.Bounds().Dy())

	addStrip := func(_ int, frame *image.NRGBA) *image.NRGBA {
		return stack(strip, frame)
	}

	out := &meme.Meme{Slots: input.Meme.Slots}
	if a := input.Meme.Animation; a != nil {
		out.Animation = &meme.Animation{
			Frames:    composite.ApplyFrames(a.Frames, s.workers, addStrip),
			Delays:    append([]int(nil), a.Delays...),
			LoopCount: a.LoopCount,
		}
	} else {
		out.Image = stack(strip, input.Meme.Image)
	}

	s.logger.Info("Top text added")
	result.Meme = out
	return result, nil
}

// strip draws text centred on a white band of the given width.
func (s *Stage) strip(text string, width int) *image.NRGBA {
	style := ports.TextStyle{
		FontSize: math.Max(minFontSize, float64(width)/fontSizeDivisor),
		Color:    color.Black,
		Align:    ports.AlignCenter,
	}
	pad := int(math.Ceil(style.FontSize / 2))
	textWidth := float64(width - 2*pad)
	if textWidth < 1 {
		textWidth = 1
	}
	height := int(math.Ceil(s.renderer.MeasureWrapped(text, textWidth, style))) + 2*pad

	canvas := s.renderer.CreateCanvas(width, height, color.White)
	canvas.DrawWrappedText(text, pad, pad, textWidth, style)
	return imaging.Clone(canvas.ToImage())
}

func stack(strip, frame *image.NRGBA) *image.NRGBA {
	sb, fb := strip.Bounds(), frame.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, fb.Dx(), sb.Dy()+fb.Dy()))
	draw.Draw(out, image.Rect(0, 0, sb.Dx(), sb.Dy()), strip, sb.Min, draw.Src)
	draw.Draw(out, image.Rect(0, sb.Dy(), fb.Dx(), sb.Dy()+fb.Dy()), frame, fb.Min, draw.Src)
	return out
}
