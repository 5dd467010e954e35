package meme

import (
	"image"
	"math"

	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/fit"
	"github.com/user/memecli/pkg/glyph"
)

// Meme is a rendered template: either Image or Animation is set.
type Meme struct {
	Image     *image.NRGBA
	Animation *Animation

	// Slots describes what was placed into each filled slot.
	Slots []SlotReport
}

// Bounds returns the canvas bounds of the meme.
func (m *Meme) Bounds() image.Rectangle {
	if m.Animation != nil && len(m.Animation.Frames) > 0 {
		return m.Animation.Frames[0].Bounds()
	}
	if m.Image != nil {
		return m.Image.Bounds()
	}
	return image.Rectangle{}
}

// Frames returns the meme as a frame list.
func (m *Meme) Frames() []*image.NRGBA {
	if m.Animation != nil {
		return m.Animation.Frames
	}
	if m.Image != nil {
		return []*image.NRGBA{m.Image}
	}
	return nil
}

// Slot report kinds.
const (
	KindText    = "text"
	KindNested  = "nested"
	KindPicture = "picture"
)

// SlotReport records how one slot was filled.
type SlotReport struct {
	Slot       int          `json:"slot"`
	Kind       string       `json:"kind"`
	Text       string       `json:"text,omitempty"`
	FontSize   float64      `json:"font_size,omitempty"`
	Lines      int          `json:"lines,omitempty"`
	Iterations int          `json:"iterations,omitempty"`
	Overflow   bool         `json:"overflow,omitempty"`
	Template   string       `json:"template,omitempty"`
	Nested     []SlotReport `json:"nested,omitempty"`
}

// Renderer renders templates with one font.
type Renderer struct {
	font    *glyph.Font
	workers int
}

// NewRenderer creates a renderer. workers bounds the goroutines used to paint
// animation frames; zero means one per CPU.
func NewRenderer(f *glyph.Font, workers int) *Renderer {
	return &Renderer{font: f, workers: workers}
}

// Render places items into the slots of t in order and draws the watermark.
// Items beyond the slot count are ignored. The template is not modified.
func (r *Renderer) Render(t *Template, items []Content, opts Options) *Meme {
	if opts.MaxFontSize <= 0 {
		opts.MaxFontSize = DefaultMaxFontSize
	}
	cache := glyph.NewCache()

	ops, reports := r.prepare(cache, t, items, opts)
	if wm := r.watermark(cache, t.Bounds(), textColor(t, opts), opts); wm != nil {
		ops = append(ops, wm...)
	}

	out := &Meme{Slots: reports}
	if t.IsAnimated() {
		frames := composite.ApplyFrames(t.Animation.Frames, r.workers, func(_ int, f *image.NRGBA) *image.NRGBA {
			return paint(f, ops)
		})
		out.Animation = &Animation{
			Frames:    frames,
			Delays:    append([]int(nil), t.Animation.Delays...),
			LoopCount: t.Animation.LoopCount,
		}
		return out
	}
	if t.Image != nil {
		out.Image = paint(t.Image, ops)
	}
	return out
}

// prepare fits and rasterizes every item once, producing the paint
// operations shared by all frames.
func (r *Renderer) prepare(cache *glyph.Cache, t *Template, items []Content, opts Options) ([]paintOp, []SlotReport) {
	var ops []paintOp
	var reports []SlotReport
	color := textColor(t, opts)

	for i, item := range items {
		if i >= len(t.Fields) {
			break
		}
		slot := t.Fields[i]

		switch c := item.(type) {
		case Text:
			textOps, report := r.prepareText(cache, string(c), slot, color, opts.MaxFontSize)
			report.Slot = i
			ops = append(ops, textOps...)
			reports = append(reports, report)

		case Nested:
			if c.Template == nil {
				continue
			}
			sub := opts
			sub.Watermark = ""
			sub.TextColor = nil
			nt := c.Template.still()
			subOps, subReports := r.prepare(cache, nt, c.Items, sub)
			if nt.Image != nil {
				ops = append(ops, newImageOp(paint(nt.Image, subOps), slot.Rect()))
			}
			reports = append(reports, SlotReport{Slot: i, Kind: KindNested, Template: c.Template.Name, Nested: subReports})

		case Picture:
			if c.Image == nil {
				continue
			}
			ops = append(ops, newImageOp(c.Image, slot.Rect()))
			reports = append(reports, SlotReport{Slot: i, Kind: KindPicture})
		}
	}
	return ops, reports
}

func (r *Renderer) prepareText(cache *glyph.Cache, text string, slot Slot, color composite.Color, maxSize float64) ([]paintOp, SlotReport) {
	size := slot.Size()
	res := fit.Fit(cache, r.font, text, size.X, size.Y, fit.MinFontSize, maxSize)

	report := SlotReport{
		Kind:       KindText,
		Text:       text,
		FontSize:   res.Px,
		Lines:      res.Lines,
		Iterations: res.Iterations,
		Overflow:   res.Lines > fit.MaxLines(text) || res.Height > float64(size.Y),
	}
	return r.glyphOps(cache, res.Layout, slot.Min, slot.Rect(), color), report
}

// watermark lays out the watermark left aligned at a fixed size and anchors
// it ceil(size) pixels above the bottom edge.
func (r *Renderer) watermark(cache *glyph.Cache, bounds image.Rectangle, color composite.Color, opts Options) []paintOp {
	if opts.Watermark == "" || opts.WatermarkSizeFraction <= 0 || bounds.Empty() {
		return nil
	}
	w, h := bounds.Dx(), bounds.Dy()
	size := float64(min(w, h)) / opts.WatermarkSizeFraction
	if size <= 0 {
		return nil
	}

	layout := fit.LayoutText(cache, r.font, opts.Watermark, size, fit.Settings{
		HAlign: fit.AlignLeft,
		VAlign: fit.AlignMiddle,
	})
	origin := image.Pt(bounds.Min.X, bounds.Max.Y-int(math.Ceil(size)))
	clip := image.Rect(bounds.Min.X, origin.Y, bounds.Max.X, origin.Y+int(layout.Height))
	return r.glyphOps(cache, layout, origin, clip, color)
}

func (r *Renderer) glyphOps(cache *glyph.Cache, layout fit.Layout, origin image.Point, clip image.Rectangle, color composite.Color) []paintOp {
	var ops []paintOp
	for _, g := range layout.Glyphs {
		if g.Control {
			continue
		}
		raster := cache.Rasterize(r.font, layout.Size, g.Rune)
		if raster.Mask == nil {
			continue
		}
		ops = append(ops, glyphOp{
			mask:   raster.Mask,
			origin: origin.Add(image.Pt(g.X, g.Y)).Add(raster.Offset),
			clip:   clip,
			color:  color,
		})
	}
	return ops
}

func textColor(t *Template, opts Options) composite.Color {
	if opts.TextColor != nil {
		return *opts.TextColor
	}
	if t.Color == (composite.Color{}) {
		return composite.Black
	}
	return t.Color
}
