// Package meme renders content into the slots of a template.
package meme

import (
	"image"

	"github.com/user/memecli/pkg/composite"
)

// Slot is a rectangular region of a template, in pixels. Min <= Max
// componentwise is checked when templates are loaded.
type Slot struct {
	Min image.Point
	Max image.Point
}

// Rect returns the slot as a rectangle.
func (s Slot) Rect() image.Rectangle {
	return image.Rectangle{Min: s.Min, Max: s.Max}
}

// Size returns the slot's width and height.
func (s Slot) Size() image.Point {
	return s.Max.Sub(s.Min)
}

// Animation is a sequence of full frames. Delays are in hundredths of a
// second, one per frame, and are passed through rendering unchanged.
type Animation struct {
	Frames    []*image.NRGBA
	Delays    []int
	LoopCount int
}

// Template is a base image or animation with ordered text slots.
type Template struct {
	Name      string
	Image     *image.NRGBA
	Animation *Animation
	Fields    []Slot

	// Color is the text colour. The zero value means black.
	Color composite.Color
}

// IsAnimated reports whether the template carries frames instead of an image.
func (t *Template) IsAnimated() bool {
	return t.Animation != nil && len(t.Animation.Frames) > 0
}

// FirstFrame returns the still image, or the first frame of an animation.
func (t *Template) FirstFrame() *image.NRGBA {
	if t.IsAnimated() {
		return t.Animation.Frames[0]
	}
	return t.Image
}

// Bounds returns the template's canvas bounds.
func (t *Template) Bounds() image.Rectangle {
	if f := t.FirstFrame(); f != nil {
		return f.Bounds()
	}
	return image.Rectangle{}
}

// still returns a static copy of t showing its first frame.
func (t *Template) still() *Template {
	if !t.IsAnimated() {
		return t
	}
	s := *t
	s.Image = t.Animation.Frames[0]
	s.Animation = nil
	return &s
}
