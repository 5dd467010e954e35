package meme

import "image"

// Content is one item placed into a template slot: Text, Nested or Picture.
type Content interface {
	isContent()
}

// Text is fitted to its slot at the largest size that satisfies the slot's budget.
type Text string

// Nested is another template rendered with its own items, then scaled into the slot.
type Nested struct {
	Template *Template
	Items    []Content
}

// Picture is an image scaled into the slot.
type Picture struct {
	Image image.Image
}

func (Text) isContent()    {}
func (Nested) isContent()  {}
func (Picture) isContent() {}
