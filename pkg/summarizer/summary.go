// Package summarizer renders a human-readable report of a generation run.
package summarizer

import "time"

// Summary contains the data collected during one meme generation.
type Summary struct {
	GeneratedAt time.Time

	Template string
	Settings Settings
	Output   OutputInfo
	Slots    []SlotInfo
}

// Settings contains the render configuration.
type Settings struct {
	MaxFontSize           float64
	Watermark             string
	WatermarkSizeFraction float64
	TopText               string
}

// OutputInfo describes the exported image.
type OutputInfo struct {
	Destination string
	Format      string
	Bytes       int
	Width       int
	Height      int
	FrameCount  int
}

// SlotInfo describes how one slot was filled. Nested slots are numbered
// with their parent's path, e.g. "2.1".
type SlotInfo struct {
	Path     string
	Kind     string
	Text     string
	Template string
	FontSize float64
	Lines    int
	Overflow bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithTemplate sets the template name.
func (b *Builder) WithTemplate(name string) *Builder {
	b.summary.Template = name
	return b
}

// WithSettings sets render settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// AddSlot appends a slot line.
func (b *Builder) AddSlot(slot SlotInfo) *Builder {
	b.summary.Slots = append(b.summary.Slots, slot)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
