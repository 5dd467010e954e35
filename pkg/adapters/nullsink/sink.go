// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/memecli/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

func (s *Sink) SaveRequestJSON(data []byte) error          { return nil }
func (s *Sink) SaveReportJSON(data []byte) error           { return nil }
func (s *Sink) SaveTemplate(img image.Image) error         { return nil }
func (s *Sink) SaveFrame(index int, img image.Image) error { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
