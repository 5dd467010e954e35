// Package render implements the meme rendering stage.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/pipeline"
	"github.com/user/memecli/pkg/ports"
)

// ErrNoTemplate is returned when the input carries no template.
var ErrNoTemplate = errors.New("render: no template")

// Stage renders content into a template.
type Stage struct {
	renderer *meme.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new render stage.
func NewStage(renderer *meme.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("render"),
	}
}

// Execute renders the meme and reports how each slot was filled.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	result := pipeline.RenderResult{}
	if input.Template == nil {
		return result, ErrNoTemplate
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if input.Template.IsAnimated() {
		s.logger.Info("Rendering %d frames", len(input.Template.Animation.Frames))
	}
	m := s.renderer.Render(input.Template, input.Items, input.Options)

	s.logSlots(m.Slots, "")
	bounds := m.Bounds()
	s.logger.Info("Meme rendered: %dx%d", bounds.Dx(), bounds.Dy())

	if s.sink.Enabled() {
		if data, err := json.MarshalIndent(m.Slots, "", "  "); err == nil {
			s.sink.SaveReportJSON(data)
		}
	}

	result.Meme = m
	return result, nil
}

func (s *Stage) logSlots(slots []meme.SlotReport, prefix string) {
	for _, r := range slots {
		switch r.Kind {
		case meme.KindText:
			s.logger.Debug("Slot %s%d: font size %.1f, %d lines, %d iterations", prefix, r.Slot+1, r.FontSize, r.Lines, r.Iterations)
			if r.Overflow {
				s.logger.Warn("Slot %s%d: text does not fit even at the smallest size", prefix, r.Slot+1)
			}
		case meme.KindNested:
			s.logger.Debug("Slot %s%d: nested template %s", prefix, r.Slot+1, r.Template)
			s.logSlots(r.Nested, prefix+strconv.Itoa(r.Slot+1)+".")
		default:
			s.logger.Debug("Slot %s%d: %s", prefix, r.Slot+1, r.Kind)
		}
	}
}
