// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/pipeline"
	"github.com/user/memecli/pkg/ports"
)

// Request contains everything needed to generate one meme.
type Request struct {
	// Input
	Template string   `json:"template"`
	Inputs   []string `json:"inputs"`

	// Rendering
	MaxFontSize           float64          `json:"max_font_size"`
	TextColor             *composite.Color `json:"text_color,omitempty"`
	Watermark             string           `json:"watermark"`
	WatermarkSizeFraction float64          `json:"watermark_size_fraction"`
	TopText               string           `json:"top_text,omitempty"`

	// Output: a path, "-" for stdout, or empty for the clipboard.
	Output  string `json:"output"`
	Quality int    `json:"quality,omitempty"`
}

// DefaultRequest returns a Request with default render settings.
func DefaultRequest() Request {
	opts := meme.DefaultOptions()
	return Request{
		MaxFontSize:           opts.MaxFontSize,
		WatermarkSizeFraction: opts.WatermarkSizeFraction,
	}
}

// Generator runs resolve, render, caption and export in order.
type Generator struct {
	resolveStage pipeline.Stage[pipeline.ResolveInput, pipeline.ResolveResult]
	renderStage  pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult]
	captionStage pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult]
	exportStage  pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Generator.
func New(
	resolveStage pipeline.Stage[pipeline.ResolveInput, pipeline.ResolveResult],
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult],
	captionStage pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult],
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Generator {
	return &Generator{
		resolveStage: resolveStage,
		renderStage:  renderStage,
		captionStage: captionStage,
		exportStage:  exportStage,
		sink:         sink,
		logger:       logger,
	}
}

// Run executes the complete pipeline.
func (g *Generator) Run(ctx context.Context, req Request) (RunResult, error) {
	g.logger.Debug("Starting pipeline")

	if g.sink.Enabled() {
		if data, err := json.MarshalIndent(req, "", "  "); err == nil {
			g.sink.SaveRequestJSON(data)
		}
	}

	// 1. Resolve template and inputs
	resolved, err := g.resolveStage.Execute(ctx, pipeline.ResolveInput{
		Template: req.Template,
		Inputs:   req.Inputs,
	})
	if err != nil {
		g.logger.Error("Failed to resolve template: %s", err)
		return RunResult{}, fmt.Errorf("resolve stage: %w", err)
	}

	// 2. Render
	rendered, err := g.renderStage.Execute(ctx, pipeline.RenderInput{
		Template: resolved.Template,
		Items:    resolved.Items,
		Options:  g.buildOptions(req),
	})
	if err != nil {
		g.logger.Error("Failed to render meme: %s", err)
		return RunResult{}, fmt.Errorf("render stage: %w", err)
	}

	// 3. Optional top text
	captioned, err := g.captionStage.Execute(ctx, pipeline.CaptionInput{
		Meme: rendered.Meme,
		Text: req.TopText,
	})
	if err != nil {
		g.logger.Error("Failed to add top text: %s", err)
		return RunResult{}, fmt.Errorf("caption stage: %w", err)
	}
	m := captioned.Meme

	if g.sink.Enabled() {
		for i, frame := range m.Frames() {
			g.sink.SaveFrame(i, frame)
		}
	}

	// 4. Export
	exported, err := g.exportStage.Execute(ctx, pipeline.ExportInput{
		Meme:    m,
		Output:  req.Output,
		Quality: req.Quality,
	})
	if err != nil {
		g.logger.Error("Failed to export meme: %s", err)
		return RunResult{}, fmt.Errorf("export stage: %w", err)
	}

	g.logger.Info("Done!")

	bounds := m.Bounds()
	return RunResult{
		Template:    resolved.Template.Name,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		FrameCount:  len(m.Frames()),
		Slots:       m.Slots,
		Destination: exported.Destination,
		Format:      exported.Format,
		Bytes:       exported.Bytes,
	}, nil
}

func (g *Generator) buildOptions(req Request) meme.Options {
	opts := meme.DefaultOptions()
	if req.MaxFontSize > 0 {
		opts.MaxFontSize = req.MaxFontSize
	}
	if req.WatermarkSizeFraction > 0 {
		opts.WatermarkSizeFraction = req.WatermarkSizeFraction
	}
	opts.TextColor = req.TextColor
	opts.Watermark = req.Watermark
	return opts
}

// RunResult summarizes a pipeline run.
type RunResult struct {
	Template   string
	Width      int
	Height     int
	FrameCount int
	Slots      []meme.SlotReport

	// Output information
	Destination string
	Format      string
	Bytes       int
}
