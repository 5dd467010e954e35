package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/memecli/pkg/adapters/logger"
	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/mocks"
	"github.com/user/memecli/pkg/pipeline"
)

// mockResolveStage is a mock for the resolve stage.
type mockResolveStage struct {
	input  pipeline.ResolveInput
	result pipeline.ResolveResult
	err    error
}

func (m *mockResolveStage) Execute(ctx context.Context, input pipeline.ResolveInput) (pipeline.ResolveResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.ResolveResult{}, m.err
	}
	return m.result, nil
}

// mockRenderStage is a mock for the render stage.
type mockRenderStage struct {
	input  pipeline.RenderInput
	result pipeline.RenderResult
	err    error
}

func (m *mockRenderStage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.RenderResult{}, m.err
	}
	return m.result, nil
}

// mockCaptionStage passes the meme through.
type mockCaptionStage struct {
	input pipeline.CaptionInput
	err   error
}

func (m *mockCaptionStage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.CaptionResult{}, m.err
	}
	return pipeline.CaptionResult{Meme: input.Meme}, nil
}

// mockExportStage is a mock for the export stage.
type mockExportStage struct {
	input pipeline.ExportInput
	err   error
}

func (m *mockExportStage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.ExportResult{}, m.err
	}
	return pipeline.ExportResult{Destination: input.Output, Format: "png", Bytes: 42}, nil
}

type stages struct {
	resolve *mockResolveStage
	render  *mockRenderStage
	caption *mockCaptionStage
	export  *mockExportStage
}

func newStages() stages {
	tmpl := &meme.Template{Name: "drake", Image: image.NewNRGBA(image.Rect(0, 0, 100, 50))}
	return stages{
		resolve: &mockResolveStage{result: pipeline.ResolveResult{
			Template: tmpl,
			Items:    []meme.Content{meme.Text("a")},
		}},
		render: &mockRenderStage{result: pipeline.RenderResult{Meme: &meme.Meme{
			Image: image.NewNRGBA(image.Rect(0, 0, 100, 50)),
			Slots: []meme.SlotReport{{Slot: 0, Kind: meme.KindText, Text: "a", FontSize: 40}},
		}}},
		caption: &mockCaptionStage{},
		export:  &mockExportStage{},
	}
}

func (s stages) generator(sink *mocks.DebugSink) *Generator {
	return New(s.resolve, s.render, s.caption, s.export, sink, logger.NewNoop())
}

func TestGenerator_Run(t *testing.T) {
	s := newStages()
	g := s.generator(mocks.NewDebugSink(false))

	red := composite.Color{1, 0, 0, 1}
	req := DefaultRequest()
	req.Template = "drake"
	req.Inputs = []string{"a"}
	req.TextColor = &red
	req.Watermark = "wm"
	req.TopText = "top"
	req.Output = "out.png"

	result, err := g.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(pipeline.ResolveInput{Template: "drake", Inputs: []string{"a"}}, s.resolve.input); diff != "" {
		t.Errorf("resolve input mismatch (-want +got):\n%s", diff)
	}
	opts := s.render.input.Options
	if opts.MaxFontSize != meme.DefaultMaxFontSize || opts.Watermark != "wm" || opts.TextColor != &red {
		t.Errorf("unexpected render options: %+v", opts)
	}
	if s.caption.input.Text != "top" {
		t.Errorf("caption text = %q", s.caption.input.Text)
	}
	if s.export.input.Output != "out.png" {
		t.Errorf("export output = %q", s.export.input.Output)
	}

	want := RunResult{
		Template:    "drake",
		Width:       100,
		Height:      50,
		FrameCount:  1,
		Slots:       []meme.SlotReport{{Slot: 0, Kind: meme.KindText, Text: "a", FontSize: 40}},
		Destination: "out.png",
		Format:      "png",
		Bytes:       42,
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerator_Run_DefaultsForZeroOptions(t *testing.T) {
	s := newStages()
	if _, err := s.generator(mocks.NewDebugSink(false)).Run(context.Background(), Request{Template: "drake"}); err != nil {
		t.Fatal(err)
	}
	opts := s.render.input.Options
	if opts.MaxFontSize != meme.DefaultMaxFontSize || opts.WatermarkSizeFraction != meme.DefaultWatermarkSizeFraction {
		t.Errorf("zero options should fall back to defaults: %+v", opts)
	}
}

func TestGenerator_Run_StageErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		stage string
		fail  func(s stages)
	}{
		{"resolve", func(s stages) { s.resolve.err = boom }},
		{"render", func(s stages) { s.render.err = boom }},
		{"caption", func(s stages) { s.caption.err = boom }},
		{"export", func(s stages) { s.export.err = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			s := newStages()
			tt.fail(s)
			_, err := s.generator(mocks.NewDebugSink(false)).Run(context.Background(), DefaultRequest())
			if !errors.Is(err, boom) {
				t.Fatalf("expected wrapped error, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.stage+" stage: ") {
				t.Errorf("error should name the stage: %v", err)
			}
		})
	}
}

func TestGenerator_Run_WithDebugSink(t *testing.T) {
	s := newStages()
	sink := mocks.NewDebugSink(true)

	req := DefaultRequest()
	req.Template = "drake"
	if _, err := s.generator(sink).Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	var saved Request
	if err := json.Unmarshal(sink.RequestJSON, &saved); err != nil {
		t.Fatalf("request JSON: %v", err)
	}
	if saved.Template != "drake" {
		t.Errorf("saved template = %q", saved.Template)
	}
	if len(sink.Frames) != 1 {
		t.Errorf("frames saved = %d, want 1", len(sink.Frames))
	}
}
