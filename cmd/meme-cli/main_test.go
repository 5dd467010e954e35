package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/user/memecli/pkg/adapters/logger"
	"github.com/user/memecli/pkg/adapters/prompt"
	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/config"
	"github.com/user/memecli/pkg/library"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/mocks"
	"github.com/user/memecli/pkg/ports"
)

func ptr[T any](v T) *T { return &v }

func TestGenCmd_BuildRequest(t *testing.T) {
	cfg := config.Defaults()
	cfg.Watermark = "from config"
	cfg.MaxFontSize = 300

	tests := []struct {
		name          string
		cmd           GenCmd
		wantWatermark string
		wantMax       float64
		wantColor     *composite.Color
	}{
		{"config values", GenCmd{Template: "t"}, "from config", 300, nil},
		{"flag overrides", GenCmd{Template: "t", Watermark: ptr("mine"), MaxSize: ptr(80.0)}, "mine", 80, nil},
		{"no watermark", GenCmd{Template: "t", Watermark: ptr("mine"), NoWatermark: true}, "", 300, nil},
		{"color", GenCmd{Template: "t", Color: ptr("#ff0000")}, "from config", 300, &composite.Color{1, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.cmd.buildRequest(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Watermark != tt.wantWatermark {
				t.Errorf("watermark = %q, want %q", req.Watermark, tt.wantWatermark)
			}
			if req.MaxFontSize != tt.wantMax {
				t.Errorf("max font size = %v, want %v", req.MaxFontSize, tt.wantMax)
			}
			if diff := cmp.Diff(tt.wantColor, req.TextColor); diff != "" {
				t.Errorf("color mismatch (-want +got):\n%s", diff)
			}
			if req.WatermarkSizeFraction != config.DefaultWatermarkSizeFraction {
				t.Errorf("watermark fraction = %v", req.WatermarkSizeFraction)
			}
		})
	}
}

func TestGenCmd_BuildRequest_InvalidColor(t *testing.T) {
	cmd := GenCmd{Template: "t", Color: ptr("#nothex")}
	if _, err := cmd.buildRequest(config.Defaults()); !errors.Is(err, config.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestMakeTemplateCmd_FieldsFromArgs(t *testing.T) {
	cmd := MakeTemplateCmd{Coordinates: []string{"0-0-50-20", "0-30-50-60"}}
	p := &mocks.Prompter{}

	fields, err := cmd.fields(image.Rect(0, 0, 100, 100), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []library.Field{
		{Min: [2]int{0, 0}, Max: [2]int{50, 20}},
		{Min: [2]int{0, 30}, Max: [2]int{50, 60}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(p.Asked) != 0 {
		t.Error("should not prompt when coordinates are given")
	}

	cmd.Coordinates = []string{"nope"}
	if _, err := cmd.fields(image.Rect(0, 0, 100, 100), p); !errors.Is(err, library.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
}

func TestAskFields(t *testing.T) {
	p := &mocks.Prompter{Inputs: []string{"1-2-30-40", "10-50-90-90", ""}, Confirms: []bool{true}}

	fields, err := askFields(image.Rect(0, 0, 100, 100), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 || fields[1].String() != "10-50-90-90" {
		t.Errorf("fields = %v", fields)
	}
	if len(p.Asked) != 4 {
		t.Errorf("questions asked = %d, want 4", len(p.Asked))
	}
}

func TestAskFields_OutsideImage(t *testing.T) {
	p := &mocks.Prompter{Inputs: []string{"0-0-200-10"}}
	if _, err := askFields(image.Rect(0, 0, 100, 100), p); err == nil {
		t.Error("expected validation error for a slot outside the image")
	}
}

func TestAskFields_Declined(t *testing.T) {
	p := &mocks.Prompter{Inputs: []string{""}, Confirms: []bool{false}}
	if _, err := askFields(image.Rect(0, 0, 100, 100), p); !errors.Is(err, prompt.ErrInterrupted) {
		t.Errorf("expected ErrInterrupted, got %v", err)
	}
}

func TestDrawPreview(t *testing.T) {
	var canvas *mocks.Canvas
	r := &mocks.Renderer{}
	r.CreateCanvasFunc = func(w, h int, bg color.Color) ports.Canvas {
		canvas = mocks.NewCanvas(w, h, bg)
		return canvas
	}

	base := image.NewNRGBA(image.Rect(0, 0, 100, 80))
	slots := []meme.Slot{
		{Min: image.Pt(0, 0), Max: image.Pt(60, 30)},
		{Min: image.Pt(10, 40), Max: image.Pt(90, 80)},
	}
	img := drawPreview(r, base, slots)

	if img.Bounds() != base.Bounds() {
		t.Errorf("bounds = %v", img.Bounds())
	}
	wantRects := []image.Rectangle{image.Rect(0, 0, 60, 30), image.Rect(10, 40, 90, 80)}
	if diff := cmp.Diff(wantRects, canvas.Rects); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
	if len(canvas.Texts) != 2 || canvas.Texts[0].Text != "1" || canvas.Texts[1].Text != "2" {
		t.Fatalf("labels = %+v", canvas.Texts)
	}
	if canvas.Texts[0].X != 30 || canvas.Texts[0].Y != 15 {
		t.Errorf("label 1 at %d,%d, want slot centre 30,15", canvas.Texts[0].X, canvas.Texts[0].Y)
	}
	if canvas.Texts[1].Style.FontSize != 40.0/3 {
		t.Errorf("label 2 font size = %v", canvas.Texts[1].Style.FontSize)
	}
}

func TestCompletionScript(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{`complete -C "/usr/bin/meme-cli" meme-cli`}},
		{"zsh", []string{"bashcompinit", `complete -o nospace -C "/usr/bin/meme-cli" meme-cli`}},
		{"fish", []string{"function __complete_meme-cli", "COMP_LINE", `complete -f -c meme-cli -a "(__complete_meme-cli)"`}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			script, err := completionScript(tt.shell, "meme-cli", "/usr/bin/meme-cli")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(script, want) {
					t.Errorf("script missing %q:\n%s", want, script)
				}
			}
		})
	}

	if _, err := completionScript("tcsh", "meme-cli", "/usr/bin/meme-cli"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestCompletionCmd_Run(t *testing.T) {
	var out bytes.Buffer
	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name("meme-cli"), kong.Writers(&out, &out))
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}

	ctx, err := parser.Parse([]string{"completion", "bash"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ctx.Command() != "completion <shell>" {
		t.Errorf("command = %q", ctx.Command())
	}
	if err := ctx.Run(&cli.Globals); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "complete -C ") || !strings.HasSuffix(out.String(), " meme-cli\n") {
		t.Errorf("unexpected script %q", out.String())
	}

	if _, err := parser.Parse([]string{"completion", "tcsh"}); err == nil {
		t.Error("expected kong to reject an unknown shell")
	}
}

func TestHoldClipboard(t *testing.T) {
	tests := []struct {
		name     string
		hold     time.Duration
		takeover bool
		wantCall bool
		wantWarn bool
	}{
		{"taken over", time.Second, true, true, false},
		{"timed out", time.Second, false, true, true},
		{"disabled", 0, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			clip := &mocks.Clipboard{HoldFunc: func(ctx context.Context, d time.Duration) bool {
				called = true
				if d != tt.hold {
					t.Errorf("hold duration = %v, want %v", d, tt.hold)
				}
				return tt.takeover
			}}
			var buf bytes.Buffer
			log := logger.NewWriter(ports.LevelWarn, &buf)

			holdClipboard(context.Background(), clip, tt.hold, log)

			if called != tt.wantCall {
				t.Errorf("Hold called = %v, want %v", called, tt.wantCall)
			}
			if warned := buf.Len() > 0; warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v (%q)", warned, tt.wantWarn, buf.String())
			}
		})
	}
}
