package main

import (
	"context"
	"os"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/memecli/pkg/adapters/clipboard"
	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/config"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/orchestrator"
	"github.com/user/memecli/pkg/ports"
	"github.com/user/memecli/pkg/stages/caption"
	"github.com/user/memecli/pkg/stages/export"
	"github.com/user/memecli/pkg/stages/render"
	"github.com/user/memecli/pkg/stages/resolve"
	"github.com/user/memecli/pkg/summarizer"
)

// GenCmd defines the gen subcommand.
type GenCmd struct {
	Template string   `arg:"" predictor:"template" help:"The template to use."`
	Inputs   []string `arg:"" optional:"" help:"Slot contents in order: text, \"/meme NAME$$$$a$$$$b\" or \"/image PATH\"."`

	// Output
	Output  string        `short:"o" predictor:"file" help:"Output path (.png, .jpg, .gif), or - for stdout. Default: clipboard."`
	Quality int           `short:"q" help:"JPEG quality (1-100)."`
	Summary string        `type:"path" predictor:"file" help:"Write a Markdown summary of the run to this file."`
	Hold    time.Duration `default:"30s" help:"On X11, how long to keep serving a clipboard meme until another program takes it over."`

	// Rendering
	MaxSize     *float64 `short:"m" help:"Maximum font size (default: 600)."`
	Color       *string  `help:"Text color override (hex, e.g. #ffffff)."`
	Watermark   *string  `short:"w" help:"Custom watermark text."`
	NoWatermark bool     `help:"Do not draw a watermark."`
	TopText     string   `short:"t" help:"Caption drawn on a white strip above the meme."`
}

// Run executes the gen command.
func (cmd *GenCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	req, err := cmd.buildRequest(a.cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(a.log)
	defer cancel()

	sink, err := a.sink(g)
	if err != nil {
		return err
	}

	clip := clipboard.New()
	gen := orchestrator.New(
		resolve.NewStage(a.library, a.fs, a.renderer, sink, a.log),
		render.NewStage(meme.NewRenderer(a.font, a.cfg.Workers), sink, a.log),
		caption.NewStage(a.renderer, a.cfg.Workers, a.log),
		export.NewStage(a.fs, a.renderer, clip, os.Stdout, a.log),
		sink,
		a.log,
	)

	result, err := gen.Run(ctx, req)
	if err != nil {
		return err
	}

	if cmd.Summary != "" {
		s := summarizer.NewBuilder().
			WithTemplate(result.Template).
			WithSettings(summarizer.Settings{
				MaxFontSize:           req.MaxFontSize,
				Watermark:             req.Watermark,
				WatermarkSizeFraction: req.WatermarkSizeFraction,
				TopText:               req.TopText,
			}).
			WithOutput(summarizer.OutputInfo{
				Destination: result.Destination,
				Format:      result.Format,
				Bytes:       result.Bytes,
				Width:       result.Width,
				Height:      result.Height,
				FrameCount:  result.FrameCount,
			}).
			Build()
		s.Slots = summarizer.SlotsFromReports(result.Slots)

		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), a.fs)
		if err := w.Write(cmd.Summary, s); err != nil {
			a.log.Error("Failed to write summary: %s", err)
		} else {
			a.log.Info("Summary saved to %s", cmd.Summary)
		}
	}

	if result.Destination == export.ClipboardDestination {
		holdClipboard(ctx, clip, cmd.Hold, a.log)
	}
	return nil
}

// holdClipboard keeps the process alive while it is the only holder of the
// clipboard image.
func holdClipboard(ctx context.Context, clip ports.Clipboard, d time.Duration, log ports.Logger) {
	if d <= 0 {
		return
	}
	log.Debug("Serving the clipboard for up to %s", d)
	if !clip.Hold(ctx, d) {
		log.Warn("Stopped serving the clipboard; the meme stays pasteable only with a clipboard manager running")
	}
}

// buildRequest merges the configuration with the command-line overrides.
func (cmd *GenCmd) buildRequest(cfg config.Config) (orchestrator.Request, error) {
	req := orchestrator.DefaultRequest()
	req.Template = cmd.Template
	req.Inputs = cmd.Inputs
	req.TopText = cmd.TopText
	req.Quality = cmd.Quality
	req.Output = cmd.Output

	req.MaxFontSize = cfg.MaxFontSize
	if cmd.MaxSize != nil {
		req.MaxFontSize = *cmd.MaxSize
	}

	req.Watermark = cfg.Watermark
	req.WatermarkSizeFraction = cfg.WatermarkSizeFraction
	if cmd.Watermark != nil {
		req.Watermark = *cmd.Watermark
	}
	if cmd.NoWatermark {
		req.Watermark = ""
	}

	if cmd.Color != nil {
		c, err := config.ParseColor(*cmd.Color)
		if err != nil {
			return req, err
		}
		tc := composite.FromColor(c)
		req.TextColor = &tc
	}

	return req, nil
}
