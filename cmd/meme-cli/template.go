package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/mattn/go-isatty"

	"github.com/user/memecli/pkg/adapters/clipboard"
	"github.com/user/memecli/pkg/adapters/prompt"
	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/config"
	"github.com/user/memecli/pkg/library"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/ports"
	"github.com/user/memecli/pkg/stages/export"
)

var errNoCoordinates = errors.New("no slot coordinates given and stdin is not a terminal")

// MakeTemplateCmd defines the make-template subcommand.
type MakeTemplateCmd struct {
	Name        string   `arg:"" help:"The template name."`
	Coordinates []string `arg:"" optional:"" help:"Slot coordinates as LEFT-TOP-RIGHT-BOTTOM. Prompted for when omitted."`

	Input string `short:"i" type:"path" predictor:"file" help:"Template image. Default: the clipboard."`
	Color string `default:"#000000" help:"Text color (hex)."`
}

// Run executes the make-template command.
func (cmd *MakeTemplateCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}

	img, err := cmd.readImage(a)
	if err != nil {
		return err
	}
	a.log.Info("Template image: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())

	c, err := config.ParseColor(cmd.Color)
	if err != nil {
		return err
	}
	textColor := [4]float32(composite.FromColor(c))

	fields, err := cmd.fields(img.Bounds(), prompt.New())
	if err != nil {
		return err
	}

	dir, err := a.library.Save(cmd.Name, img, library.TemplateConfig{Color: &textColor, Text: fields})
	if err != nil {
		return err
	}
	a.log.Info("Template saved to %s", dir)
	return nil
}

func (cmd *MakeTemplateCmd) readImage(a *app) (image.Image, error) {
	var data []byte
	var err error
	if cmd.Input != "" {
		data, err = a.fs.ReadFile(cmd.Input)
	} else {
		data, err = clipboard.New().ReadImage()
	}
	if err != nil {
		return nil, fmt.Errorf("read template image: %w", err)
	}
	img, err := a.renderer.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// fields parses the coordinate arguments, or asks for them interactively.
func (cmd *MakeTemplateCmd) fields(bounds image.Rectangle, p ports.Prompter) ([]library.Field, error) {
	if len(cmd.Coordinates) > 0 {
		fields := make([]library.Field, 0, len(cmd.Coordinates))
		for _, literal := range cmd.Coordinates {
			f, err := library.ParseField(literal)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return fields, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, errNoCoordinates
	}
	return askFields(bounds, p)
}

// askFields prompts for slots until an empty answer.
func askFields(bounds image.Rectangle, p ports.Prompter) ([]library.Field, error) {
	var fields []library.Field
	validate := func(answer string) error {
		if answer == "" {
			return nil
		}
		f, err := library.ParseField(answer)
		if err != nil {
			return err
		}
		if !f.Slot().Rect().In(bounds) {
			return fmt.Errorf("slot %s lies outside the %dx%d image", f, bounds.Dx(), bounds.Dy())
		}
		return nil
	}

	for {
		answer, err := p.Input(
			fmt.Sprintf("Slot %d (LEFT-TOP-RIGHT-BOTTOM, empty to finish):", len(fields)+1),
			fmt.Sprintf("Pixel coordinates inside the %dx%d image, e.g. 10-10-300-120.", bounds.Dx(), bounds.Dy()),
			validate,
		)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			break
		}
		f, err := library.ParseField(answer)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	ok, err := p.Confirm(fmt.Sprintf("Save template with %d slots?", len(fields)), true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, prompt.ErrInterrupted
	}
	return fields, nil
}

// PreviewCmd defines the preview subcommand.
type PreviewCmd struct {
	Template string `arg:"" predictor:"template" help:"The template to preview."`
	Output   string `short:"o" required:"" predictor:"file" help:"Output image path (.png, .jpg, .gif)."`
}

// Run executes the preview command.
func (cmd *PreviewCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	tmpl, err := a.library.Load(cmd.Template)
	if err != nil {
		return err
	}
	format, err := export.FormatFor(cmd.Output)
	if err != nil {
		return err
	}

	img := drawPreview(a.renderer, tmpl.FirstFrame(), tmpl.Fields)
	data, err := a.renderer.EncodeImage(img, format, 0)
	if err != nil {
		return err
	}
	if err := a.fs.WriteFile(cmd.Output, data); err != nil {
		return fmt.Errorf("write %s: %w", cmd.Output, err)
	}
	a.log.Info("Preview of %s with %d slots saved to %s", tmpl.Name, len(tmpl.Fields), cmd.Output)
	return nil
}

var previewColor = color.NRGBA{R: 230, G: 30, B: 60, A: 255}

// drawPreview outlines each slot and labels it with its 1-based number.
func drawPreview(r ports.Renderer, base image.Image, slots []meme.Slot) image.Image {
	b := base.Bounds()
	canvas := r.CreateCanvas(b.Dx(), b.Dy(), color.Transparent)
	canvas.DrawImage(base, 0, 0)

	for i, s := range slots {
		size := s.Size()
		canvas.DrawRectStroke(s.Min.X, s.Min.Y, size.X, size.Y, previewColor, 2)
		fontSize := math.Max(12, float64(min(size.X, size.Y))/3)
		canvas.DrawText(strconv.Itoa(i+1), s.Min.X+size.X/2, s.Min.Y+size.Y/2, ports.TextStyle{
			FontSize: fontSize,
			Color:    previewColor,
			Align:    ports.AlignCenter,
		})
	}
	return canvas.ToImage()
}
