// Package export implements the output stage: file, stdout or clipboard.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/image/draw"

	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/pipeline"
	"github.com/user/memecli/pkg/ports"
)

var (
	// ErrUnsupported is returned for outputs that cannot hold the meme,
	// e.g. an animation sent to the clipboard or to a PNG file.
	ErrUnsupported = errors.New("export: unsupported output")

	// ErrTerminal is returned when binary output would go to a terminal.
	ErrTerminal = errors.New("export: refusing to write image data to a terminal")

	// ErrNoMeme is returned when there is nothing to export.
	ErrNoMeme = errors.New("export: no meme")
)

// ClipboardDestination names the clipboard in results and logs.
const ClipboardDestination = "clipboard"

// gifPalette reserves index 0 for transparency. Plan9 starts with black and
// ends with white, so the entry dropped to make room is the one before white.
var gifPalette = append(append(color.Palette{color.Transparent}, palette.Plan9[:254]...), palette.Plan9[255])

// Stage writes the meme to its destination.
type Stage struct {
	fs         ports.FileSystem
	renderer   ports.Renderer
	clipboard  ports.Clipboard
	stdout     io.Writer
	isTerminal bool
	logger     ports.Logger
}

// NewStage creates a new export stage. stdout is checked once for a terminal.
func NewStage(fs ports.FileSystem, renderer ports.Renderer, clipboard ports.Clipboard, stdout io.Writer, logger ports.Logger) *Stage {
	return &Stage{
		fs:         fs,
		renderer:   renderer,
		clipboard:  clipboard,
		stdout:     stdout,
		isTerminal: terminal(stdout),
		logger:     logger.WithComponent("export"),
	}
}

func terminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute encodes the meme and writes it out.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	result := pipeline.ExportResult{}
	m := input.Meme
	if m == nil || m.Bounds().Empty() {
		return result, ErrNoMeme
	}
	animated := m.Animation != nil

	switch input.Output {
	case "":
		if animated {
			return result, fmt.Errorf("%w: animated memes cannot be copied to the clipboard, use -o", ErrUnsupported)
		}
		data, err := s.renderer.EncodeImage(m.Image, ports.FormatPNG, 0)
		if err != nil {
			return result, err
		}
		if err := s.clipboard.WriteImage(data); err != nil {
			return result, fmt.Errorf("write clipboard: %w", err)
		}
		result = pipeline.ExportResult{Destination: ClipboardDestination, Format: ports.FormatPNG.String(), Bytes: len(data)}

	case pipeline.StdoutPath:
		if s.isTerminal {
			return result, ErrTerminal
		}
		format := ports.FormatPNG
		if animated {
			format = ports.FormatGIF
		}
		data, err := s.encode(ctx, m, format, input.Quality)
		if err != nil {
			return result, err
		}
		if _, err := s.stdout.Write(data); err != nil {
			return result, fmt.Errorf("write stdout: %w", err)
		}
		result = pipeline.ExportResult{Destination: "stdout", Format: format.String(), Bytes: len(data)}

	default:
		format, err := FormatFor(input.Output)
		if err != nil {
			return result, err
		}
		if animated && format != ports.FormatGIF {
			return result, fmt.Errorf("%w: animated memes need a .gif output, got %s", ErrUnsupported, input.Output)
		}
		data, err := s.encode(ctx, m, format, input.Quality)
		if err != nil {
			return result, err
		}
		if dir := filepath.Dir(input.Output); dir != "." {
			if err := s.fs.MkdirAll(dir); err != nil {
				return result, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := s.fs.WriteFile(input.Output, data); err != nil {
			return result, fmt.Errorf("write %s: %w", input.Output, err)
		}
		result = pipeline.ExportResult{Destination: input.Output, Format: format.String(), Bytes: len(data)}
	}

	s.logger.Info("Exported %s to %s (%d bytes)", result.Format, result.Destination, result.Bytes)
	return result, nil
}

// FormatFor picks the image format from a file extension.
func FormatFor(path string) (ports.ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return ports.FormatPNG, nil
	case ".jpg", ".jpeg":
		return ports.FormatJPEG, nil
	case ".gif":
		return ports.FormatGIF, nil
	default:
		return 0, fmt.Errorf("%w: unknown image extension in %q (use .png, .jpg or .gif)", ErrUnsupported, path)
	}
}

func (s *Stage) encode(ctx context.Context, m *meme.Meme, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.Animation == nil {
		data, err := s.renderer.EncodeImage(m.Image, format, quality)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		return data, nil
	}
	return encodeGIF(ctx, m.Animation)
}

// encodeGIF quantizes every frame to a shared palette with Floyd-Steinberg dithering.
func encodeGIF(ctx context.Context, a *meme.Animation) ([]byte, error) {
	g := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(a.Frames)),
		Delay:     make([]int, 0, len(a.Frames)),
		Disposal:  make([]byte, 0, len(a.Frames)),
		LoopCount: a.LoopCount,
	}

	for i, frame := range a.Frames {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p := image.NewPaletted(frame.Bounds(), gifPalette)
		draw.FloydSteinberg.Draw(p, frame.Bounds(), frame, frame.Bounds().Min)
		g.Image = append(g.Image, p)

		delay := 0
		if i < len(a.Delays) {
			delay = a.Delays[i]
		}
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}
