// Package resolve implements the template lookup and content parsing stage.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/pipeline"
	"github.com/user/memecli/pkg/ports"
)

// Input prefixes recognised in slot inputs.
const (
	MemePrefix  = "/meme "
	ImagePrefix = "/image "

	// NestedSeparator splits the template name and the texts of a nested meme.
	NestedSeparator = "$$"
)

// ErrInvalidInput is returned for malformed slot inputs.
var ErrInvalidInput = errors.New("resolve: invalid input")

// Stage loads the template and turns raw inputs into content items.
type Stage struct {
	templates ports.TemplateStore
	fs        ports.FileSystem
	renderer  ports.Renderer
	sink      ports.DebugSink
	logger    ports.Logger
}

// NewStage creates a new resolve stage.
func NewStage(templates ports.TemplateStore, fs ports.FileSystem, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		templates: templates,
		fs:        fs,
		renderer:  renderer,
		sink:      sink,
		logger:    logger.WithComponent("resolve"),
	}
}

// Execute loads the named template and parses each input.
func (s *Stage) Execute(ctx context.Context, input pipeline.ResolveInput) (pipeline.ResolveResult, error) {
	result := pipeline.ResolveResult{}

	tmpl, err := s.templates.Load(input.Template)
	if err != nil {
		return result, err
	}
	s.logger.Info("Template found: %s (%d slots)", tmpl.Name, len(tmpl.Fields))
	if len(input.Inputs) > len(tmpl.Fields) {
		s.logger.Warn("%d inputs given but template %s has %d slots; extra inputs are ignored",
			len(input.Inputs), tmpl.Name, len(tmpl.Fields))
	}

	items := make([]meme.Content, 0, len(input.Inputs))
	for i, raw := range input.Inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		item, err := s.parse(raw)
		if err != nil {
			return result, fmt.Errorf("input %d: %w", i+1, err)
		}
		items = append(items, item)
	}

	if s.sink.Enabled() {
		s.sink.SaveTemplate(tmpl.FirstFrame())
	}

	result.Template = tmpl
	result.Items = items
	return result, nil
}

// parse turns one raw input into a content item.
func (s *Stage) parse(raw string) (meme.Content, error) {
	switch {
	case strings.HasPrefix(raw, MemePrefix):
		return s.parseNested(strings.TrimPrefix(raw, MemePrefix))
	case strings.HasPrefix(raw, ImagePrefix):
		return s.parsePicture(strings.TrimSpace(strings.TrimPrefix(raw, ImagePrefix)))
	default:
		return meme.Text(raw), nil
	}
}

func (s *Stage) parseNested(arg string) (meme.Content, error) {
	parts := strings.Split(arg, NestedSeparator)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("%w: nested meme needs a template name", ErrInvalidInput)
	}

	tmpl, err := s.templates.Load(name)
	if err != nil {
		return nil, fmt.Errorf("nested meme: %w", err)
	}

	items := make([]meme.Content, 0, len(parts)-1)
	for _, text := range parts[1:] {
		items = append(items, meme.Text(text))
	}
	s.logger.Debug("Nested template %s with %d texts", name, len(items))
	return meme.Nested{Template: tmpl, Items: items}, nil
}

func (s *Stage) parsePicture(path string) (meme.Content, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image input needs a path", ErrInvalidInput)
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, err := s.renderer.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	s.logger.Debug("Picture %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return meme.Picture{Image: img}, nil
}
