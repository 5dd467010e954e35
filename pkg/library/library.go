// Package library finds, loads and stores meme templates in the configured
// sources. A template is a directory holding config.json and either
// image.png or animated.gif.
package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/user/memecli/pkg/config"
	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/ports"
)

// File names inside a template directory.
const (
	ConfigFile   = "config.json"
	ImageFile    = "image.png"
	AnimatedFile = "animated.gif"
)

var (
	ErrTemplateNotFound      = errors.New("library: template not found")
	ErrAssetNotFound         = errors.New("library: template image not found")
	ErrInvalidTemplateConfig = errors.New("library: invalid template config")
	ErrInvalidField          = errors.New("library: invalid field literal")
	ErrNoLocalSource         = errors.New("library: no local source configured")
	ErrTemplateExists        = errors.New("library: template already exists")
)

// Library gives access to the templates of all configured sources. Sources
// are searched in configuration order; the first match wins.
type Library struct {
	cfg      config.Config
	sources  []config.Source
	cacheDir string
	fs       ports.FileSystem
	renderer ports.Renderer
	syncer   ports.SourceSyncer
	logger   ports.Logger
}

// New creates a Library over cfg's sources.
func New(cfg config.Config, fs ports.FileSystem, renderer ports.Renderer, syncer ports.SourceSyncer, logger ports.Logger) *Library {
	return &Library{
		cfg:      cfg,
		sources:  cfg.Sources,
		cacheDir: cfg.CacheDir,
		fs:       fs,
		renderer: renderer,
		syncer:   syncer,
		logger:   logger.WithComponent("library"),
	}
}

// Sources returns the configured sources.
func (l *Library) Sources() []config.Source {
	return l.sources
}

// List returns the template names of all sources in search order. A name
// shadowed by an earlier source is listed once.
func (l *Library) List() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, s := range l.sources {
		dir := s.Dir(l.cacheDir)
		entries, err := l.fs.ListDirs(dir)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", dir, err)
		}
		for _, name := range entries {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// Find returns the directory of the named template.
func (l *Library) Find(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	for _, s := range l.sources {
		dir := filepath.Join(s.Dir(l.cacheDir), name)
		ok, err := l.fs.Exists(dir)
		if err != nil {
			return "", fmt.Errorf("look up %s: %w", dir, err)
		}
		if ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// Load reads the named template. image.png takes precedence over animated.gif.
func (l *Library) Load(name string) (*meme.Template, error) {
	dir, err := l.Find(name)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Loading template %s from %s", name, dir)

	cfg, err := l.readConfig(name, dir)
	if err != nil {
		return nil, err
	}
	t := &meme.Template{
		Name:   name,
		Fields: cfg.Slots(),
		Color:  cfg.TextColor(),
	}

	if data, ok, err := l.readOptional(filepath.Join(dir, ImageFile)); err != nil {
		return nil, err
	} else if ok {
		img, err := l.renderer.DecodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("template %s: %s: %w", name, ImageFile, err)
		}
		t.Image = imaging.Clone(img)
		return t, nil
	}

	if data, ok, err := l.readOptional(filepath.Join(dir, AnimatedFile)); err != nil {
		return nil, err
	} else if ok {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("template %s: %s: %w", name, AnimatedFile, err)
		}
		if len(g.Image) == 0 {
			return nil, fmt.Errorf("%w: template %s: %s has no frames", ErrAssetNotFound, name, AnimatedFile)
		}
		t.Animation = coalesce(g)
		return t, nil
	}

	return nil, fmt.Errorf("%w: template %s has neither %s nor %s", ErrAssetNotFound, name, ImageFile, AnimatedFile)
}

func (l *Library) readConfig(name, dir string) (TemplateConfig, error) {
	data, ok, err := l.readOptional(filepath.Join(dir, ConfigFile))
	if err != nil {
		return TemplateConfig{}, err
	}
	if !ok {
		return TemplateConfig{}, fmt.Errorf("%w: template %s has no %s", ErrInvalidTemplateConfig, name, ConfigFile)
	}
	cfg, err := ParseTemplateConfig(data)
	if err != nil {
		return TemplateConfig{}, fmt.Errorf("template %s: %w", name, err)
	}
	return cfg, nil
}

func (l *Library) readOptional(path string) ([]byte, bool, error) {
	ok, err := l.fs.Exists(path)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

// Save writes a new template into the first local source and returns its directory.
func (l *Library) Save(name string, img image.Image, cfg TemplateConfig) (string, error) {
	root, ok := l.cfg.FirstLocal()
	if !ok {
		return "", ErrNoLocalSource
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	for i, f := range cfg.Text {
		if err := f.validate(); err != nil {
			return "", fmt.Errorf("%w: field %d: %v", ErrInvalidTemplateConfig, i, err)
		}
	}

	dir := filepath.Join(root, name)
	exists, err := l.fs.Exists(dir)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", dir, err)
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrTemplateExists, dir)
	}

	png, err := l.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode template image: %w", err)
	}
	cfgData, err := cfg.Marshal()
	if err != nil {
		return "", fmt.Errorf("encode template config: %w", err)
	}

	if err := l.fs.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	imagePath := filepath.Join(dir, ImageFile)
	if err := l.fs.WriteFile(imagePath, png); err != nil {
		l.discard(dir)
		return "", fmt.Errorf("write %s: %w", ImageFile, err)
	}
	if err := l.fs.WriteFile(filepath.Join(dir, ConfigFile), cfgData); err != nil {
		l.discard(imagePath, dir)
		return "", fmt.Errorf("write %s: %w", ConfigFile, err)
	}
	l.logger.Debug("Saved template %s to %s", name, dir)
	return dir, nil
}

// discard removes a partly written template so the name stays free.
func (l *Library) discard(paths ...string) {
	for _, p := range paths {
		if err := l.fs.Remove(p); err != nil {
			l.logger.Warn("Failed to remove %s: %s", p, err)
		}
	}
}

// Update syncs every git source: clone when its directory is empty, fast-forward otherwise.
func (l *Library) Update(ctx context.Context) error {
	for _, s := range l.sources {
		if s.Git == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := s.Dir(l.cacheDir)
		l.logger.Info("Syncing meme repository %s (%s)", s.Git.Alias, s.Git.URL)
		res, err := l.syncer.Sync(ctx, s.Git.URL, dir)
		if err != nil {
			l.logger.Error("Failed to sync %s: %s", s.Git.Alias, err)
			return fmt.Errorf("source %s: %w", s.Git.Alias, err)
		}

		switch {
		case res.Cloned:
			l.logger.Info("Cloned %s at %s", s.Git.Alias, shortHash(res.Head))
		case res.UpToDate:
			l.logger.Info("%s is up to date", s.Git.Alias)
		default:
			l.logger.Info("Updated %s to %s", s.Git.Alias, shortHash(res.Head))
		}
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

// Ensure Library implements ports.TemplateStore
var _ ports.TemplateStore = (*Library)(nil)
