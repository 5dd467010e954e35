// Package main provides the CLI entry point for meme-cli.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/memecli/pkg/adapters/filesink"
	"github.com/user/memecli/pkg/adapters/ggrenderer"
	"github.com/user/memecli/pkg/adapters/gitsync"
	"github.com/user/memecli/pkg/adapters/logger"
	"github.com/user/memecli/pkg/adapters/nullsink"
	"github.com/user/memecli/pkg/adapters/osfilesystem"
	"github.com/user/memecli/pkg/config"
	"github.com/user/memecli/pkg/glyph"
	"github.com/user/memecli/pkg/library"
	"github.com/user/memecli/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Globals

	Gen           GenCmd           `cmd:"" help:"Generate a meme from a template."`
	MakeTemplate  MakeTemplateCmd  `cmd:"" name:"make-template" help:"Create a template from an image and save it."`
	Preview       PreviewCmd       `cmd:"" help:"Draw the numbered slots of a template to an image."`
	ListSources   ListSourcesCmd   `cmd:"" name:"list-sources" help:"List all template sources."`
	ListTemplates ListTemplatesCmd `cmd:"" name:"list-templates" help:"List all template names."`
	UpdateSources UpdateSourcesCmd `cmd:"" name:"update-sources" help:"Fetch new templates from the configured git sources."`
	Completion    CompletionCmd    `cmd:"" help:"Print shell code that enables tab completion."`
	Version       VersionCmd       `cmd:"" help:"Show version information."`
}

// Globals are flags shared by every subcommand.
type Globals struct {
	Config string `short:"c" type:"path" help:"Configuration file (default: memecli.conf.json in the user config directory)."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

var version = "dev"

func main() {
	cli := CLI{}

	parser := kong.Must(&cli,
		kong.Name("meme-cli"),
		kong.Description(l10n.T("A way to easily generate memes from preconfigured templates")),
		kong.UsageOnError(),
	)
	registerCompletion(parser)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// app holds the adapters shared by the commands.
type app struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	font     *glyph.Font
	renderer ports.Renderer
	library  *library.Library
}

// newApp loads the configuration and wires the adapters.
func newApp(g *Globals) (*app, error) {
	var log ports.Logger
	if g.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(g.LogLevel))
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	fs := osfilesystem.New()
	font, err := loadFont(fs, cfg.Font)
	if err != nil {
		return nil, err
	}
	renderer := ggrenderer.New(font)
	lib := library.New(cfg, fs, renderer, gitsync.New(fs, progressWriter(g)), log)

	return &app{
		cfg:      cfg,
		log:      log,
		fs:       fs,
		font:     font,
		renderer: renderer,
		library:  lib,
	}, nil
}

func loadFont(fs ports.FileSystem, path string) (*glyph.Font, error) {
	if path == "" {
		return glyph.Default()
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return glyph.Parse(path, data)
}

// progressWriter receives git transfer progress; nil when quiet.
func progressWriter(g *Globals) io.Writer {
	if g.Quiet {
		return nil
	}
	return os.Stderr
}

// sink returns the debug sink selected by the flags.
func (a *app) sink(g *Globals) (ports.DebugSink, error) {
	if !g.Debug {
		return nullsink.New(), nil
	}
	if err := a.fs.MkdirAll(g.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(g.DebugDir, a.fs, a.renderer), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("meme-cli version %s", version))
	return nil
}
