// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the user config directory.
const FileName = "memecli.conf.json"

const (
	DefaultGitURL                = "https://github.com/TheRawMeatball/memeinator-memesrc.git"
	DefaultGitAlias              = "default"
	DefaultWatermark             = "Made with meme-cli"
	DefaultWatermarkSizeFraction = 30.0
	DefaultMaxFontSize           = 600.0
)

var (
	// ErrInvalidConfig is returned when the configuration file exists but cannot be used.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidColor is returned by ParseColor.
	ErrInvalidColor = errors.New("config: invalid color")
)

// Source is a template source. Exactly one of Git and Local is set.
//
// The file format keeps the historical tagged form:
//
//	{"GitUrl": {"url": "...", "alias": "..."}}
//	{"LocalPath": "/path/to/templates"}
type Source struct {
	Git   *GitSource `yaml:"GitUrl,omitempty"`
	Local string     `yaml:"LocalPath,omitempty"`
}

// GitSource is a git repository cloned into the cache directory under Alias.
type GitSource struct {
	URL   string `yaml:"url"`
	Alias string `yaml:"alias"`
}

// IsLocal reports whether the source is a local directory.
func (s Source) IsLocal() bool {
	return s.Git == nil
}

// Dir returns the directory holding the source's templates.
func (s Source) Dir(cacheDir string) string {
	if s.Git != nil {
		return filepath.Join(cacheDir, s.Git.Alias)
	}
	return s.Local
}

// String describes the source for listings.
func (s Source) String() string {
	if s.Git != nil {
		return fmt.Sprintf("Git source %s (URL: %s)", s.Git.Alias, s.Git.URL)
	}
	return fmt.Sprintf("Local source @ %s", s.Local)
}

// Config represents the full configuration for meme-cli.
type Config struct {
	Sources []Source

	// Watermark is drawn on generated memes. Empty disables it.
	Watermark             string
	WatermarkSizeFraction float64

	MaxFontSize float64

	// Font is an optional TrueType/OpenType file replacing the embedded font.
	Font string

	// Workers bounds frame painting goroutines. Zero means one per CPU.
	Workers int

	// CacheDir holds cloned git sources.
	CacheDir string
}

// fileConfig mirrors the file. Pointers distinguish absent keys from zero values.
type fileConfig struct {
	Sources               []Source `yaml:"sources"`
	Watermark             *string  `yaml:"watermark"`
	WatermarkSizeFraction *float64 `yaml:"watermark_size_fraction"`
	MaxFontSize           *float64 `yaml:"max_font_size"`
	Font                  string   `yaml:"font"`
	Workers               int      `yaml:"workers"`
	CacheDir              string   `yaml:"cache_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Sources: []Source{
			{Git: &GitSource{URL: DefaultGitURL, Alias: DefaultGitAlias}},
		},
		Watermark:             DefaultWatermark,
		WatermarkSizeFraction: DefaultWatermarkSizeFraction,
		MaxFontSize:           DefaultMaxFontSize,
		CacheDir:              defaultCacheDir(),
	}
}

// DefaultPath returns the configuration file path in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "memecli")
}

// Load reads the configuration at path, or at DefaultPath when path is empty.
// A missing file yields Defaults.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Defaults(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration data. JSON and YAML are both accepted.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Defaults()
	if fc.Sources != nil {
		cfg.Sources = fc.Sources
	}
	if fc.Watermark != nil {
		cfg.Watermark = *fc.Watermark
	}
	if fc.WatermarkSizeFraction != nil {
		cfg.WatermarkSizeFraction = *fc.WatermarkSizeFraction
	}
	if fc.MaxFontSize != nil {
		cfg.MaxFontSize = *fc.MaxFontSize
	}
	if fc.Font != "" {
		cfg.Font = fc.Font
	}
	if fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	cfg.Workers = fc.Workers

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and source definitions.
func (c Config) Validate() error {
	for i, s := range c.Sources {
		switch {
		case s.Git != nil && s.Local != "":
			return fmt.Errorf("%w: source %d is both GitUrl and LocalPath", ErrInvalidConfig, i)
		case s.Git == nil && s.Local == "":
			return fmt.Errorf("%w: source %d is empty", ErrInvalidConfig, i)
		case s.Git != nil && (s.Git.URL == "" || s.Git.Alias == ""):
			return fmt.Errorf("%w: git source %d needs url and alias", ErrInvalidConfig, i)
		}
	}
	if c.WatermarkSizeFraction <= 0 {
		return fmt.Errorf("%w: watermark_size_fraction must be positive (use an empty watermark to disable it)", ErrInvalidConfig)
	}
	if c.MaxFontSize <= 0 {
		return fmt.Errorf("%w: max_font_size must be positive", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// FirstLocal returns the first local source directory.
func (c Config) FirstLocal() (string, bool) {
	for _, s := range c.Sources {
		if s.IsLocal() {
			return s.Local, true
		}
	}
	return "", false
}

// Dirs returns the template directory of every source, in order.
func (c Config) Dirs() []string {
	dirs := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		dirs = append(dirs, s.Dir(c.CacheDir))
	}
	return dirs
}

// ParseColor parses a hex color string (#rgb, #rrggbb or #rrggbbaa).
func ParseColor(hex string) (color.NRGBA, error) {
	s := hex
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}

	digits := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		v, ok := hexValue(s[i])
		if !ok {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
		digits[i] = v
	}

	switch len(digits) {
	case 3:
		return color.NRGBA{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 255}, nil
	case 6:
		return color.NRGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: 255}, nil
	case 8:
		return color.NRGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: digits[6]<<4 | digits[7]}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
