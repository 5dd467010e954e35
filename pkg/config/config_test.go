package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `{
  "sources": [
    {"LocalPath": "/home/me/memes"},
    {"GitUrl": {"url": "https://example.com/memes.git", "alias": "friends"}}
  ],
  "watermark": "",
  "watermark_size_fraction": 20
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSources := []Source{
		{Local: "/home/me/memes"},
		{Git: &GitSource{URL: "https://example.com/memes.git", Alias: "friends"}},
	}
	if diff := cmp.Diff(wantSources, cfg.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
	if cfg.Watermark != "" {
		t.Errorf("explicit empty watermark should be kept, got %q", cfg.Watermark)
	}
	if cfg.WatermarkSizeFraction != 20 {
		t.Errorf("expected fraction 20, got %v", cfg.WatermarkSizeFraction)
	}
	if cfg.MaxFontSize != DefaultMaxFontSize {
		t.Errorf("expected default max font size, got %v", cfg.MaxFontSize)
	}
}

func TestParse_YAML(t *testing.T) {
	data := `
sources:
  - LocalPath: ./templates
watermark: hello
max_font_size: 120
workers: 3
cache_dir: /tmp/memes
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		Sources:               []Source{{Local: "./templates"}},
		Watermark:             "hello",
		WatermarkSizeFraction: DefaultWatermarkSizeFraction,
		MaxFontSize:           120,
		Workers:               3,
		CacheDir:              "/tmp/memes",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"broken syntax", `{"sources": [`},
		{"wrong type", `{"watermark_size_fraction": "big"}`},
		{"empty source", `{"sources": [{}]}`},
		{"both kinds", `{"sources": [{"LocalPath": "/a", "GitUrl": {"url": "u", "alias": "a"}}]}`},
		{"git without alias", `{"sources": [{"GitUrl": {"url": "u"}}]}`},
		{"negative fraction", `{"watermark_size_fraction": -1}`},
		{"zero fraction", `{"watermark_size_fraction": 0}`},
		{"zero max font size", `{"max_font_size": 0}`},
		{"negative workers", `{"workers": -2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_InvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"sources": 3}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSource_Dir(t *testing.T) {
	git := Source{Git: &GitSource{URL: "u", Alias: "default"}}
	local := Source{Local: "/srv/memes"}

	if got := git.Dir("/cache/memecli"); got != filepath.Join("/cache/memecli", "default") {
		t.Errorf("git dir = %q", got)
	}
	if got := local.Dir("/cache/memecli"); got != "/srv/memes" {
		t.Errorf("local dir = %q", got)
	}
	if git.IsLocal() || !local.IsLocal() {
		t.Error("IsLocal mismatch")
	}
}

func TestConfig_FirstLocal(t *testing.T) {
	cfg := Defaults()
	if _, ok := cfg.FirstLocal(); ok {
		t.Error("defaults have no local source")
	}

	cfg.Sources = append(cfg.Sources, Source{Local: "/a"}, Source{Local: "/b"})
	if dir, ok := cfg.FirstLocal(); !ok || dir != "/a" {
		t.Errorf("FirstLocal = %q, %v", dir, ok)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"000000", color.NRGBA{0, 0, 0, 255}, false},
		{"#FF8000", color.NRGBA{255, 128, 0, 255}, false},
		{"#ff000080", color.NRGBA{255, 0, 0, 128}, false},
		{"#f00", color.NRGBA{255, 0, 0, 255}, false},
		{"", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
