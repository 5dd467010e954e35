package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/memecli/pkg/mocks"
	"github.com/user/memecli/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func pngRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return []byte{0x89, 0x50, 0x4E, 0x47}, nil // PNG header
		},
	}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveJSON(t *testing.T) {
	tests := []struct {
		name string
		save func(s *Sink, data []byte) error
		file string
	}{
		{"request", (*Sink).SaveRequestJSON, "request.json"},
		{"report", (*Sink).SaveReportJSON, "report.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			sink := New(testBaseDir, fs, &mocks.Renderer{})

			data := []byte(`{"slot": 0}`)
			if err := tt.save(sink, data); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			saved, ok := fs.GetFile(filepath.Join(testBaseDir, tt.file))
			if !ok {
				t.Fatalf("expected %s to be saved", tt.file)
			}
			if string(saved) != string(data) {
				t.Errorf("expected %q, got %q", data, saved)
			}
		})
	}
}

func TestSink_SaveTemplate(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())

	if err := sink.SaveTemplate(image.NewNRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	if _, ok := fs.GetFile(filepath.Join(testBaseDir, "template.png")); !ok {
		t.Error("expected template.png to be saved")
	}
}

func TestSink_SaveFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())

	for i := 0; i < 3; i++ {
		if err := sink.SaveFrame(i, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
			t.Fatalf("SaveFrame %d failed: %v", i, err)
		}
	}

	for _, name := range []string{"frame-0000.png", "frame-0001.png", "frame-0002.png"} {
		if _, ok := fs.GetFile(filepath.Join(testBaseDir, "frames", name)); !ok {
			t.Errorf("expected %s to be saved", name)
		}
	}
	if n := len(fs.GetAllFiles()); n != 3 {
		t.Errorf("expected 3 files, got %d", n)
	}
}

func TestSink_SaveFrameEncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	encodeErr := errors.New("boom")
	sink := New(testBaseDir, fs, &mocks.Renderer{
		EncodeImageFunc: func(image.Image, ports.ImageFormat, int) ([]byte, error) {
			return nil, encodeErr
		},
	})

	err := sink.SaveFrame(1, image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, encodeErr) {
		t.Errorf("expected wrapped encode error, got %v", err)
	}
}
