// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/memecli/pkg/ports"
)

// Sink saves debug output under a base directory:
//
//	request.json  resolved template and content
//	report.json   per-slot fit report
//	template.png  template base image
//	frames/frame-NNNN.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRequestJSON saves the resolved request.
func (s *Sink) SaveRequestJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "request.json"), data)
}

// SaveReportJSON saves the fit report.
func (s *Sink) SaveReportJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "report.json"), data)
}

// SaveTemplate saves the template's base image.
func (s *Sink) SaveTemplate(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "template.png"), data)
}

// SaveFrame saves a rendered frame.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index)), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
