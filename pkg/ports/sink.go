package ports

import (
	"image"
)

// DebugSink receives intermediate results of a generation for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRequestJSON saves the resolved template and content description.
	SaveRequestJSON(data []byte) error

	// SaveReportJSON saves the per-slot fit report.
	SaveReportJSON(data []byte) error

	// SaveTemplate saves the template's base image (first frame when animated).
	SaveTemplate(img image.Image) error

	// SaveFrame saves a rendered frame before export.
	SaveFrame(index int, img image.Image) error
}
