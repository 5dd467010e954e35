package ports

import (
	"context"
	"time"
)

// Clipboard exchanges PNG images with the system clipboard.
type Clipboard interface {
	// ReadImage returns the PNG image currently on the clipboard.
	ReadImage() ([]byte, error)

	// WriteImage places a PNG image on the clipboard.
	WriteImage(png []byte) error

	// Hold keeps the last written image available until another program
	// takes the clipboard over, ctx ends or d passes. It reports whether the
	// clipboard was taken over. Platforms that keep clipboard data after the
	// writer exits return true at once.
	Hold(ctx context.Context, d time.Duration) bool
}
