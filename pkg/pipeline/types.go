package pipeline

import (
	"github.com/user/memecli/pkg/meme"
)

// =============================================================================
// Resolve Stage Types
// =============================================================================

// ResolveInput names a template and the raw command-line inputs for its slots.
type ResolveInput struct {
	Template string
	// Inputs are plain text, "/meme NAME$$a$$b" or "/image PATH".
	Inputs []string
}

// ResolveResult holds the loaded template and parsed content items.
type ResolveResult struct {
	Template *meme.Template
	Items    []meme.Content
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput contains everything the renderer needs.
type RenderInput struct {
	Template *meme.Template
	Items    []meme.Content
	Options  meme.Options
}

// RenderResult contains the rendered meme.
type RenderResult struct {
	Meme *meme.Meme
}

// =============================================================================
// Caption Stage Types
// =============================================================================

// CaptionInput adds an optional top text strip above every frame.
type CaptionInput struct {
	Meme *meme.Meme
	// Text is the caption. Empty leaves the meme untouched.
	Text string
}

// CaptionResult contains the captioned meme.
type CaptionResult struct {
	Meme *meme.Meme
}

// =============================================================================
// Export Stage Types
// =============================================================================

// StdoutPath selects standard output as the export destination.
const StdoutPath = "-"

// ExportInput selects where the meme goes.
type ExportInput struct {
	Meme *meme.Meme
	// Output is a file path, StdoutPath, or empty for the clipboard.
	Output string
	// Quality applies to JPEG output (1-100, 0 = default).
	Quality int
}

// ExportResult describes the written output.
type ExportResult struct {
	Destination string
	Format      string
	Bytes       int
}
