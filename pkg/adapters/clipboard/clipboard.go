// Package clipboard exchanges images with the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.design/x/clipboard"

	"github.com/user/memecli/pkg/ports"
)

var (
	// ErrUnavailable is returned when no system clipboard can be reached.
	ErrUnavailable = errors.New("clipboard: unavailable")

	// ErrEmpty is returned when the clipboard holds no image.
	ErrEmpty = errors.New("clipboard: no image on the clipboard")
)

// Clipboard implements ports.Clipboard on top of golang.design/x/clipboard.
type Clipboard struct {
	once    sync.Once
	initErr error

	mu      sync.Mutex
	changed <-chan struct{}
}

// New creates a Clipboard. The system clipboard is initialized on first use.
func New() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) init() error {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			c.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	})
	return c.initErr
}

// ReadImage returns the PNG image on the clipboard.
func (c *Clipboard) ReadImage() ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// WriteImage places a PNG image on the clipboard.
func (c *Clipboard) WriteImage(png []byte) error {
	if err := c.init(); err != nil {
		return err
	}
	changed := clipboard.Write(clipboard.FmtImage, png)
	c.mu.Lock()
	c.changed = changed
	c.mu.Unlock()
	return nil
}

// Hold blocks while this process still serves the clipboard. Only X11
// hands the data over on request; elsewhere the system keeps a copy.
func (c *Clipboard) Hold(ctx context.Context, d time.Duration) bool {
	if !servesSelection(runtime.GOOS) {
		return true
	}
	c.mu.Lock()
	changed := c.changed
	c.mu.Unlock()
	return wait(ctx, changed, d)
}

func servesSelection(goos string) bool {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return true
	default:
		return false
	}
}

// wait reports whether changed fired before ctx ended or d passed. A nil
// channel means nothing was written.
func wait(ctx context.Context, changed <-chan struct{}, d time.Duration) bool {
	if changed == nil {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-changed:
		return true
	case <-ctx.Done():
		return false
	case <-timer.C:
		return false
	}
}

// Ensure Clipboard implements ports.Clipboard
var _ ports.Clipboard = (*Clipboard)(nil)
