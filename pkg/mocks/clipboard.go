package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/user/memecli/pkg/ports"
)

// Clipboard is an in-memory ports.Clipboard.
type Clipboard struct {
	Image []byte

	ReadImageFunc  func() ([]byte, error)
	WriteImageFunc func(png []byte) error
	HoldFunc       func(ctx context.Context, d time.Duration) bool
}

func (m *Clipboard) ReadImage() ([]byte, error) {
	if m.ReadImageFunc != nil {
		return m.ReadImageFunc()
	}
	if m.Image == nil {
		return nil, errors.New("clipboard is empty")
	}
	return m.Image, nil
}

func (m *Clipboard) WriteImage(png []byte) error {
	if m.WriteImageFunc != nil {
		return m.WriteImageFunc(png)
	}
	m.Image = png
	return nil
}

func (m *Clipboard) Hold(ctx context.Context, d time.Duration) bool {
	if m.HoldFunc != nil {
		return m.HoldFunc(ctx, d)
	}
	return true
}

var _ ports.Clipboard = (*Clipboard)(nil)
