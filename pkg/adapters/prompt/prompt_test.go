package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestWrap(t *testing.T) {
	other := errors.New("closed")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"interrupt", terminal.InterruptErr, ErrInterrupted},
		{"wrapped interrupt", fmt.Errorf("ask: %w", terminal.InterruptErr), ErrInterrupted},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.in); !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewWithStdio(t *testing.T) {
	p := NewWithStdio(terminal.Stdio{})
	if len(p.opts) != 1 {
		t.Errorf("opts = %d, want 1", len(p.opts))
	}
	if len(New().opts) != 0 {
		t.Error("New should use the default terminal")
	}
}
