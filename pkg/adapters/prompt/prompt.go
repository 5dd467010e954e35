// Package prompt asks questions on the terminal using survey.
package prompt

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/user/memecli/pkg/ports"
)

// ErrInterrupted is returned when the user aborts a prompt with Ctrl-C.
var ErrInterrupted = errors.New("prompt: interrupted")

// Prompter implements ports.Prompter.
type Prompter struct {
	opts []survey.AskOpt
}

// New creates a Prompter on the process's terminal.
func New() *Prompter {
	return &Prompter{}
}

// NewWithStdio creates a Prompter on the given streams.
func NewWithStdio(stdio terminal.Stdio) *Prompter {
	return &Prompter{opts: []survey.AskOpt{survey.WithStdio(stdio.In, stdio.Out, stdio.Err)}}
}

// Input asks a free-form question.
func (p *Prompter) Input(message, help string, validate func(string) error) (string, error) {
	opts := p.opts
	if validate != nil {
		opts = append(append([]survey.AskOpt(nil), opts...), survey.WithValidator(func(ans interface{}) error {
			s, ok := ans.(string)
			if !ok {
				return fmt.Errorf("unexpected answer type %T", ans)
			}
			return validate(s)
		}))
	}

	var answer string
	err := survey.AskOne(&survey.Input{Message: message, Help: help}, &answer, opts...)
	return answer, wrap(err)
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	answer := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer, p.opts...)
	return answer, wrap(err)
}

func wrap(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

// Ensure Prompter implements ports.Prompter
var _ ports.Prompter = (*Prompter)(nil)
