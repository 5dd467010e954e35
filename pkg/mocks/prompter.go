package mocks

import (
	"fmt"

	"github.com/user/memecli/pkg/ports"
)

// Prompter replays scripted answers.
type Prompter struct {
	Inputs   []string
	Confirms []bool

	Asked []string
}

func (m *Prompter) Input(message, help string, validate func(string) error) (string, error) {
	m.Asked = append(m.Asked, message)
	if len(m.Inputs) == 0 {
		return "", fmt.Errorf("no scripted answer for %q", message)
	}
	answer := m.Inputs[0]
	m.Inputs = m.Inputs[1:]
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (m *Prompter) Confirm(message string, def bool) (bool, error) {
	m.Asked = append(m.Asked, message)
	if len(m.Confirms) == 0 {
		return def, nil
	}
	answer := m.Confirms[0]
	m.Confirms = m.Confirms[1:]
	return answer, nil
}

var _ ports.Prompter = (*Prompter)(nil)
