package mocks

import (
	"fmt"

	"github.com/user/memecli/pkg/meme"
	"github.com/user/memecli/pkg/ports"
)

// TemplateStore serves templates from a map.
type TemplateStore struct {
	Templates map[string]*meme.Template
	Err       error
}

func (m *TemplateStore) Load(name string) (*meme.Template, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	return t, nil
}

var _ ports.TemplateStore = (*TemplateStore)(nil)
