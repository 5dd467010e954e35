package ports

import "github.com/user/memecli/pkg/meme"

// TemplateStore looks templates up by name.
type TemplateStore interface {
	Load(name string) (*meme.Template, error)
}
