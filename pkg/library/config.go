package library

import (
	"encoding/json"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/user/memecli/pkg/composite"
	"github.com/user/memecli/pkg/meme"
)

// TemplateConfig is the config.json stored next to a template image.
type TemplateConfig struct {
	// Color is the straight-alpha RGBA text colour in [0, 1]. Nil means black.
	Color *[4]float32 `json:"color"`
	Text  []Field     `json:"text"`
}

// Field is a text slot, stored as [x, y] pairs.
type Field struct {
	Min [2]int `json:"min"`
	Max [2]int `json:"max"`
}

// ParseTemplateConfig decodes and validates config.json data.
func ParseTemplateConfig(data []byte) (TemplateConfig, error) {
	var cfg TemplateConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return TemplateConfig{}, fmt.Errorf("%w: %v", ErrInvalidTemplateConfig, err)
	}
	for i, f := range cfg.Text {
		if err := f.validate(); err != nil {
			return TemplateConfig{}, fmt.Errorf("%w: field %d: %v", ErrInvalidTemplateConfig, i, err)
		}
	}
	return cfg, nil
}

// Marshal encodes the config as indented JSON.
func (c TemplateConfig) Marshal() ([]byte, error) {
	if c.Text == nil {
		c.Text = []Field{}
	}
	return json.MarshalIndent(c, "", "  ")
}

// Slots converts the fields to template slots.
func (c TemplateConfig) Slots() []meme.Slot {
	slots := make([]meme.Slot, len(c.Text))
	for i, f := range c.Text {
		slots[i] = f.Slot()
	}
	return slots
}

// TextColor returns the configured colour, or black.
func (c TemplateConfig) TextColor() composite.Color {
	if c.Color == nil {
		return composite.Black
	}
	return composite.Color(*c.Color)
}

// Slot converts the field to a template slot.
func (f Field) Slot() meme.Slot {
	return meme.Slot{
		Min: image.Pt(f.Min[0], f.Min[1]),
		Max: image.Pt(f.Max[0], f.Max[1]),
	}
}

func (f Field) validate() error {
	if f.Min[0] < 0 || f.Min[1] < 0 {
		return fmt.Errorf("negative coordinate in %v", f.Min)
	}
	if f.Min[0] > f.Max[0] || f.Min[1] > f.Max[1] {
		return fmt.Errorf("min %v exceeds max %v", f.Min, f.Max)
	}
	return nil
}

// String formats the field as LEFT-TOP-RIGHT-BOTTOM.
func (f Field) String() string {
	return fmt.Sprintf("%d-%d-%d-%d", f.Min[0], f.Min[1], f.Max[0], f.Max[1])
}

// ParseField parses a LEFT-TOP-RIGHT-BOTTOM literal such as "10-10-300-120".
func ParseField(literal string) (Field, error) {
	parts := strings.Split(strings.TrimSpace(literal), "-")
	if len(parts) != 4 {
		return Field{}, fmt.Errorf("%w: %q needs LEFT-TOP-RIGHT-BOTTOM", ErrInvalidField, literal)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return Field{}, fmt.Errorf("%w: %q: %v", ErrInvalidField, literal, err)
		}
		v[i] = int(n)
	}

	f := Field{Min: [2]int{v[0], v[1]}, Max: [2]int{v[2], v[3]}}
	if err := f.validate(); err != nil {
		return Field{}, fmt.Errorf("%w: %q: %v", ErrInvalidField, literal, err)
	}
	return f, nil
}
