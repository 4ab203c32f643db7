package syntax

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB parses a "#rrggbb" (or "#rgb") color.
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// StyleAttribute is the visual treatment of a category.
type StyleAttribute struct {
	Color  RGB
	Bold   bool
	Italic bool
}

// StyleSpec is the textual form of a StyleAttribute used by configuration.
// An empty Color removes the override for the category.
type StyleSpec struct {
	Color  string `mapstructure:"color" yaml:"color"`
	Bold   bool   `mapstructure:"bold" yaml:"bold,omitempty"`
	Italic bool   `mapstructure:"italic" yaml:"italic,omitempty"`
}

// Registry maps categories to style attributes. A category without an entry
// has no style override and renders with the host's default text style.
//
// A Registry never changes after construction.
type Registry struct {
	styles map[Category]StyleAttribute
}

var defaultPalette = map[Category]StyleSpec{
	CategoryKeyword:        {Color: "#3498DB"},
	CategoryOperator:       {Color: "#E74C32"},
	CategoryBrace:          {Color: "#E9E9E9"},
	CategoryBasicType:      {Color: "#7DC2FB"},
	CategoryClassName:      {Color: "#2DCC71", Bold: true},
	CategoryFunctionName:   {Color: "#2DCC71"},
	CategoryString:         {Color: "#F1C413"},
	CategoryComment:        {Color: "#606060", Italic: true},
	CategoryIdentifierThis: {Color: "#F1C413", Italic: true},
	CategoryMacro:          {Color: "#7EA332"},
	CategoryNumber:         {Color: "#A23333"},
	CategoryConstant:       {Color: "#6B71C4"},
}

// DefaultRegistry returns the built-in palette.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(nil, nil)
	if err != nil {
		panic(err) // built-in palette is static
	}
	return r
}

// NewRegistry builds a registry from base (nil means the built-in palette)
// with overrides applied on top. Override keys are category names.
func NewRegistry(base *Registry, overrides map[string]StyleSpec) (*Registry, error) {
	r := &Registry{styles: make(map[Category]StyleAttribute, categoryCount)}
	if base != nil {
		for c, a := range base.styles {
			r.styles[c] = a
		}
	} else {
		for c, spec := range defaultPalette {
			attr, err := spec.attribute()
			if err != nil {
				return nil, fmt.Errorf("default palette %s: %w", c, err)
			}
			r.styles[c] = attr
		}
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		spec := overrides[name]
		if strings.TrimSpace(spec.Color) == "" || c == CategoryNone {
			delete(r.styles, c)
			continue
		}
		attr, err := spec.attribute()
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		r.styles[c] = attr
	}
	return r, nil
}

func (s StyleSpec) attribute() (StyleAttribute, error) {
	rgb, err := ParseRGB(s.Color)
	if err != nil {
		return StyleAttribute{}, err
	}
	return StyleAttribute{Color: rgb, Bold: s.Bold, Italic: s.Italic}, nil
}

// Lookup returns the style for c. ok is false when c has no override.
func (r *Registry) Lookup(c Category) (attr StyleAttribute, ok bool) {
	if r == nil {
		return StyleAttribute{}, false
	}
	attr, ok = r.styles[c]
	return attr, ok
}

// Specs returns the registry in its textual form, keyed by category name.
func (r *Registry) Specs() map[string]StyleSpec {
	out := make(map[string]StyleSpec, len(r.styles))
	for c, a := range r.styles {
		out[c.String()] = StyleSpec{Color: a.Color.Hex(), Bold: a.Bold, Italic: a.Italic}
	}
	return out
}
