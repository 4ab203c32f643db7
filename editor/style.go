package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/cppedit/syntax"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Background(lipgloss.Color("#222222"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: gutter.Foreground(lipgloss.Color("#E9E9E9")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
	}
}

// categoryStyles resolves every category with an override in reg into a
// lipgloss style built by r. Categories without an override are absent.
func categoryStyles(r *lipgloss.Renderer, reg *syntax.Registry) map[syntax.Category]lipgloss.Style {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	out := make(map[syntax.Category]lipgloss.Style)
	for _, c := range syntax.Categories() {
		attr, ok := reg.Lookup(c)
		if !ok {
			continue
		}
		out[c] = r.NewStyle().
			Foreground(lipgloss.Color(attr.Color.Hex())).
			Bold(attr.Bold).
			Italic(attr.Italic)
	}
	return out
}
