package editor

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/cppedit/gutter"
	"github.com/iw2rmb/cppedit/highlight"
	"github.com/iw2rmb/cppedit/smartedit"
	"github.com/iw2rmb/cppedit/syntax"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style
	// Renderer builds the category styles. Nil means the lipgloss default.
	Renderer *lipgloss.Renderer
	// Registry maps categories to styles. Nil means syntax.DefaultRegistry().
	Registry *syntax.Registry
	// Gutter sizes the line-number gutter. The zero value means
	// gutter.TerminalMetrics().
	Gutter gutter.Metrics

	// Engine tokenizes lines. Nil means syntax.DefaultEngine().
	Engine highlight.Highlighter
	// SmartEdit settings. Nil means smartedit.New().
	SmartEdit *smartedit.Machine
	// TabWidth expands tab characters when rendering. Zero means 4.
	TabWidth int

	KeyMap   KeyMap
	ReadOnly bool

	// Forwarded to buffer.Options.
	HistoryLimit int

	// OnChange is called after every update that changed the buffer version.
	OnChange func(ChangeEvent)
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = syntax.DefaultRegistry()
	}
	if c.Gutter == (gutter.Metrics{}) {
		c.Gutter = gutter.TerminalMetrics()
	}
	if c.Engine == nil {
		c.Engine = syntax.DefaultEngine()
	}
	if c.SmartEdit == nil {
		c.SmartEdit = smartedit.New()
	}
	if c.TabWidth <= 0 {
		c.TabWidth = c.SmartEdit.TabWidth
	}
	if reflect.DeepEqual(c.KeyMap, KeyMap{}) {
		c.KeyMap = DefaultKeyMap()
	}
	return c
}
