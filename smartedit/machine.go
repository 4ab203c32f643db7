package smartedit

import (
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/internal/log"
)

const (
	DefaultTabWidth = 4
	DefaultSpace    = ' '
)

// DefaultPairs maps each surrounding key to its closing delimiter.
func DefaultPairs() map[rune]rune {
	return map[rune]rune{
		'"':  '"',
		'\'': '\'',
		'(':  ')',
		'[':  ']',
		'{':  '}',
	}
}

// Machine holds the smart-edit settings. The zero value is not usable; use New.
type Machine struct {
	TabWidth int
	Space    rune
	// Pairs maps a surrounding key to its closing delimiter.
	Pairs map[rune]rune
}

// Option configures New.
type Option func(*Machine)

// WithTabWidth sets the tab stop width. Values below 1 are ignored.
func WithTabWidth(n int) Option {
	return func(m *Machine) {
		if n >= 1 {
			m.TabWidth = n
		}
	}
}

// WithSpace sets the rune used for indentation.
func WithSpace(r rune) Option {
	return func(m *Machine) { m.Space = r }
}

// WithPairs replaces the surrounding key pairs.
func WithPairs(pairs map[rune]rune) Option {
	return func(m *Machine) {
		m.Pairs = make(map[rune]rune, len(pairs))
		for k, v := range pairs {
			m.Pairs[k] = v
		}
	}
}

// New returns a machine with tab width 4, space indentation and the default
// pairs.
func New(opts ...Option) *Machine {
	m := &Machine{
		TabWidth: DefaultTabWidth,
		Space:    DefaultSpace,
		Pairs:    DefaultPairs(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) tabWidth() int {
	if m.TabWidth < 1 {
		return DefaultTabWidth
	}
	return m.TabWidth
}

func (m *Machine) indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(m.Space), n)
}

// ApplyKey applies ev to b and reports whether it handled the key. Exactly
// one behavior fires per event. Unhandled keys (KeyOther, and any key held
// with Ctrl or Alt) leave b untouched so the host can apply its own binding.
func (m *Machine) ApplyKey(b *buffer.Buffer, ev KeyEvent) bool {
	if ev.Modifiers&(ModCtrl|ModAlt) != 0 {
		return false
	}
	switch ev.Key {
	case KeyTab:
		m.tab(b)
	case KeyEnter:
		m.enter(b)
	case KeyBackspace:
		m.backspace(b)
	case KeyRune:
		m.insertRune(b, ev.Rune)
	default:
		return false
	}
	return true
}

func (m *Machine) tab(b *buffer.Buffer) {
	r, ok := b.Selection()
	if !ok {
		r = buffer.Range{Start: b.Cursor(), End: b.Cursor()}
	}
	n := TabFill(r.Start.Col, m.tabWidth())
	log.Debug(log.CatEdit, "tab", "col", r.Start.Col, "fill", n)
	b.Apply(buffer.TextEdit{Range: r, Text: m.indent(n)})
}

// enter splits the line at the cursor (replacing any selection) and indents
// the new line from the line it was split from.
func (m *Machine) enter(b *buffer.Buffer) {
	r, ok := b.Selection()
	if !ok {
		r = buffer.Range{Start: b.Cursor(), End: b.Cursor()}
	}
	startLine := []rune(b.Line(r.Start.Row))
	endLine := []rune(b.Line(r.End.Row))
	above := string(startLine[:r.Start.Col])
	below := string(endLine[r.End.Col:])

	indent := LeadingIndent(above)
	kept := above
	if above != "" && allRune(above, m.Space) {
		kept = ""
	}

	var text string
	var cursor buffer.Pos
	switch {
	case strings.HasSuffix(above, ":"):
		indent += m.tabWidth()
		text = kept + "\n" + m.indent(indent) + below
		cursor = buffer.Pos{Row: r.Start.Row + 1, Col: indent}
	case m.closesBrace(above, below):
		inner := indent + m.tabWidth()
		text = kept + "\n" + m.indent(inner) + "\n" + m.indent(indent) + strings.TrimLeft(below, " \t")
		cursor = buffer.Pos{Row: r.Start.Row + 1, Col: inner}
	default:
		text = kept + "\n" + m.indent(indent) + below
		cursor = buffer.Pos{Row: r.Start.Row + 1, Col: indent}
	}

	log.Debug(log.CatEdit, "enter", "row", r.Start.Row, "indent", indent)
	b.Commit(buffer.Transaction{
		Edits: []buffer.TextEdit{{
			Range: buffer.Range{
				Start: buffer.Pos{Row: r.Start.Row},
				End:   buffer.Pos{Row: r.End.Row, Col: len(endLine)},
			},
			Text: text,
		}},
		Cursor: &cursor,
	})
}

var braces = map[rune]rune{'{': '}', '(': ')', '[': ']'}

func (m *Machine) closesBrace(above, below string) bool {
	open, ok := lastNonSpace(above)
	if !ok {
		return false
	}
	want, ok := braces[open]
	if !ok {
		return false
	}
	got, ok := firstNonSpace(below)
	return ok && got == want
}

func (m *Machine) backspace(b *buffer.Buffer) {
	if _, ok := b.Selection(); ok {
		b.DeleteBackward()
		return
	}
	line := CurrentLine(b)
	col := b.Cursor().Col
	if line == "" || !allRune(line, m.Space) || col == 0 {
		b.DeleteBackward()
		return
	}
	// The count comes from the whole run of spaces, capped at the cursor.
	n := min(BackspaceCount(utf8.RuneCountInString(line), m.tabWidth()), col)
	log.Debug(log.CatEdit, "backspace", "col", col, "delete", n)
	b.DeleteBackwardN(n)
}

func (m *Machine) insertRune(b *buffer.Buffer, r rune) {
	closer, pair := m.Pairs[r]
	sel, ok := b.Selection()
	if !pair || !ok {
		b.InsertRune(r)
		return
	}

	// Closing delimiter first so the start position stays valid.
	after := buffer.Range{
		Start: buffer.Pos{Row: sel.Start.Row, Col: sel.Start.Col + 1},
		End:   sel.End,
	}
	if sel.End.Row == sel.Start.Row {
		after.End.Col++
	}
	log.Debug(log.CatEdit, "surround", "open", string(r), "range", sel.Start.String()+"-"+sel.End.String())
	b.Commit(buffer.Transaction{
		Edits: []buffer.TextEdit{
			buffer.Insert(sel.End, string(closer)),
			buffer.Insert(sel.Start, string(r)),
		},
		Selection: &after,
	})
}
