package editor

import (
	"strings"
	"unicode"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/gutter"
	"github.com/iw2rmb/cppedit/internal/grapheme"
	"github.com/iw2rmb/cppedit/syntax"
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	count := m.buf.LineCount()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	// Only rows inside the viewport get syntax styling.
	styled := make([]bool, count)
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	for _, row := range gutter.VisibleRows(nil, count, m.viewport.YOffset, h) {
		styled[row] = true
	}

	gw := m.GutterWidth()
	out := make([]string, 0, count)
	for row := 0; row < count; row++ {
		var sb strings.Builder
		if gw > 0 {
			sb.WriteString(m.renderGutter(row, count, gw, cursor))
		}
		var spans []syntax.Span
		if styled[row] {
			spans = m.driver.Spans(row)
		}
		sb.WriteString(m.renderLine(row, spans, cursor, sel, selOK))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderGutter(row, count, width int, cursor buffer.Pos) string {
	st := m.cfg.Style
	numStyle := st.LineNum
	if m.focused && row == cursor.Row {
		numStyle = st.LineNumActive
	}

	label := gutter.Label(row, count)
	if len(label) > width {
		label = label[len(label)-width:]
	}
	s := numStyle.Render(label)
	if pad := width - len(label); pad > 0 {
		s += st.Gutter.Render(strings.Repeat(" ", pad))
	}
	return s
}

func (m *Model) renderLine(row int, spans []syntax.Span, cursor buffer.Pos, sel buffer.Range, selOK bool) string {
	st := m.cfg.Style
	text := m.buf.Line(row)
	lineLen := m.buf.LineLen(row)

	cursorCol := -1
	if m.focused && row == cursor.Row {
		cursorCol = clampInt(cursor.Col, 0, lineLen)
	}
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, lineLen)

	var sb strings.Builder
	si := 0
	for _, c := range grapheme.Clusters(text, m.cfg.TabWidth) {
		out := c.Text
		switch {
		case c.Text == "\t":
			out = strings.Repeat(" ", c.Width)
		case c.Width == 0 && c.Runes == 1 && unicode.IsControl([]rune(c.Text)[0]):
			continue
		}
		for si < len(spans) && spans[si].End() <= c.Col {
			si++
		}

		// A cursor inside a cluster marks the whole cluster.
		style := st.Text
		switch {
		case cursorCol >= c.Col && cursorCol < c.Col+c.Runes:
			style = st.Cursor
		case hasSel && c.Col >= selStart && c.Col < selEnd:
			style = st.Selection
		case si < len(spans) && spans[si].Start <= c.Col:
			if cs, ok := m.styles[spans[si].Category]; ok {
				style = cs.Inherit(st.Text)
			}
		}
		sb.WriteString(style.Render(out))
	}

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if cursorCol == lineLen {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok {
		return 0, 0, false
	}
	sel = buffer.NormalizeRange(sel)
	if row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = clampInt(sel.Start.Col, 0, lineLen)
	}
	if row == sel.End.Row {
		end = clampInt(sel.End.Col, 0, lineLen)
	}
	return start, end, start < end
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
