package buffer

import "strings"

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		b.DeleteSelection()
		return
	}

	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.commitEdits([]TextEdit{{Range: r, Text: s}}, nil, nil)
}

// InsertRune inserts a single rune at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	start := Pos{Row: row, Col: col - 1}
	if col == 0 {
		// Join with previous line (delete the newline).
		start = Pos{Row: row - 1, Col: len(b.lines[row-1])}
	}
	b.commitEdits([]TextEdit{Delete(Range{Start: start, End: b.cursor})}, nil, nil)
}

// DeleteBackwardN deletes up to n runes before the cursor on the cursor row.
// It never joins lines.
func (b *Buffer) DeleteBackwardN(n int) {
	if n <= 0 {
		return
	}
	col := b.cursor.Col
	start := max(col-n, 0)
	if start == col {
		return
	}
	b.commitEdits([]TextEdit{Delete(Range{
		Start: Pos{Row: b.cursor.Row, Col: start},
		End:   b.cursor,
	})}, nil, nil)
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	end := Pos{Row: row, Col: col + 1}
	if col >= len(b.lines[row]) {
		// Join with next line (delete the newline).
		end = Pos{Row: row + 1, Col: 0}
	}
	b.commitEdits([]TextEdit{Delete(Range{Start: b.cursor, End: end})}, nil, nil)
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.commitEdits([]TextEdit{Delete(r)}, nil, nil)
}

// commitEdits applies edits as one undoable step. The cursor ends at the end
// of the last effective edit unless cursor is set; sel, when set, becomes the
// new selection.
func (b *Buffer) commitEdits(edits []TextEdit, cursor *Pos, sel *Range) bool {
	prev := b.snapshot()
	change := b.beginChange()

	anyChanged := false
	lastCursor := b.cursor
	for _, e := range edits {
		nextCursor, applied, changed := b.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.addAppliedEdit(applied)
	}
	if !anyChanged {
		return false
	}

	b.cursor = b.clampPos(lastCursor)
	b.sel = selectionState{}
	if cursor != nil {
		b.cursor = b.clampPos(*cursor)
	}
	if sel != nil {
		r := ClampRange(*sel, len(b.lines), b.lineLen)
		if !r.IsEmpty() {
			b.sel = selectionState{active: true, anchor: r.Start, end: r.End}
			b.cursor = r.End
		}
	}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.commitChange(change)
	return true
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return b.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col

	prefix := b.lines[startRow][:startCol]
	suffix := b.lines[endRow][endCol:]

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	for i, p := range parts {
		var line []rune
		if i == 0 {
			line = append(line, prefix...)
		}
		line = append(line, []rune(p)...)
		if i == len(parts)-1 {
			nextCursor = Pos{Row: startRow + i, Col: len(line)}
			line = append(line, suffix...)
		}
		repl = append(repl, line)
	}

	out := make([][]rune, 0, len(b.lines)-(endRow-startRow+1)+len(repl))
	out = append(out, b.lines[:startRow]...)
	out = append(out, repl...)
	out = append(out, b.lines[endRow+1:]...)

	b.lines = out
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deletedText,
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	if r.Start.Row == r.End.Row {
		return string(lines[r.Start.Row][r.Start.Col:r.End.Col])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		partStart, partEnd := 0, len(lines[row])
		if row == r.Start.Row {
			partStart = r.Start.Col
		}
		if row == r.End.Row {
			partEnd = r.End.Col
		}
		sb.WriteString(string(lines[row][partStart:partEnd]))
	}
	return sb.String()
}
