package smartedit

import (
	"strings"
	"unicode"

	"github.com/iw2rmb/cppedit/buffer"
)

// TabFill returns the number of spaces that move col to the next tab stop.
// It is never zero: a column already on a stop advances a full width.
func TabFill(col, width int) int {
	if width < 1 {
		width = 1
	}
	col = max(col, 0)
	return width - col%width
}

// BackspaceCount returns how many spaces to delete from a run of n spaces to
// land on the previous tab stop: between 1 and width.
func BackspaceCount(n, width int) int {
	if n <= 0 {
		return 0
	}
	if width < 1 {
		width = 1
	}
	return (n-1)%width + 1
}

// LeadingIndent returns the number of leading whitespace runes of line.
func LeadingIndent(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// CurrentLine returns the cursor row's text.
func CurrentLine(b *buffer.Buffer) string {
	return b.Line(b.Cursor().Row)
}

// PrevLine returns the text of the row above the cursor, or "" on the first
// row.
func PrevLine(b *buffer.Buffer) string {
	row := b.Cursor().Row
	if row == 0 {
		return ""
	}
	return b.Line(row - 1)
}

func allRune(s string, r rune) bool {
	for _, c := range s {
		if c != r {
			return false
		}
	}
	return true
}

func lastNonSpace(s string) (rune, bool) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return 0, false
	}
	rs := []rune(s)
	return rs[len(rs)-1], true
}

func firstNonSpace(s string) (rune, bool) {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return r, true
		}
	}
	return 0, false
}
