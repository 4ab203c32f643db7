// Package grapheme lays text out in terminal cells.
package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TabAdvance returns the cells a tab occupies when it starts at cell col.
func TabAdvance(col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - max(col, 0)%tabWidth
}

// Cluster is one grapheme cluster of a line placed in cells.
type Cluster struct {
	Text string
	// Col is the rune offset of the cluster's first rune; Runes its length.
	Col   int
	Runes int
	// Cell is the first cell the cluster occupies; Width its cell count.
	Cell  int
	Width int
}

// Clusters splits line into grapheme clusters laid out from cell 0. Tabs
// advance to the next stop and control runes take no cells.
func Clusters(line string, tabWidth int) []Cluster {
	var out []Cluster
	col, cell, state := 0, 0, -1
	for len(line) > 0 {
		var text string
		var w int
		text, line, w, state = uniseg.FirstGraphemeClusterInString(line, state)
		n := utf8.RuneCountInString(text)
		r, _ := utf8.DecodeRuneInString(text)
		switch {
		case text == "\t":
			w = TabAdvance(cell, tabWidth)
		case n == 1 && unicode.IsControl(r):
			w = 0
		}
		out = append(out, Cluster{Text: text, Col: col, Runes: n, Cell: cell, Width: w})
		col += n
		cell += w
	}
	return out
}

// CellAt returns the cell where rune offset col of line starts. An offset
// inside a cluster maps to the cluster's first cell; offsets past the end map
// to the line width.
func CellAt(line string, col, tabWidth int) int {
	cell := 0
	for _, c := range Clusters(line, tabWidth) {
		if col < c.Col+c.Runes {
			return c.Cell
		}
		cell = c.Cell + c.Width
	}
	return cell
}
