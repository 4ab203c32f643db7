// Package gutter sizes the line-number gutter and finds the rows it has to
// paint.
package gutter

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// DigitCount returns the number of decimal digits of the largest line number,
// at least 1.
func DigitCount(lineCount int) int {
	n := max(lineCount, 1)
	digits := 1
	for n >= 10 {
		digits++
		n /= 10
	}
	return digits
}

// Metrics converts a digit count into a gutter width. Units are whatever the
// host measures in: terminal cells or pixels.
type Metrics struct {
	GlyphAdvance int `mapstructure:"glyph_advance" yaml:"glyph_advance"`
	Padding      int `mapstructure:"padding" yaml:"padding"`
}

// TerminalMetrics measures the digit glyph in cells and reserves one trailing
// separator cell.
func TerminalMetrics() Metrics {
	return Metrics{GlyphAdvance: runewidth.RuneWidth('9'), Padding: 1}
}

// DesktopMetrics is a fixed 8px digit advance with 8px of padding.
func DesktopMetrics() Metrics {
	return Metrics{GlyphAdvance: 8, Padding: 8}
}

// Width returns the gutter width for lineCount lines.
func (m Metrics) Width(lineCount int) int {
	return DigitCount(lineCount)*m.GlyphAdvance + m.Padding
}

// Label returns the right-aligned number for row (0-based), padded to the
// digit count of lineCount.
func Label(row, lineCount int) string {
	return fmt.Sprintf("%*d", DigitCount(lineCount), row+1)
}

// Sizer keeps the gutter width in step with the document line count and the
// viewport size.
type Sizer struct {
	metrics        Metrics
	lineCount      int
	viewportWidth  int
	viewportHeight int
	width          int
}

// NewSizer returns a sizer for an empty, one-line document.
func NewSizer(m Metrics) *Sizer {
	s := &Sizer{metrics: m, lineCount: 1}
	s.width = m.Width(1)
	return s
}

// Width returns the current gutter width.
func (s *Sizer) Width() int { return s.width }

// LineCount returns the last line count passed to SetLineCount.
func (s *Sizer) LineCount() int { return s.lineCount }

// Viewport returns the last size passed to Resize.
func (s *Sizer) Viewport() (width, height int) { return s.viewportWidth, s.viewportHeight }

// SetLineCount records n and reports whether the gutter width changed.
func (s *Sizer) SetLineCount(n int) bool {
	s.lineCount = max(n, 1)
	return s.recompute()
}

// Resize records the viewport size and reports whether the gutter width
// changed. The width never exceeds the viewport width.
func (s *Sizer) Resize(width, height int) bool {
	s.viewportWidth, s.viewportHeight = max(width, 0), max(height, 0)
	return s.recompute()
}

// TextWidth returns the viewport width left for text.
func (s *Sizer) TextWidth() int {
	return max(s.viewportWidth-s.width, 0)
}

func (s *Sizer) recompute() bool {
	w := s.metrics.Width(s.lineCount)
	if s.viewportWidth > 0 {
		w = min(w, s.viewportWidth)
	}
	changed := w != s.width
	s.width = w
	return changed
}

// VisibleRows returns the rows that intersect the viewport
// [scrollTop, scrollTop+viewportHeight) in ascending order. heights reports
// the height of each row; nil means every row is 1 high. Rows with no height
// are hidden and never returned.
func VisibleRows(heights func(row int) int, count, scrollTop, viewportHeight int) []int {
	if count <= 0 || viewportHeight <= 0 {
		return nil
	}
	if heights == nil {
		heights = func(int) int { return 1 }
	}
	scrollTop = max(scrollTop, 0)
	bottom := scrollTop + viewportHeight

	// Cumulative walk to the first row that reaches into the viewport.
	row, top := 0, 0
	for row < count {
		h := max(heights(row), 0)
		if top+h > scrollTop {
			break
		}
		top += h
		row++
	}

	var rows []int
	for ; row < count && top < bottom; row++ {
		h := max(heights(row), 0)
		if h > 0 {
			rows = append(rows, row)
		}
		top += h
	}
	return rows
}
