package highlight

import (
	"sort"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/internal/log"
	"github.com/iw2rmb/cppedit/syntax"
)

// Highlighter tokenizes one line given the state the previous line ended in.
// *syntax.Engine implements it.
type Highlighter interface {
	Highlight(line string, in syntax.BlockState) ([]syntax.Span, syntax.BlockState)
}

// LineSource is the document being highlighted. *buffer.Buffer implements it.
type LineSource interface {
	LineCount() int
	Line(row int) string
}

// RenderFunc receives the new spans of every line a refresh touched.
type RenderFunc func(row int, spans []syntax.Span)

// Option configures NewDriver.
type Option func(*Driver)

// WithRenderFunc sets the callback invoked for each recomputed line.
func WithRenderFunc(fn RenderFunc) Option {
	return func(d *Driver) { d.render = fn }
}

// WithLogger sets the logger used for propagation diagnostics. The default is
// the process-wide logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

type lineRecord struct {
	in    syntax.BlockState
	out   syntax.BlockState
	spans []syntax.Span
	valid bool
}

// Driver owns the per-line state chain of one document. It is not safe for
// concurrent use.
type Driver struct {
	engine Highlighter
	render RenderFunc
	logger *log.Logger
	lines  []lineRecord
}

// NewDriver returns a driver with no lines. Call Reset before use.
func NewDriver(engine Highlighter, opts ...Option) *Driver {
	d := &Driver{engine: engine, logger: log.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LineCount returns the number of lines the driver tracks.
func (d *Driver) LineCount() int { return len(d.lines) }

// Spans returns the spans of row, or nil when row is out of range.
func (d *Driver) Spans(row int) []syntax.Span {
	if row < 0 || row >= len(d.lines) {
		return nil
	}
	return append([]syntax.Span(nil), d.lines[row].spans...)
}

// State returns the state row ended in. Out of range rows report
// StateNormal.
func (d *Driver) State(row int) syntax.BlockState {
	if row < 0 || row >= len(d.lines) {
		return syntax.StateNormal
	}
	return d.lines[row].out
}

// Reset drops all recorded state and highlights every line of src. It
// returns the rows it rendered.
func (d *Driver) Reset(src LineSource) []int {
	d.lines = make([]lineRecord, max(src.LineCount(), 0))
	return d.refresh(src)
}

// OnLinesChanged re-highlights rows whose text changed in place and carries
// the resulting state forward until it stabilizes. Rows out of range are
// ignored. It returns every row it rendered, ascending.
//
// If the line count of src no longer matches, records are added or removed
// at the end; use ApplyChange to keep records aligned with inserted or
// removed lines.
func (d *Driver) OnLinesChanged(src LineSource, rows ...int) []int {
	d.resize(src.LineCount())
	for _, row := range rows {
		if row >= 0 && row < len(d.lines) {
			d.lines[row].valid = false
		}
	}
	return d.refresh(src)
}

// ApplyChange splices the per-line records for every edit in ch, so that
// lines after an inserted or removed line keep their recorded state, then
// refreshes the edited rows.
func (d *Driver) ApplyChange(src LineSource, ch buffer.Change) []int {
	for _, e := range ch.AppliedEdits {
		before := buffer.NormalizeRange(e.RangeBefore)
		after := buffer.NormalizeRange(e.RangeAfter)
		d.splice(before.Start.Row, before.Rows(), after.Rows())
	}
	if len(d.lines) != src.LineCount() {
		d.logger.Warn(log.CatHighlight, "line records out of sync, resetting",
			"records", len(d.lines), "lines", src.LineCount(), "version", ch.VersionAfter)
		return d.Reset(src)
	}
	return d.refresh(src)
}

// splice replaces n records starting at row with m invalid ones.
func (d *Driver) splice(row, n, m int) {
	row = min(max(row, 0), len(d.lines))
	end := min(row+n, len(d.lines))

	out := make([]lineRecord, 0, len(d.lines)-(end-row)+m)
	out = append(out, d.lines[:row]...)
	out = append(out, make([]lineRecord, m)...)
	out = append(out, d.lines[end:]...)
	d.lines = out
}

func (d *Driver) resize(n int) {
	n = max(n, 0)
	switch {
	case n < len(d.lines):
		d.lines = d.lines[:n]
	case n > len(d.lines):
		d.lines = append(d.lines, make([]lineRecord, n-len(d.lines))...)
	}
}

func (d *Driver) inState(row int) syntax.BlockState {
	if row == 0 {
		return syntax.StateNormal
	}
	return d.lines[row-1].out
}

// refresh recomputes every invalid row and propagates forward from it.
func (d *Driver) refresh(src LineSource) []int {
	var pending []int
	for row, rec := range d.lines {
		if !rec.valid {
			pending = append(pending, row)
		}
	}
	sort.Ints(pending)

	var touched []int
	next := 0
	for _, start := range pending {
		if start < next {
			continue
		}
		row := start
		for ; row < len(d.lines); row++ {
			in := d.inState(row)
			rec := &d.lines[row]
			if rec.valid && rec.in == in {
				break
			}
			wasValid, prevOut := rec.valid, rec.out

			spans, out := d.engine.Highlight(src.Line(row), in)
			*rec = lineRecord{in: in, out: out, spans: spans, valid: true}
			touched = append(touched, row)
			next = row + 1

			if wasValid && prevOut == out {
				break
			}
		}
		if last := next - 1; last > start {
			d.logger.Debug(log.CatHighlight, "state propagated", "from", start, "to", last)
		}
	}

	if d.render != nil {
		for _, row := range touched {
			d.render(row, d.lines[row].spans)
		}
	}
	return touched
}
