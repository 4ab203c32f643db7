package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/syntax"
)

type lines []string

func (l lines) LineCount() int { return len(l) }

func (l lines) Line(row int) string {
	if row < 0 || row >= len(l) {
		return ""
	}
	return l[row]
}

func states(d *Driver) []syntax.BlockState {
	out := make([]syntax.BlockState, d.LineCount())
	for i := range out {
		out[i] = d.State(i)
	}
	return out
}

const (
	N = syntax.StateNormal
	B = syntax.StateInBlockComment
)

func TestDriver_Reset(t *testing.T) {
	src := lines{"int a; /* open", "still", "*/ int b;", "int c;"}
	var rendered []int
	d := NewDriver(syntax.DefaultEngine(), WithRenderFunc(func(row int, _ []syntax.Span) {
		rendered = append(rendered, row)
	}))

	touched := d.Reset(src)
	require.Equal(t, []int{0, 1, 2, 3}, touched)
	require.Equal(t, touched, rendered)
	require.Equal(t, []syntax.BlockState{B, B, N, N}, states(d))
	require.Equal(t, []syntax.Span{{Start: 0, Length: 5, Category: syntax.CategoryComment}}, d.Spans(1))
}

func TestDriver_OnLinesChanged_StopsWhenStable(t *testing.T) {
	src := lines{"int a;", "int b;", "int c;", "int d;", "int e;"}
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(src)

	src[2] = "float c;"
	require.Equal(t, []int{2}, d.OnLinesChanged(src, 2))
	require.Equal(t, []syntax.Span{{Start: 0, Length: 5, Category: syntax.CategoryBasicType}}, d.Spans(2))
}

func TestDriver_OnLinesChanged_PropagatesBlockComment(t *testing.T) {
	src := lines{"int a;", "int b;", "int c;", "*/", "int d;", "int e;"}
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(src)
	require.Equal(t, []syntax.BlockState{N, N, N, N, N, N}, states(d))

	src[1] = "int b; /*"
	require.Equal(t, []int{1, 2, 3}, d.OnLinesChanged(src, 1))
	require.Equal(t, []syntax.BlockState{N, B, B, N, N, N}, states(d))
	require.Equal(t, []syntax.Span{{Start: 0, Length: 6, Category: syntax.CategoryComment}}, d.Spans(2))

	// Removing the opener undoes the propagation.
	src[1] = "int b;"
	require.Equal(t, []int{1, 2, 3}, d.OnLinesChanged(src, 1))
	require.Equal(t, []syntax.BlockState{N, N, N, N, N, N}, states(d))
}

func TestDriver_OnLinesChanged_UnclosedToEnd(t *testing.T) {
	src := lines{"a", "b", "c"}
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(src)

	src[0] = "/* a"
	require.Equal(t, []int{0, 1, 2}, d.OnLinesChanged(src, 0))
	require.Equal(t, []syntax.BlockState{B, B, B}, states(d))
}

func TestDriver_OnLinesChanged_IgnoresOutOfRange(t *testing.T) {
	src := lines{"int a;"}
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(src)
	require.Empty(t, d.OnLinesChanged(src, -1, 7))
}

func TestDriver_OnLinesChanged_ResizesAtEnd(t *testing.T) {
	src := lines{"/* a"}
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(src)

	src = append(src, "b */", "int c;")
	require.Equal(t, []int{1, 2}, d.OnLinesChanged(src))
	require.Equal(t, []syntax.BlockState{B, N, N}, states(d))
}

func TestDriver_ApplyChange_InsertedLines(t *testing.T) {
	b := buffer.New("int a;\nint b;\nint c;", buffer.Options{})
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(b)

	b.SetCursor(buffer.Pos{Row: 0, Col: 6})
	b.InsertText("\n/* x\ny")
	ch, ok := b.LastChange()
	require.True(t, ok)

	touched := d.ApplyChange(b, ch)
	require.Equal(t, []int{0, 1, 2, 3, 4}, touched)
	require.Equal(t, 5, d.LineCount())
	require.Equal(t, []syntax.BlockState{N, B, B, B, B}, states(d))
}

func TestDriver_ApplyChange_RemovedLines(t *testing.T) {
	b := buffer.New("/* a\nb\n*/\nint c;", buffer.Options{})
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(b)
	require.Equal(t, []syntax.BlockState{B, B, N, N}, states(d))

	b.Apply(buffer.Delete(buffer.Range{Start: buffer.Pos{Row: 1, Col: 0}, End: buffer.Pos{Row: 3, Col: 0}}))
	ch, ok := b.LastChange()
	require.True(t, ok)

	d.ApplyChange(b, ch)
	require.Equal(t, 2, d.LineCount())
	require.Equal(t, []syntax.BlockState{B, B}, states(d))
	require.Equal(t, []syntax.Span{{Start: 0, Length: 6, Category: syntax.CategoryComment}}, d.Spans(1))
}

func TestDriver_ApplyChange_Undo(t *testing.T) {
	b := buffer.New("int a;\nint b;", buffer.Options{})
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(b)

	b.SetCursor(buffer.Pos{Row: 0, Col: 0})
	b.InsertText("/*")
	ch, _ := b.LastChange()
	d.ApplyChange(b, ch)
	require.Equal(t, []syntax.BlockState{B, B}, states(d))

	require.True(t, b.Undo())
	ch, _ = b.LastChange()
	d.ApplyChange(b, ch)
	require.Equal(t, []syntax.BlockState{N, N}, states(d))
}

func TestDriver_ApplyChange_OutOfSyncResets(t *testing.T) {
	d := NewDriver(syntax.DefaultEngine())
	d.Reset(lines{"a"})

	src := lines{"a", "/* b", "c"}
	touched := d.ApplyChange(src, buffer.Change{})
	require.Equal(t, []int{0, 1, 2}, touched)
	require.Equal(t, []syntax.BlockState{N, B, B}, states(d))
}

func TestDriver_OutOfRange(t *testing.T) {
	d := NewDriver(syntax.DefaultEngine())
	require.Nil(t, d.Spans(0))
	require.Equal(t, syntax.StateNormal, d.State(-1))
	require.Equal(t, 0, d.LineCount())
}

func TestDriver_EmptyDocument(t *testing.T) {
	d := NewDriver(syntax.DefaultEngine())
	require.Equal(t, []int{0}, d.Reset(buffer.New("", buffer.Options{})))
	require.Equal(t, 1, d.LineCount())
	require.Empty(t, d.Reset(lines{}))
}

var fragments = []string{"int x;", "/*", "*/", "//", "\n", "a", " ", "\"s\"", "{", "}"}

func TestDriver_EditsMatchFreshReset(t *testing.T) {
	engine := syntax.DefaultEngine()
	rapid.Check(t, func(t *rapid.T) {
		initial := strings.Join(rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 12).Draw(t, "initial"), "")
		b := buffer.New(initial, buffer.Options{})
		d := NewDriver(engine)
		d.Reset(b)

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			row := rapid.IntRange(0, b.LineCount()-1).Draw(t, "row")
			col := rapid.IntRange(0, b.LineLen(row)).Draw(t, "col")
			b.SetCursor(buffer.Pos{Row: row, Col: col})
			before := b.Version()

			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				b.InsertText(rapid.SampledFrom(fragments).Draw(t, "text"))
			case 1:
				b.DeleteBackward()
			case 2:
				b.DeleteForward()
			case 3:
				b.Undo()
			}

			if b.Version() == before {
				continue
			}
			ch, ok := b.LastChange()
			if !ok {
				continue
			}
			d.ApplyChange(b, ch)
		}

		fresh := NewDriver(engine)
		fresh.Reset(b)
		require.Equal(t, fresh.LineCount(), d.LineCount())
		for row := 0; row < b.LineCount(); row++ {
			require.Equal(t, fresh.State(row), d.State(row), "state row %d", row)
			require.Equal(t, fresh.Spans(row), d.Spans(row), "spans row %d", row)
		}
	})
}
