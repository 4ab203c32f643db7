package editor

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/syntax"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Text: "a\nb\nc"})
	m = m.Blur()

	m = m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	m := New(Config{
		Text:         "one\ntwo\nthree\nfour\nfive",
		ShowLineNums: true,
	})
	m = m.Blur()
	m = m.SetSize(8, 3)

	got := strings.Split(m.View(), "\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}

	want := []string{
		"1 one",
		"2 two",
		"3 three",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", want) {
		t.Fatalf("unexpected view:\n got: %q\nwant: %q", got, want)
	}
}

func TestView_LineNumbersRightAligned(t *testing.T) {
	text := strings.TrimSuffix(strings.Repeat("x\n", 12), "\n")
	m := New(Config{Text: text, ShowLineNums: true})
	m = m.Blur()
	m = m.SetSize(10, 12)

	got := strings.Split(stripANSI(m.View()), "\n")
	if got[0][:3] != " 1 " {
		t.Fatalf("row 0 gutter: got %q, want %q", got[0][:3], " 1 ")
	}
	if got[11][:3] != "12 " {
		t.Fatalf("row 11 gutter: got %q, want %q", got[11][:3], "12 ")
	}
}

func TestModel_GutterWidthFollowsLineCount(t *testing.T) {
	text := "1\n2\n3\n4\n5\n6\n7\n8\n9"
	m := New(Config{Text: text, ShowLineNums: true})
	m = m.SetSize(20, 5)
	if got := m.GutterWidth(); got != 2 {
		t.Fatalf("gutter width for 9 lines: got %d, want %d", got, 2)
	}

	m.Buffer().SetCursor(buffer.Pos{Row: 8, Col: 1})
	m = press(m, enterKey())
	if got := m.Buffer().LineCount(); got != 10 {
		t.Fatalf("line count: got %d, want %d", got, 10)
	}
	if got := m.GutterWidth(); got != 3 {
		t.Fatalf("gutter width for 10 lines: got %d, want %d", got, 3)
	}

	_ = m.Buffer().Undo()
	m, _ = m.Update(nil)
	if got := m.GutterWidth(); got != 2 {
		t.Fatalf("gutter width after undo: got %d, want %d", got, 2)
	}
}

func TestModel_GutterHiddenWithoutLineNumbers(t *testing.T) {
	m := New(Config{Text: "a"})
	if got := m.GutterWidth(); got != 0 {
		t.Fatalf("gutter width: got %d, want 0", got)
	}
}

func TestModel_ToCode(t *testing.T) {
	m := New(Config{Text: "abc\ndef"})
	if got := m.ToCode(false); got != "abc\ndef" {
		t.Fatalf("ToCode without selection: got %q", got)
	}

	m.Buffer().SetSelection(buffer.Range{Start: buffer.Pos{Row: 0, Col: 1}, End: buffer.Pos{Row: 1, Col: 1}})
	if got, want := m.ToCode(false), "bc\nd"; got != want {
		t.Fatalf("ToCode(false): got %q, want %q", got, want)
	}
	if got, want := m.ToCode(true), "abc\ndef"; got != want {
		t.Fatalf("ToCode(true): got %q, want %q", got, want)
	}
}

func TestModel_HighlightFollowsEdits(t *testing.T) {
	m := New(Config{Text: "int a;\nint b;"})
	if got := m.BlockState(1); got != syntax.StateNormal {
		t.Fatalf("initial state: got %v", got)
	}

	m = typeText(m, "/*")
	if got := m.Buffer().Line(0); got != "/*int a;" {
		t.Fatalf("line 0: got %q", got)
	}
	for row := 0; row < 2; row++ {
		if got := m.BlockState(row); got != syntax.StateInBlockComment {
			t.Fatalf("state of row %d: got %v, want %v", row, got, syntax.StateInBlockComment)
		}
	}
	want := []syntax.Span{{Start: 0, Length: 6, Category: syntax.CategoryComment}}
	if got := m.Spans(1); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("spans of row 1: got %v, want %v", got, want)
	}

	// Undo replaces the whole document; the driver starts over.
	_ = m.Buffer().Undo()
	_ = m.Buffer().Undo()
	m, _ = m.Update(nil)
	if got := m.BlockState(1); got != syntax.StateNormal {
		t.Fatalf("state after undo: got %v, want %v", got, syntax.StateNormal)
	}
}

func TestModel_CursorCell(t *testing.T) {
	m := New(Config{Text: "\t世x", TabWidth: 4})
	cases := []struct{ col, want int }{
		{0, 0},
		{1, 4},
		{2, 6},
		{3, 7},
	}
	for _, tc := range cases {
		m.Buffer().SetCursor(buffer.Pos{Col: tc.col})
		if got := m.CursorCell(); got != tc.want {
			t.Fatalf("CursorCell at col %d: got %d, want %d", tc.col, got, tc.want)
		}
	}
}
