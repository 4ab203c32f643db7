package editor

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/syntax"
)

func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	return r
}

func plain(st lipgloss.Style, s string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(st.Render(string(r)))
	}
	return sb.String()
}

func TestRender_KeywordUsesRegistryColor(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle()}
	m := New(Config{Text: "int a;", Renderer: r, Style: st})
	m = m.SetSize(20, 1)
	m = m.Blur()

	kw := m.styles[syntax.CategoryKeyword].Inherit(st.Text)
	got := m.renderContent()
	want := plain(kw, "int") + st.Text.Render(" ")
	if !strings.HasPrefix(got, want) {
		t.Fatalf("keyword render:\n got: %q\nwant prefix: %q", got, want)
	}
	if !strings.Contains(got, "38;2;52;152;219") {
		t.Fatalf("expected keyword color sequence in %q", got)
	}
}

func TestRender_ThemeOverride(t *testing.T) {
	r := trueColorRenderer()
	reg, err := syntax.NewRegistry(syntax.DefaultRegistry(), map[string]syntax.StyleSpec{
		"keyword": {Color: "#ff0000"},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	m := New(Config{Text: "class", Renderer: r, Registry: reg, Style: Style{Text: r.NewStyle()}})
	m = m.SetSize(20, 1)
	m = m.Blur()

	if got := m.renderContent(); !strings.Contains(got, "38;2;255;0;0") {
		t.Fatalf("expected overridden color in %q", got)
	}
}

func TestRender_OnlyVisibleRowsStyled(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle()}
	m := New(Config{Text: "int a;\nint b;", Renderer: r, Style: st})
	m = m.SetSize(20, 1)
	m = m.Blur()

	rows := strings.Split(m.renderContent(), "\n")
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if want := plain(st.Text, "int b;"); rows[1] != want {
		t.Fatalf("off-screen row:\n got: %q\nwant: %q", rows[1], want)
	}
	if rows[0] == plain(st.Text, "int a;") {
		t.Fatalf("visible row rendered without highlighting: %q", rows[0])
	}
}

func TestRender_CursorWinsOverHighlight(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle(), Cursor: r.NewStyle().Reverse(true)}
	m := New(Config{Text: "int", Renderer: r, Style: st})
	m = m.SetSize(20, 1)

	if got, want := m.renderContent(), st.Cursor.Render("i"); !strings.HasPrefix(got, want) {
		t.Fatalf("cursor at col 0:\n got: %q\nwant prefix: %q", got, want)
	}

	m.Buffer().SetCursor(buffer.Pos{Row: 0, Col: 3})
	m, _ = m.Update(nil)
	if got, want := m.renderContent(), st.Cursor.Render(" "); !strings.HasSuffix(got, want) {
		t.Fatalf("cursor at EOL:\n got: %q\nwant suffix: %q", got, want)
	}
}

func TestRender_SelectionWinsOverHighlight(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle(), Selection: r.NewStyle().Background(lipgloss.Color("#444444"))}
	m := New(Config{Text: "int a", Renderer: r, Style: st})
	m.Buffer().SetSelection(buffer.Range{End: buffer.Pos{Row: 0, Col: 2}})
	m = m.SetSize(20, 1)
	m = m.Blur()

	if got, want := m.renderContent(), plain(st.Selection, "in"); !strings.HasPrefix(got, want) {
		t.Fatalf("selection:\n got: %q\nwant prefix: %q", got, want)
	}
}

func TestRender_TabsExpand(t *testing.T) {
	m := New(Config{Text: "\tx", TabWidth: 4})
	m = m.SetSize(20, 1)
	m = m.Blur()

	if got := stripANSI(m.renderContent()); got != "    x" {
		t.Fatalf("tab expansion: got %q, want %q", got, "    x")
	}
}

func TestSelectionColsForRow(t *testing.T) {
	sel := buffer.Range{Start: buffer.Pos{Row: 1, Col: 2}, End: buffer.Pos{Row: 3, Col: 1}}
	cases := []struct {
		row, lineLen int
		start, end   int
		has          bool
	}{
		{row: 0, lineLen: 5},
		{row: 1, lineLen: 5, start: 2, end: 5, has: true},
		{row: 2, lineLen: 3, start: 0, end: 3, has: true},
		{row: 3, lineLen: 5, start: 0, end: 1, has: true},
		{row: 4, lineLen: 5},
	}
	for _, tc := range cases {
		start, end, has := selectionColsForRow(sel, true, tc.row, tc.lineLen)
		if start != tc.start || end != tc.end || has != tc.has {
			t.Fatalf("row %d: got (%d,%d,%v), want (%d,%d,%v)", tc.row, start, end, has, tc.start, tc.end, tc.has)
		}
	}
	if _, _, has := selectionColsForRow(sel, false, 1, 5); has {
		t.Fatalf("inactive selection must not cover any row")
	}
}

func TestRender_CursorCellMatchesRenderedCluster(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle(), Cursor: r.NewStyle().Reverse(true)}
	line := "a👩\u200d💻b"
	m := New(Config{Text: line, Renderer: r, Style: st})
	m = m.SetSize(20, 1)

	// Rune 2 sits inside the emoji cluster; the whole cluster is the cursor.
	m.Buffer().SetCursor(buffer.Pos{Row: 0, Col: 2})
	m, _ = m.Update(nil)

	got := m.renderContent()
	want := st.Text.Render("a") + st.Cursor.Render("👩\u200d💻") + st.Text.Render("b")
	if got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
	if got := m.CursorCell(); got != 1 {
		t.Fatalf("CursorCell inside cluster: got %d, want 1", got)
	}

	m.Buffer().SetCursor(buffer.Pos{Row: 0, Col: 4})
	m, _ = m.Update(nil)
	if got := m.CursorCell(); got != 3 {
		t.Fatalf("CursorCell after cluster: got %d, want 3", got)
	}
	if got, want := m.renderContent(), st.Text.Render("a")+st.Text.Render("👩\u200d💻")+st.Cursor.Render("b"); got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}
