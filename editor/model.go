package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/gutter"
	"github.com/iw2rmb/cppedit/highlight"
	"github.com/iw2rmb/cppedit/internal/grapheme"
	"github.com/iw2rmb/cppedit/internal/log"
	"github.com/iw2rmb/cppedit/smartedit"
	"github.com/iw2rmb/cppedit/syntax"
)

// Model is a Bubble Tea component that edits and renders a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	driver  *highlight.Driver
	machine *smartedit.Machine
	sizer   *gutter.Sizer
	styles  map[syntax.Category]lipgloss.Style

	focused bool

	viewport viewport.Model

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      buffer.Pos
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		driver:   highlight.NewDriver(cfg.Engine),
		machine:  cfg.SmartEdit,
		sizer:    gutter.NewSizer(cfg.Gutter),
		styles:   categoryStyles(cfg.Renderer, cfg.Registry),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.driver.Reset(m.buf)
	m.sizer.SetLineCount(m.buf.LineCount())
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Spans returns the current highlight spans of row.
func (m Model) Spans(row int) []syntax.Span { return m.driver.Spans(row) }

// BlockState returns the state row ends in.
func (m Model) BlockState(row int) syntax.BlockState { return m.driver.State(row) }

// GutterWidth returns the current line-number gutter width in cells, or 0
// when line numbers are hidden.
func (m Model) GutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return m.sizer.Width()
}

// CursorCell returns the terminal cell column the cursor is drawn at, laid
// out the same way View renders the line.
func (m Model) CursorCell() int {
	cur := m.buf.Cursor()
	return grapheme.CellAt(m.buf.Line(cur.Row), cur.Col, m.cfg.TabWidth)
}

// ToCode returns the selected text, or the whole document when nothing is
// selected or forceAll is set.
func (m Model) ToCode(forceAll bool) string {
	if !forceAll {
		if s, ok := m.buf.SelectedText(); ok && s != "" {
			return s
		}
	}
	return m.buf.Text()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height
	if m.sizer.Resize(width, height) {
		log.Debug(log.CatUI, "gutter resized", "width", m.sizer.Width())
	}

	m.rebuildContent()
	m.followCursorWithForce(true)
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursorWithForce(true)
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		if m.syncFromBuffer() {
			m.followCursorWithForce(true)
		}
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		// Rebuild content in case the host mutated the buffer outside of the editor.
		m.syncFromBuffer()
		m.rebuildContent()
		// Don't force-follow cursor here; allow manual scrolling via mouse wheel.
		return m, cmd
	default:
		// Hosts may drive edits by mutating the buffer directly.
		if m.syncFromBuffer() {
			m.followCursorWithForce(true)
		}
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// syncFromBuffer catches the highlighter and gutter up with the buffer and
// reports whether the cursor moved.
func (m *Model) syncFromBuffer() (cursorChanged bool) {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	textChanged := m.buf.TextVersion() != m.lastTextVersion
	if textChanged {
		m.syncHighlight()
		if m.sizer.SetLineCount(m.buf.LineCount()) {
			log.Debug(log.CatUI, "gutter resized", "lines", m.buf.LineCount(), "width", m.sizer.Width())
		}
	}
	m.lastBufVersion = ver
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = cur
	m.rebuildContent()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, textChanged))
	}
	return cursorChanged
}

// syncHighlight feeds the last buffer change to the driver. When more than
// one text change happened since the last sync the driver starts over.
func (m *Model) syncHighlight() {
	ch, ok := m.buf.LastChange()
	if ok && len(ch.AppliedEdits) > 0 && m.buf.TextVersion() == m.lastTextVersion+1 {
		rows := m.driver.ApplyChange(m.buf, ch)
		log.Debug(log.CatHighlight, "change applied", "source", ch.Source, "rows", len(rows))
		return
	}
	rows := m.driver.Reset(m.buf)
	log.Debug(log.CatHighlight, "highlight reset", "rows", len(rows))
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursorWithForce(force bool) {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	switch {
	case cur.Row < y:
		m.viewport.SetYOffset(cur.Row)
	case cur.Row >= y+h:
		m.viewport.SetYOffset(cur.Row - h + 1)
	default:
		return
	}
	// Newly visible rows were rendered without styling.
	if force {
		m.rebuildContent()
	}
}
