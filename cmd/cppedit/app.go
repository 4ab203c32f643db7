package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/cppedit/editor"
	"github.com/iw2rmb/cppedit/internal/log"
)

type appKeys struct {
	Save, Quit key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9E9")).Background(lipgloss.Color("#3498DB"))

// app hosts the editor widget with a one-line status bar.
type app struct {
	editor editor.Model
	keys   appKeys

	path         string
	savedVersion uint64
	status       string
	width        int
}

func newApp(cfg editor.Config, path string) app {
	m := app{
		editor: editor.New(cfg),
		keys:   defaultAppKeys(),
		path:   path,
	}
	m.savedVersion = m.editor.Buffer().TextVersion()
	return m
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *app) save() {
	if m.path == "" {
		m.status = "no file name"
		return
	}
	if err := os.WriteFile(m.path, []byte(m.editor.ToCode(true)), 0o644); err != nil {
		log.ErrorErr(log.CatUI, "save failed", err, "path", m.path)
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.savedVersion = m.editor.Buffer().TextVersion()
	m.status = "saved " + m.path
	log.Info(log.CatUI, "saved", "path", m.path, "lines", m.editor.Buffer().LineCount())
}

func (m app) modified() bool {
	return m.editor.Buffer().TextVersion() != m.savedVersion
}

func (m app) statusLine() string {
	name := m.path
	if name == "" {
		name = "[new]"
	}
	if m.modified() {
		name += " *"
	}
	row := m.editor.Buffer().Cursor().Row
	s := fmt.Sprintf(" %s  %d:%d", name, row+1, m.editor.CursorCell()+1)
	if m.status != "" {
		s += "  " + m.status
	}
	return statusStyle.Width(m.width).Render(s)
}

func (m app) View() string {
	return m.editor.View() + "\n" + m.statusLine()
}
