package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/internal/log"
	"github.com/iw2rmb/cppedit/smartedit"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertText(string(msg.Runes))
		}
		return m, nil
	}

	km := m.cfg.KeyMap

	if !m.cfg.ReadOnly {
		if ev, ok := smartKeyEvent(msg, km); ok && m.machine.ApplyKey(m.buf, ev) {
			log.Debug(log.CatEdit, "smart key", "key", ev.Key, "cursor", m.buf.Cursor())
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Redo()
		}

	default:
		// Multi-rune input (fast typing, IME) bypasses the smart-edit machine.
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if !m.cfg.ReadOnly {
				m.buf.InsertText(string(msg.Runes))
			}
		}
	}

	return m, nil
}

// smartKeyEvent translates the keys the smart-edit machine owns. Everything
// else reports false.
func smartKeyEvent(msg tea.KeyMsg, km KeyMap) (smartedit.KeyEvent, bool) {
	var mods smartedit.Modifiers
	if msg.Alt {
		mods |= smartedit.ModAlt
	}
	switch {
	case key.Matches(msg, km.Tab):
		return smartedit.KeyEvent{Key: smartedit.KeyTab, Modifiers: mods}, true
	case key.Matches(msg, km.Enter):
		return smartedit.KeyEvent{Key: smartedit.KeyEnter, Modifiers: mods}, true
	case key.Matches(msg, km.Backspace):
		return smartedit.KeyEvent{Key: smartedit.KeyBackspace, Modifiers: mods}, true
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		return smartedit.KeyEvent{Key: smartedit.KeyRune, Rune: msg.Runes[0], Modifiers: mods}, true
	case msg.Type == tea.KeySpace:
		return smartedit.KeyEvent{Key: smartedit.KeyRune, Rune: ' ', Modifiers: mods}, true
	}
	return smartedit.KeyEvent{}, false
}
