package editor

import "github.com/iw2rmb/cppedit/buffer"

// ChangeEvent is passed to Config.OnChange.
type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// TextChanged is set when the text, not only the cursor or selection,
	// changed since the previous event.
	TextChanged bool
	// Change is the last text change recorded by the buffer, if any.
	Change    buffer.Change
	HasChange bool

	Text string
}

func buildChangeEvent(b *buffer.Buffer, textChanged bool) ChangeEvent {
	ev := ChangeEvent{
		Version:     b.Version(),
		Cursor:      b.Cursor(),
		TextChanged: textChanged,
		Text:        b.Text(),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	ev.Change, ev.HasChange = b.LastChange()
	return ev
}
