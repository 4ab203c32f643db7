package buffer

// Apply applies a sequence of text edits in order as one undoable step. Each
// edit's range is interpreted against the buffer state at the time that edit
// is applied.
//
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
// - Selection is cleared if any edit applies.
func (b *Buffer) Apply(edits ...TextEdit) {
	if len(edits) == 0 {
		return
	}
	b.commitEdits(edits, nil, nil)
}

// Transaction is a group of edits with an explicit resulting cursor and
// selection.
type Transaction struct {
	Edits []TextEdit
	// Cursor, when set, is the cursor after the edits.
	Cursor *Pos
	// Selection, when set and non-empty, is the selection after the edits.
	// The cursor moves to its End.
	Selection *Range
}

// Commit applies tx as one undoable step and reports whether the text
// changed. A transaction whose edits are all no-ops leaves the buffer
// untouched, including cursor and selection.
func (b *Buffer) Commit(tx Transaction) bool {
	if len(tx.Edits) == 0 {
		return false
	}
	return b.commitEdits(tx.Edits, tx.Cursor, tx.Selection)
}
