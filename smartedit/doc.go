// Package smartedit applies the indentation-aware key behaviors of the
// editor to a buffer: tab-stop Tab, auto-indenting Enter, surrounding a
// selection with a delimiter pair, and Backspace that snaps to tab stops.
//
// Each handled key is committed as one undo step.
package smartedit
