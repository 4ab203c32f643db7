package smartedit

// Key is the class of a key event.
type Key uint8

const (
	KeyOther Key = iota
	KeyTab
	KeyEnter
	KeyBackspace
	KeyRune
)

func (k Key) String() string {
	switch k {
	case KeyTab:
		return "tab"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyRune:
		return "rune"
	default:
		return "other"
	}
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is one key press. Rune is set for KeyRune.
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers Modifiers
}
