// Package keycode converts terminal key events into the single raw bytes
// the mapping engine consumes. Control-key combinations collapse to their
// control-code bytes and named keys map to fixed control-code equivalents,
// so the whole engine works on plain byte sequences.
package keycode

import "github.com/gdamore/tcell/v2"

// Control-code equivalents for named keys.
const (
	keyEsc      = 0x1b // <C-[>
	keyTab      = '\t' // <C-i>
	keyBacktab  = 0x0f // <C-o>
	keyNewline  = '\n'
	keyBack     = 0x08 // <C-h>
	keyUp       = 0x10 // <C-p>
	keyDown     = 0x0e // <C-n>
)

// FromEvent translates a tcell key event into a raw key byte. Reports
// false for events the engine has no byte representation for (function
// keys, wide runes, mouse-adjacent keys); those pass the engine by.
func FromEvent(ev *tcell.EventKey) (byte, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0 && r < 0x100 {
			return byte(r), true
		}
		return 0, false
	case tcell.KeyEsc:
		return keyEsc, true
	case tcell.KeyTab:
		return keyTab, true
	case tcell.KeyBacktab:
		return keyBacktab, true
	case tcell.KeyEnter:
		return keyNewline, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return keyBack, true
	case tcell.KeyUp:
		return keyUp, true
	case tcell.KeyDown:
		return keyDown, true
	}

	// Remaining control combinations (KeyCtrlA..KeyCtrlZ and the
	// punctuation range) already carry their control code as key value.
	if k := ev.Key(); k > 0 && k < 0x20 {
		return byte(k), true
	}

	return 0, false
}
