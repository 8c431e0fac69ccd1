// Package showcmd mirrors pending and typed keys into a small buffer for
// on-screen feedback. The buffer is purely observational: it never feeds
// back into key resolution.
package showcmd

// Size bounds the rendered buffer. Two slots stay reserved so a caret
// escape never gets split at the end.
const Size = 12

// Buffer renders key bytes for display. Control bytes show as two-character
// caret escapes ("^[" for escape) instead of the raw control code.
type Buffer struct {
	buf  [Size]byte
	slen int

	// notify, when set, receives the rendered text after every change.
	notify func(string)
}

// New creates a display buffer. The notify callback may be nil.
func New(notify func(string)) *Buffer {
	return &Buffer{notify: notify}
}

// Show renders keys into the buffer. When append is false the buffer is
// reset first; an empty keys slice clears it. Bytes beyond the remaining
// capacity are dropped.
func (b *Buffer) Show(keys []byte, appendKeys bool) {
	if !appendKeys {
		b.slen = 0
	}

	if len(keys) == 0 {
		b.slen = 0
	} else {
		max := Size - 2
		for _, key := range keys {
			if b.slen >= max {
				break
			}
			if isCtrl(key) {
				b.buf[b.slen] = '^'
				b.buf[b.slen+1] = key ^ 0x40
				b.slen += 2
			} else {
				b.buf[b.slen] = key
				b.slen++
			}
		}
	}

	if b.notify != nil {
		b.notify(b.String())
	}
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.Show(nil, false)
}

// String returns the rendered text.
func (b *Buffer) String() string {
	return string(b.buf[:b.slen])
}

// isCtrl reports whether the byte displays as a caret escape.
func isCtrl(b byte) bool {
	return b < 0x20 || b == 0x7f
}
