// Package notation translates human-authored key-sequence strings into the
// raw key bytes used by the mapping engine.
//
// A sequence is plain characters plus symbolic <...> tokens:
//
//   - "<C-a>".."<C-z>" (either case) become the control bytes 0x01..0x1A,
//     and "<C-[>".."<C-]>" the extended control range, matching terminal
//     control-character encoding.
//   - "<CR>", "<Tab>" and "<Esc>" become newline, tab and escape.
//   - Any other token, or a "<" with no closing ">", passes through
//     literally, brackets included.
package notation

// Named key labels. Matched case-sensitively against the whole token.
var keyLabels = []struct {
	label string
	raw   byte
}{
	{"<CR>", '\n'},
	{"<Tab>", '\t'},
	{"<Esc>", 0x1b},
}

// Translate converts a key-sequence string into raw key bytes.
// An empty input yields an empty (nil-safe, zero-length) result.
func Translate(text string) []byte {
	raw := make([]byte, 0, len(text))

	for i := 0; i < len(text); i++ {
		if text[i] != '<' {
			raw = append(raw, text[i])
			continue
		}

		// Scan for the matching '>'. A second '<', a space or the end of
		// input ends the token early, leaving it unterminated.
		symlen := 1
		for i+symlen < len(text) && text[i+symlen] != '<' && text[i+symlen] != ' ' {
			ch := text[i+symlen]
			symlen++
			if ch == '>' {
				break
			}
		}

		token := text[i : i+symlen]
		if b, ok := translateToken(token); ok {
			raw = append(raw, b)
		} else {
			// Unknown or unterminated token: keep the chars literally.
			raw = append(raw, token...)
		}
		i += symlen - 1
	}

	return raw
}

// translateToken converts one well-formed <...> token into a single raw
// byte. Reports false for tokens that have no symbolic meaning.
func translateToken(token string) (byte, bool) {
	if token[len(token)-1] != '>' {
		return 0, false
	}

	// <C-x> control keys.
	if len(token) == 5 && token[1] == 'C' && token[2] == '-' {
		switch c := token[3]; {
		case c >= 0x41 && c <= 0x5d: // A..]
			return c - 0x40, true
		case c >= 0x61 && c <= 0x7a: // a..z
			return c - 0x60, true
		}
	}

	for _, kl := range keyLabels {
		if token == kl.label {
			return kl.raw, true
		}
	}

	return 0, false
}
