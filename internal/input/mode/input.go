package mode

// InputMode forwards typed text to a focused input element. Escape returns
// to normal mode; everything else completes immediately.
type InputMode struct {
	env Env

	// Text accumulates the typed bytes. The demo application shows it on
	// the status line; a real embedder would feed the focused widget.
	text []byte
}

// NewInputMode creates the input mode.
func NewInputMode(env Env) *InputMode {
	return &InputMode{env: env}
}

// ID returns the input mode identifier.
func (m *InputMode) ID() ID { return ModeInput }

// Enter clears the captured text.
func (m *InputMode) Enter() {
	m.text = m.text[:0]
}

// Leave implements Mode.
func (m *InputMode) Leave() {}

// Text returns the text typed since entering the mode.
func (m *InputMode) Text() string { return string(m.text) }

// HandleKey interprets one resolved key.
func (m *InputMode) HandleKey(b byte) Result {
	switch b {
	case 0x1b: // <Esc>
		if m.env.Switch != nil {
			_ = m.env.Switch(ModeNormal)
		}
		return ResultComplete
	case '\n':
		if m.env.Do != nil {
			m.env.Do(Action{Name: "input.submit", Arg: string(m.text)})
		}
		m.text = m.text[:0]
		return ResultComplete
	case 0x08: // backspace
		if len(m.text) > 0 {
			m.text = m.text[:len(m.text)-1]
		}
		return ResultComplete
	}

	m.text = append(m.text, b)
	return ResultComplete
}
