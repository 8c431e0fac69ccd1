package mode

// CommandMode collects an ex-style command line. Return submits it, Escape
// cancels, and both return to normal mode.
type CommandMode struct {
	env Env

	line []byte
}

// NewCommandMode creates the command mode.
func NewCommandMode(env Env) *CommandMode {
	return &CommandMode{env: env}
}

// ID returns the command mode identifier.
func (m *CommandMode) ID() ID { return ModeCommand }

// Enter starts a fresh command line.
func (m *CommandMode) Enter() {
	m.line = m.line[:0]
}

// Leave implements Mode.
func (m *CommandMode) Leave() {}

// Line returns the command line typed so far.
func (m *CommandMode) Line() string { return string(m.line) }

// HandleKey interprets one resolved key.
func (m *CommandMode) HandleKey(b byte) Result {
	switch b {
	case '\n':
		line := string(m.line)
		m.line = m.line[:0]
		if m.env.Do != nil {
			m.env.Do(Action{Name: "command.run", Arg: line})
		}
		return m.back()
	case 0x1b: // <Esc>
		m.line = m.line[:0]
		return m.back()
	case 0x08: // backspace
		if len(m.line) == 0 {
			return m.back()
		}
		m.line = m.line[:len(m.line)-1]
		return ResultMore
	}

	m.line = append(m.line, b)
	return ResultMore
}

func (m *CommandMode) back() Result {
	if m.env.Switch != nil {
		_ = m.env.Switch(ModeNormal)
	}
	return ResultComplete
}
