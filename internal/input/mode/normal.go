package mode

// Action is a command emitted by a mode once a key sequence completes.
type Action struct {
	// Name identifies the command, e.g. "scroll.down" or "quit".
	Name string

	// Count is the numeric prefix, 0 when none was typed.
	Count int

	// Arg carries command-line text for submitted commands.
	Arg string
}

// Env gives modes access to their surroundings: switching modes and
// emitting completed actions.
type Env struct {
	// Switch changes the active mode.
	Switch func(id ID) error

	// Do executes a completed action.
	Do func(action Action)
}

// NormalMode interprets single keys and short multi-key commands, vi style.
// Digits accumulate a count, 'g' starts a two-key command, ':' enters
// command mode and 'i' enters input mode.
type NormalMode struct {
	env Env

	count   int
	pending byte // first byte of a two-key command, 0 when none
}

// NewNormalMode creates the normal mode.
func NewNormalMode(env Env) *NormalMode {
	return &NormalMode{env: env}
}

// ID returns the normal mode identifier.
func (m *NormalMode) ID() ID { return ModeNormal }

// Enter resets any partially typed command.
func (m *NormalMode) Enter() {
	m.count = 0
	m.pending = 0
}

// Leave implements Mode.
func (m *NormalMode) Leave() {}

// HandleKey interprets one resolved key.
func (m *NormalMode) HandleKey(b byte) Result {
	if m.pending != 0 {
		return m.finishPrefixed(b)
	}

	switch {
	case b >= '1' && b <= '9', b == '0' && m.count > 0:
		m.count = m.count*10 + int(b-'0')
		return ResultMore
	case b == 'g':
		m.pending = b
		return ResultMore
	case b == ':':
		m.reset()
		return m.switchTo(ModeCommand)
	case b == 'i':
		m.reset()
		return m.switchTo(ModeInput)
	}

	if name, ok := normalCommands[b]; ok {
		m.do(name)
		return ResultComplete
	}

	m.reset()
	return ResultError
}

// finishPrefixed completes a two-key command started by a prefix key.
func (m *NormalMode) finishPrefixed(b byte) Result {
	prefix := m.pending
	m.pending = 0

	if name, ok := prefixedCommands[[2]byte{prefix, b}]; ok {
		m.do(name)
		return ResultComplete
	}

	m.reset()
	return ResultError
}

func (m *NormalMode) do(name string) {
	count := m.count
	m.reset()
	if m.env.Do != nil {
		m.env.Do(Action{Name: name, Count: count})
	}
}

func (m *NormalMode) switchTo(id ID) Result {
	if m.env.Switch != nil {
		if err := m.env.Switch(id); err != nil {
			return ResultError
		}
	}
	return ResultComplete
}

func (m *NormalMode) reset() {
	m.count = 0
	m.pending = 0
}

// normalCommands are the single-key commands of normal mode.
var normalCommands = map[byte]string{
	'j':  "scroll.down",
	'k':  "scroll.up",
	'h':  "scroll.left",
	'l':  "scroll.right",
	'G':  "scroll.bottom",
	'r':  "reload",
	'y':  "yank.uri",
	'p':  "open.clipboard",
	0x04: "scroll.halfdown", // <C-d>
	0x15: "scroll.halfup",   // <C-u>
	0x06: "scroll.pagedown", // <C-f>
	0x02: "scroll.pageup",   // <C-b>
	0x0f: "history.back",    // <C-o>
	0x09: "history.forward", // <C-i>
	0x10: "tab.prev",        // <C-p>
	0x0e: "tab.next",        // <C-n>
	0x11: "quit",            // <C-q>
}

// prefixedCommands are two-key commands.
var prefixedCommands = map[[2]byte]string{
	{'g', 'g'}: "scroll.top",
	{'g', 'h'}: "open.home",
	{'g', 'H'}: "open.home.tab",
	{'g', 'u'}: "uri.up",
	{'g', 'U'}: "uri.root",
}
