package mode

// PassThroughMode hands every key to the embedder unchanged. Only Escape is
// interpreted, returning to normal mode. Mappings still apply when defined
// for this mode; users who want none simply define none.
type PassThroughMode struct {
	env Env
}

// NewPassThroughMode creates the pass-through mode.
func NewPassThroughMode(env Env) *PassThroughMode {
	return &PassThroughMode{env: env}
}

// ID returns the pass-through mode identifier.
func (m *PassThroughMode) ID() ID { return ModePassThrough }

// Enter implements Mode.
func (m *PassThroughMode) Enter() {}

// Leave implements Mode.
func (m *PassThroughMode) Leave() {}

// HandleKey forwards one resolved key.
func (m *PassThroughMode) HandleKey(b byte) Result {
	if b == 0x1b { // <Esc>
		if m.env.Switch != nil {
			_ = m.env.Switch(ModeNormal)
		}
		return ResultComplete
	}
	if m.env.Do != nil {
		m.env.Do(Action{Name: "passthrough.key", Count: int(b)})
	}
	return ResultComplete
}
