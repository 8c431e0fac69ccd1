package mode

import (
	"errors"
	"fmt"
)

// ErrUnknownMode reports a mode identifier with no registered mode.
var ErrUnknownMode = errors.New("unknown mode")

// Manager holds the registered modes, tracks the active one, and carries the
// per-mode suppress-remap flag read by the mapping engine.
//
// The manager is used from the single goroutine that runs the host event
// loop; it does no locking of its own.
type Manager struct {
	modes   map[ID]Mode
	current Mode

	// suppressRemap makes the next key bypass mapping-table lookup.
	// Cleared unconditionally for every key drained to the consumer.
	suppressRemap bool

	callbacks []ChangeCallback
}

// ChangeCallback is notified after the active mode changes.
type ChangeCallback func(from, to ID)

// NewManager creates an empty mode manager.
func NewManager() *Manager {
	return &Manager{
		modes: make(map[ID]Mode),
	}
}

// Register adds a mode. A mode with the same identifier is replaced.
func (m *Manager) Register(mode Mode) {
	m.modes[mode.ID()] = mode
}

// Enter switches to the mode with the given identifier, calling Leave on
// the old mode and Enter on the new one.
func (m *Manager) Enter(id ID) error {
	next, ok := m.modes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, id)
	}

	var from ID
	if m.current != nil {
		if m.current.ID() == id {
			return nil
		}
		from = m.current.ID()
		m.current.Leave()
	}

	m.current = next
	m.suppressRemap = false
	next.Enter()

	for _, cb := range m.callbacks {
		if cb != nil {
			cb(from, id)
		}
	}
	return nil
}

// Current returns the active mode, or nil if none was entered yet.
func (m *Manager) Current() Mode {
	return m.current
}

// ModeID returns the identifier of the active mode.
func (m *Manager) ModeID() ID {
	if m.current == nil {
		return 0
	}
	return m.current.ID()
}

// RemapSuppressed reports whether the next key skips table lookup.
func (m *Manager) RemapSuppressed() bool {
	return m.suppressRemap
}

// SuppressRemap makes the next key bypass remapping.
func (m *Manager) SuppressRemap() {
	m.suppressRemap = true
}

// ClearRemapSuppress clears the suppress-remap flag.
func (m *Manager) ClearRemapSuppress() {
	m.suppressRemap = false
}

// ConsumeKey feeds one resolved key to the active mode and reports whether
// the mode still awaits more keys for the current command.
func (m *Manager) ConsumeKey(b byte) bool {
	if m.current == nil {
		return false
	}
	return m.current.HandleKey(b) == ResultMore
}

// OnChange registers a callback for mode changes. Returns a function that
// unregisters it.
func (m *Manager) OnChange(cb ChangeCallback) func() {
	m.callbacks = append(m.callbacks, cb)
	index := len(m.callbacks) - 1
	return func() {
		m.callbacks[index] = nil
	}
}
