// Package mapper implements the key remapping engine: it buffers raw key
// bytes, matches them incrementally against the mapping table, waits out
// ambiguity between shorter and longer candidates, and hands confirmed keys
// to the downstream consumer one at a time.
package mapper

import (
	"time"

	"github.com/kasperlewau/vimb/internal/input/keymap"
	"github.com/kasperlewau/vimb/internal/input/mode"
)

// QueueSize bounds the number of undispatched key bytes. Input beyond the
// bound is silently dropped.
const QueueSize = 64

// DefaultTimeout is the disambiguation window for ambiguous prefixes.
const DefaultTimeout = 1000 * time.Millisecond

// State is the outcome of one HandleKeys call.
type State int

const (
	// StateDone means the queue drained and at least one key resolved,
	// through a mapping or as a literal.
	StateDone State = iota
	// StateNoMatch means the queue drained with nothing to resolve.
	StateNoMatch
	// StateAmbiguous means resolution paused on a prefix that could still
	// grow into a longer mapping; more input or the timeout continues it.
	StateAmbiguous
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDone:
		return "done"
	case StateNoMatch:
		return "no-match"
	case StateAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// ModeState exposes the active mode scope to the engine.
type ModeState interface {
	// ModeID returns the identifier used to scope table lookups.
	ModeID() mode.ID

	// RemapSuppressed reports whether the next key bypasses the table.
	RemapSuppressed() bool

	// ClearRemapSuppress clears the flag. Called for every drained key.
	ClearRemapSuppress()
}

// Consumer receives resolved keys one at a time.
type Consumer interface {
	// ConsumeKey handles one key and reports whether it still awaits more
	// keys to complete the current command.
	ConsumeKey(b byte) (more bool)
}

// Display mirrors pending and typed keys for on-screen feedback.
type Display interface {
	// Show renders keys, resetting first unless append is set.
	Show(keys []byte, append bool)

	// Clear empties the display.
	Clear()
}

// TimerFunc schedules fire to run once after d and returns a cancel
// function. The default uses time.AfterFunc; hosts running an event loop
// wire fire to post a timeout event instead of calling the engine directly.
type TimerFunc func(d time.Duration, fire func()) (cancel func())

func afterFunc(d time.Duration, fire func()) func() {
	t := time.AfterFunc(d, fire)
	return func() { t.Stop() }
}

// Mapper is the resolution engine. All methods must be called from the
// single goroutine that runs the host event loop; the only asynchronous
// element is the disambiguation timer, whose fire callback is expected to
// re-enter HandleKeys from that same loop.
type Mapper struct {
	table    *keymap.Table
	modes    ModeState
	consumer Consumer
	display  Display

	queue    [QueueSize]byte
	qlen     int // number of valid bytes in queue
	resolved int // confirmed bytes at the front, awaiting dispatch

	timeout     time.Duration
	timer       TimerFunc
	cancelTimer func()
	onTimeout   func()
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithTimeout sets the disambiguation window.
func WithTimeout(d time.Duration) Option {
	return func(m *Mapper) { m.timeout = d }
}

// WithTimerFunc replaces the timer implementation. Tests inject a fake to
// drive timeouts deterministically.
func WithTimerFunc(fn TimerFunc) Option {
	return func(m *Mapper) { m.timer = fn }
}

// WithTimeoutNotify sets what the timer invokes when it fires. Defaults to
// calling HandleKeys with the zero-length timeout signal directly; an event
// loop host replaces it with a function that posts a timeout event.
func WithTimeoutNotify(fn func()) Option {
	return func(m *Mapper) { m.onTimeout = fn }
}

// New creates a resolution engine bound to its collaborators.
func New(table *keymap.Table, modes ModeState, consumer Consumer, display Display, opts ...Option) *Mapper {
	m := &Mapper{
		table:    table,
		modes:    modes,
		consumer: consumer,
		display:  display,
		timeout:  DefaultTimeout,
		timer:    afterFunc,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.onTimeout == nil {
		m.onTimeout = func() { m.HandleKeys(nil) }
	}
	return m
}

// QueueLen returns the number of queued, undispatched key bytes.
func (m *Mapper) QueueLen() int { return m.qlen }

// Pending returns a copy of the queued bytes. Diagnostic only.
func (m *Mapper) Pending() []byte {
	p := make([]byte, m.qlen)
	copy(p, m.queue[:m.qlen])
	return p
}

// Close cancels any pending disambiguation timer.
func (m *Mapper) Close() {
	m.stopTimer()
}

// HandleTimeout signals that the disambiguation window elapsed without
// further input. Equivalent to HandleKeys with the zero-length signal.
func (m *Mapper) HandleTimeout() State {
	return m.HandleKeys(nil)
}

// HandleKeys appends raw key bytes to the queue and resolves them against
// the mapping table. A zero-length keys slice is the reserved timeout
// signal, not an empty input: it forces pending ambiguity to resolve.
func (m *Mapper) HandleKeys(keys []byte) State {
	timeout := len(keys) == 0

	// Every real keystroke restarts the ambiguity window.
	if !timeout {
		m.stopTimer()
		m.cancelTimer = m.timer(m.timeout, m.onTimeout)
	} else {
		// The one-shot timer just fired; forget its cancel handle.
		m.cancelTimer = nil
	}

	// Take what fits, drop the rest.
	n := copy(m.queue[m.qlen:], keys)
	m.qlen += n

	resolvedAny := false
	for {
		// Drain confirmed keys to the consumer.
		for m.resolved > 0 {
			m.resolved--
			m.qlen--

			qk := m.queue[0]
			copy(m.queue[:m.qlen], m.queue[1:m.qlen+1])

			m.modes.ClearRemapSuppress()

			if more := m.consumer.ConsumeKey(qk); !more {
				m.display.Clear()
			}
		}

		if m.qlen == 0 {
			m.resolved = 0
			if resolvedAny {
				return StateDone
			}
			return StateNoMatch
		}

		var match *keymap.Record
		ambiguous := 0
		if !m.modes.RemapSuppressed() {
			match, ambiguous = m.table.Lookup(m.queue[:m.qlen], m.modes.ModeID(), timeout)
		}

		// An ambiguous prefix stays queued until more input arrives or
		// the timeout breaks the wait.
		if ambiguous > 0 {
			m.display.Show(m.queue[:m.qlen], false)
			return StateAmbiguous
		}

		if match != nil {
			m.substitute(match)
			resolvedAny = true
			continue
		}

		// No mapping applies: the first queued byte resolves literally.
		m.resolved = 1
		resolvedAny = true
		m.display.Show(m.queue[:1], true)
	}
}

// substitute replaces the matched lhs at the front of the queue with the
// record's rhs, shifting the tail for the length delta. The first
// min(lhs, rhs) bytes are confirmed as resolved; any remaining rhs bytes
// stay queued and are matched again, which is what lets one mapping's
// expansion trigger another.
func (m *Mapper) substitute(rec *keymap.Record) {
	lhsLen, rhsLen := len(rec.LHS), len(rec.RHS)

	newLen := m.qlen + rhsLen - lhsLen
	if newLen > QueueSize {
		// The expansion does not fit; the tail bytes past capacity are
		// dropped, like any other overflow.
		newLen = QueueSize
	}
	rhsFit := min(rhsLen, QueueSize)

	// Move the unmatched tail into place. copy has memmove semantics, so
	// the overlapping shift in either direction is safe.
	if rhsFit < newLen {
		copy(m.queue[rhsFit:newLen], m.queue[lhsLen:m.qlen])
	}

	copy(m.queue[:], rec.RHS[:rhsFit])
	m.qlen = newLen

	m.resolved = min(lhsLen, rhsLen)
	if m.resolved > m.qlen {
		m.resolved = m.qlen
	}
}

func (m *Mapper) stopTimer() {
	if m.cancelTimer != nil {
		m.cancelTimer()
		m.cancelTimer = nil
	}
}
