// Package mode manages the interaction modes of the key-input subsystem.
//
// A mode decides what a resolved key means. The mapping engine only reads
// the active mode identifier (to scope table lookups) and the suppress-remap
// flag; everything else about a mode is private to this package.
package mode

// ID identifies a mode. The single-byte form mirrors the mode letters used
// in mapping commands (nmap, imap, ...).
type ID byte

// Built-in mode identifiers.
const (
	ModeNormal      ID = 'n'
	ModeInput       ID = 'i'
	ModeCommand     ID = 'c'
	ModePassThrough ID = 'p'
)

// String returns a human-readable mode name for logging and the status line.
func (id ID) String() string {
	switch id {
	case ModeNormal:
		return "normal"
	case ModeInput:
		return "input"
	case ModeCommand:
		return "command"
	case ModePassThrough:
		return "pass-through"
	default:
		return "unknown"
	}
}

// ParseID maps a mode name to its identifier. Recognizes both the long
// names and the single-letter forms used in map files.
func ParseID(name string) (ID, bool) {
	switch name {
	case "normal", "n":
		return ModeNormal, true
	case "input", "insert", "i":
		return ModeInput, true
	case "command", "c":
		return ModeCommand, true
	case "pass-through", "passthrough", "p":
		return ModePassThrough, true
	}
	return 0, false
}

// Result reports how a mode handled a resolved key.
type Result int

const (
	// ResultComplete means the key finished a command.
	ResultComplete Result = iota
	// ResultMore means the mode is waiting for further keys to complete
	// the current command.
	ResultMore
	// ResultError means the key did not form a valid command.
	ResultError
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultComplete:
		return "complete"
	case ResultMore:
		return "more"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Mode defines the interface for interaction modes.
type Mode interface {
	// ID returns the unique mode identifier.
	ID() ID

	// Enter is called when the mode becomes active.
	Enter()

	// Leave is called when another mode takes over.
	Leave()

	// HandleKey interprets one resolved key byte.
	HandleKey(b byte) Result
}
