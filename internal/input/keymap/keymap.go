// Package keymap holds the user-defined key mappings and answers prefix and
// full-match queries for the resolution engine.
package keymap

import (
	"bytes"

	"github.com/kasperlewau/vimb/internal/input/mode"
	"github.com/kasperlewau/vimb/internal/input/notation"
)

// Record is one mapping rule: within Mode, the key bytes LHS are replaced
// by RHS. Both sides are stored in raw (already translated) form and are
// immutable once the record is created.
type Record struct {
	LHS  []byte
	RHS  []byte
	Mode mode.ID
}

// Table is an insertion-ordered mapping collection. New records are
// prepended, so among equal-length matches the most recently inserted one
// wins. The table is not de-duplicated: inserting an lhs/mode pair twice
// shadows the older record, it does not replace it.
type Table struct {
	records []*Record
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Insert translates both sides of a mapping and prepends the record.
func (t *Table) Insert(lhs, rhs string, id mode.ID) {
	rec := &Record{
		LHS:  notation.Translate(lhs),
		RHS:  notation.Translate(rhs),
		Mode: id,
	}
	t.records = append([]*Record{rec}, t.records...)
}

// Delete removes the first record whose mode and translated lhs match
// exactly. Reports whether one was found. The rhs is not compared.
func (t *Table) Delete(lhs string, id mode.ID) bool {
	raw := notation.Translate(lhs)
	for i, rec := range t.records {
		if rec.Mode == id && bytes.Equal(rec.LHS, raw) {
			t.records = append(t.records[:i], t.records[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all records.
func (t *Table) Clear() {
	t.records = nil
}

// Lookup matches the queued bytes against the table for the given mode.
//
// A record whose lhs is longer than the queue but starts with the whole
// queue counts as ambiguous: the queue could still grow into it. Records
// whose lhs is a prefix of the queue are full matches; the longest one is
// returned, with ties broken by scan order (most recently inserted first).
// Timeout lookups skip ambiguity detection entirely so that a stalled wait
// resolves via full match or literal fallback.
func (t *Table) Lookup(queue []byte, id mode.ID, timeout bool) (match *Record, ambiguous int) {
	for _, rec := range t.records {
		if rec.Mode != id {
			continue
		}

		if !timeout && len(rec.LHS) > len(queue) && bytes.HasPrefix(rec.LHS, queue) {
			ambiguous++
		}

		if len(rec.LHS) <= len(queue) && bytes.HasPrefix(queue, rec.LHS) {
			if match == nil || len(match.LHS) < len(rec.LHS) {
				match = rec
			}
		}
	}
	return match, ambiguous
}
