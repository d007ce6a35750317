// Package tables holds the precomputed, read-only data that drives the
// lexer and parser engines. The generator that produces this data is out of
// scope for this module: these types exist so generated tables have a
// well-typed landing spot, and so tests and the debug CLI can build small
// fixture tables by hand.
package tables

// EquivTable maps each of the 256 possible byte values to an equivalence
// class id, collapsing input-alphabet-equivalent bytes down to the stride
// used to index a transition row.
type EquivTable [256]uint8

// Class returns the equivalence class for byte b.
func (t *EquivTable) Class(b byte) uint8 {
	return t[b]
}

// TransitionTable holds, for each (state, equivalence-class) pair, a 16-bit
// cell whose low bit is the token-emit flag and whose remaining bits encode
// the next DFA state. Cells are stored row-major: row i begins at
// i*classCount.
type TransitionTable struct {
	Cells      []uint16
	ClassCount int
}

// Cell returns the transition word for the given state and equivalence
// class.
func (t *TransitionTable) Cell(state int, class uint8) uint16 {
	return t.Cells[state*t.ClassCount+int(class)]
}

// NextState extracts the next DFA state from a transition word.
//
// The reference source packs the next state into the high bits of a word
// that doubles as a byte-offset table pointer (next = T &^ 1), an
// optimization this reimplementation replaces with ordinary index-based
// addressing. This table uses a plain
// (state << 1 | emit) encoding instead, so state ids are small dense
// integers usable directly as slice indices.
func NextState(word uint16) uint16 {
	return word >> 1
}

// Emits reports whether a transition word's emit flag is set.
func Emits(word uint16) bool {
	return word&1 != 0
}

// AcceptTable maps each DFA state to the token id to emit if a token
// boundary is declared while sitting in that state.
type AcceptTable []uint16

// FinalTransitionTable maps each DFA state to the transition word used when
// input ends, so a trailing token can be flushed.
type FinalTransitionTable []uint16
