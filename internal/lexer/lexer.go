// Package lexer implements the generated DFA lexer driver: a
// byte-equivalence-class DFA that consumes a contiguous byte range and
// emits (token_id, offset) pairs into a sink-vended double buffer.
//
// The driver is intentionally table-blind: it knows nothing about any
// particular grammar. Equivalence classes, transition words, and accept ids
// all come from internal/tables, which the (out-of-scope) generator
// produces and tests build by hand.
package lexer

import "github.com/cwbudde/go-llgen/internal/tables"

// defaultUnroll is the compile-time-ish unroll width used when callers
// don't override it with WithUnroll. Any value >= 1 is valid; 4 is a
// reasonable default for byte-at-a-time DFA dispatch.
const defaultUnroll = 4

// Driver drives the generated DFA over a byte slice, reporting tokens
// through a Sink. A Driver is reusable across calls to Run but is not safe
// for concurrent use.
type Driver struct {
	equiv *tables.EquivTable
	trans *tables.TransitionTable
	accept tables.AcceptTable
	final  tables.FinalTransitionTable
	sink   Sink

	unroll     int
	startState uint16
	eofToken   uint16
}

// Option configures a Driver at construction time, following the same
// functional-options shape used throughout this module's ambient stack.
type Option func(*Driver)

// WithUnroll overrides the inner-loop unroll width.
func WithUnroll(n int) Option {
	return func(d *Driver) {
		if n >= 1 {
			d.unroll = n
		}
	}
}

// WithStartState overrides the DFA's initial state (default 0).
func WithStartState(state uint16) Option {
	return func(d *Driver) {
		d.startState = state
	}
}

// WithEOFToken overrides the synthetic end-of-input token id emitted by
// Finalize (default 0xFFFF).
func WithEOFToken(id uint16) Option {
	return func(d *Driver) {
		d.eofToken = id
	}
}

// NewDriver builds a Driver over the given generated tables and sink.
func NewDriver(equiv *tables.EquivTable, trans *tables.TransitionTable, accept tables.AcceptTable, final tables.FinalTransitionTable, sink Sink, opts ...Option) *Driver {
	d := &Driver{
		equiv:    equiv,
		trans:    trans,
		accept:   accept,
		final:    final,
		sink:     sink,
		unroll:   defaultUnroll,
		eofToken: 0xFFFF,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run scans input to completion, calling the sink's GetBuffer/OnOutput as
// needed, and finishes with a single Finalize step that flushes any
// trailing in-progress token and appends the synthetic end-of-input marker
// at offset len(input). Run has no error return: malformed input simply
// surfaces as whatever token id the generated accept table assigns to it.
func (d *Driver) Run(input []byte) {
	tokens, offsets := d.sink.GetBuffer()
	idx := 0
	state := d.startState
	tokenStart := uint32(0)
	pos := 0
	n := len(input)

	ensure := func(need int) {
		if len(tokens)-idx < need {
			d.sink.OnOutput(idx)
			tokens, offsets = d.sink.GetBuffer()
			idx = 0
		}
	}

	// step processes one byte, writing the accept entry for a token that
	// is closing (gated on the transition word's emit bit) and advancing
	// the DFA state. tokenStart tracks where the token now being built
	// began, so the entry written when it eventually closes records its
	// start offset rather than the byte that closed it. A byte read while
	// the DFA sits in the start state is where the next token can begin,
	// so bytes skipped there (whitespace) move tokenStart forward.
	step := func(b byte) {
		if state == d.startState {
			tokenStart = uint32(pos)
		}
		class := d.equiv.Class(b)
		word := d.trans.Cell(int(state), class)
		if tables.Emits(word) {
			tokens[idx] = d.accept[state]
			offsets[idx] = tokenStart
			idx++
			tokenStart = uint32(pos)
		}
		state = tables.NextState(word)
		pos++
	}

	for pos < n {
		// Unrolled fast path: run when enough input and output remain
		// that no per-byte buffer check is needed inside the loop body.
		if n-pos >= d.unroll && len(tokens)-idx >= d.unroll {
			for u := 0; u < d.unroll; u++ {
				step(input[pos])
			}
			continue
		}
		ensure(1)
		step(input[pos])
	}

	// Finalize: flush any token still open when input ran out, then
	// append the synthetic end-of-input marker. Up to two slots are
	// needed: the trailing flush and the marker itself. Each gets its own
	// room check, so a sink that vends one slot per batch is never
	// overrun.
	word := d.final[state]
	if tables.Emits(word) {
		ensure(1)
		tokens[idx] = d.accept[state]
		offsets[idx] = tokenStart
		idx++
	}
	ensure(1)
	tokens[idx] = d.eofToken
	offsets[idx] = uint32(n)
	idx++

	d.sink.OnOutput(idx)
}
