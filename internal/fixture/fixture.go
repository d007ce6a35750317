// Package fixture bundles a tiny, hand-authored grammar -- a flat list of
// "name := value"-free statements, either a bare identifier or a bare
// integer literal, each terminated by a semicolon -- used by the debug
// CLI and by the parser package's end-to-end tests. It stands in for
// what a real generator would emit: lexer equivalence classes and
// transition words, and parser dispatch/base/entry tables.
package fixture

import (
	"github.com/cwbudde/go-llgen/internal/alloc"
	"github.com/cwbudde/go-llgen/internal/lexer"
	"github.com/cwbudde/go-llgen/internal/parser"
	"github.com/cwbudde/go-llgen/internal/tables"
)

// Token ids. EOF is deliberately small (not the lexer package's default
// 0xFFFF sentinel) so it can index directly into the parser's dispatch
// table alongside the other three.
const (
	TokID   uint16 = 0
	TokInt  uint16 = 1
	TokSemi uint16 = 2
	TokEOF  uint16 = 3

	TokenCount = 4
)

// Parser states. 0 is reserved (tables.SentinelState); the grammar's own
// states start at 1.
const (
	StateStmts   uint16 = 1 // awaiting the next statement, or EOF
	StateAfterID uint16 = 2 // saw an identifier, need a semicolon
	StateAfterInt uint16 = 3 // saw an integer, need a semicolon
)

// Generator-defined megaaction ids (the five reserved recovery-observer
// ids live in the parser package; a real generator's own ids start right
// after them).
const (
	ActionStmtID  uint16 = 10
	ActionStmtInt uint16 = 11
)

// LexerTables returns the equivalence classes, transition table, accept
// table, and final-transition table for this grammar's token stream: a
// run of ASCII letters is an identifier, a run of digits is an integer,
// and ';' is a semicolon. Whitespace separates tokens without producing
// any of its own.
func LexerTables() (*tables.EquivTable, *tables.TransitionTable, tables.AcceptTable, tables.FinalTransitionTable) {
	const (
		classLetter = 0
		classDigit  = 1
		classSemi   = 2
		classOther  = 3
		classCount  = 4

		stateStart = 0
		stateID    = 1
		stateInt   = 2
		stateSemi  = 3
	)

	var equiv tables.EquivTable
	for b := 0; b < 256; b++ {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
			equiv[b] = classLetter
		case b >= '0' && b <= '9':
			equiv[b] = classDigit
		case b == ';':
			equiv[b] = classSemi
		default:
			equiv[b] = classOther
		}
	}

	word := func(next uint16, emit bool) uint16 {
		w := next << 1
		if emit {
			w |= 1
		}
		return w
	}

	cells := make([]uint16, (stateSemi+1)*classCount)
	set := func(state, class int, w uint16) { cells[state*classCount+class] = w }

	set(stateStart, classLetter, word(stateID, false))
	set(stateStart, classDigit, word(stateInt, false))
	set(stateStart, classSemi, word(stateSemi, false))
	set(stateStart, classOther, word(stateStart, false))

	set(stateID, classLetter, word(stateID, false))
	set(stateID, classDigit, word(stateInt, true))
	set(stateID, classSemi, word(stateSemi, true))
	set(stateID, classOther, word(stateStart, true))

	set(stateInt, classLetter, word(stateID, true))
	set(stateInt, classDigit, word(stateInt, false))
	set(stateInt, classSemi, word(stateSemi, true))
	set(stateInt, classOther, word(stateStart, true))

	set(stateSemi, classLetter, word(stateID, true))
	set(stateSemi, classDigit, word(stateInt, true))
	set(stateSemi, classSemi, word(stateSemi, true))
	set(stateSemi, classOther, word(stateStart, true))

	trans := &tables.TransitionTable{Cells: cells, ClassCount: classCount}
	accept := tables.AcceptTable{stateStart: 0, stateID: uint16(TokID), stateInt: uint16(TokInt), stateSemi: uint16(TokSemi)}
	final := tables.FinalTransitionTable{stateStart: 0, stateID: 1, stateInt: 1, stateSemi: 1}

	return &equiv, trans, accept, final
}

// NewLexerDriver builds a lexer.Driver for this grammar's tables, emitting
// TokEOF (rather than the package default 0xFFFF) at end of input.
func NewLexerDriver(sink lexer.Sink) *lexer.Driver {
	equiv, trans, accept, final := LexerTables()
	return lexer.NewDriver(equiv, trans, accept, final, sink, lexer.WithEOFToken(TokEOF))
}

// Lex tokenizes src and returns the resulting token stream (offsets
// discarded), ready to feed directly to a ParserTables-driven parse.
func Lex(src []byte) []uint16 {
	sink := lexer.NewSliceSink(64)
	NewLexerDriver(sink).Run(src)
	return sink.Tokens()
}

// ParserTables returns the dispatch/base/entry tables for the grammar:
//
//	Stmts -> Stmt Stmts | EOF
//	Stmt  -> id ';' | int ';'
//
// Every (state, token) pair not listed is a dispatch failure, which
// exercises recovery: a stray leading ';', an identifier or integer not
// followed by ';', or any token once the grammar has already accepted.
func ParserTables() *tables.ParserTables {
	dispatch := make([]uint8, 4*TokenCount)
	for i := range dispatch {
		dispatch[i] = tables.NoDispatch
	}

	type entryDef struct {
		state uint16
		tok   uint16
		entry tables.TableEntry
	}

	defs := []entryDef{
		{StateStmts, TokID, tables.TableEntry{Shift: 1, StateChange: 1, Data: [4]uint16{uint16(StateStmts), uint16(StateAfterID), 0, 0}}},
		{StateStmts, TokInt, tables.TableEntry{Shift: 1, StateChange: 1, Data: [4]uint16{uint16(StateStmts), uint16(StateAfterInt), 0, 0}}},
		{StateStmts, TokEOF, tables.TableEntry{Shift: 1, StateChange: -1, Data: [4]uint16{uint16(StateStmts), 0, 0, 0}}},
		{StateAfterID, TokSemi, tables.TableEntry{Shift: 1, StateChange: -1, Megaaction: ActionStmtID, Data: [4]uint16{uint16(StateAfterID), 0, 0, 0}}},
		{StateAfterInt, TokSemi, tables.TableEntry{Shift: 1, StateChange: -1, Megaaction: ActionStmtInt, Data: [4]uint16{uint16(StateAfterInt), 0, 0, 0}}},
	}

	base := make([]uint32, 4)
	var entries []tables.TableEntry

	byState := map[uint16][]entryDef{}
	for _, d := range defs {
		byState[d.state] = append(byState[d.state], d)
	}
	for state := uint16(1); state <= 3; state++ {
		base[state] = uint32(len(entries))
		for localIdx, d := range byState[state] {
			dispatch[int(state)*TokenCount+int(d.tok)] = uint8(localIdx)
			entries = append(entries, d.entry)
		}
	}

	return &tables.ParserTables{
		Dispatch:   dispatch,
		Base:       base,
		Entries:    entries,
		TokenCount: TokenCount,
	}
}

// Statement is one VM-observed megaaction: the kind of statement and, for
// VM cases that care, nothing more -- this fixture's actions only log,
// they don't materialize values in the data arena.
type Statement struct {
	Kind string
}

// Log is a CBData implementation and megaaction case host that simply
// records what happened, for tests and for the CLI's human-readable
// trace output.
type Log struct {
	Statements []Statement
	PanicSkips []int
	Inserted   []uint16
	Removed    int
	Replaced   []uint16
}

func (l *Log) PanicSkip(n int)           { l.PanicSkips = append(l.PanicSkips, n) }
func (l *Log) PanicInsert(tok uint16)    { l.Inserted = append(l.Inserted, tok) }
func (l *Log) LECInsert(tok uint16)      { l.Inserted = append(l.Inserted, tok) }
func (l *Log) LECRemove()                { l.Removed++ }
func (l *Log) LECReplace(tok uint16)     { l.Replaced = append(l.Replaced, tok) }

// VMTable returns the generator-defined megaaction cases for this
// grammar, bound to l.
func (l *Log) VMTable() parser.VMTable {
	return parser.VMTable{
		ActionStmtID:  func(vm *parser.VM) error { l.Statements = append(l.Statements, Statement{Kind: "id"}); return nil },
		ActionStmtInt: func(vm *parser.VM) error { l.Statements = append(l.Statements, Statement{Kind: "int"}); return nil },
	}
}

// NewParserState builds a ready-to-run ParserState for this grammar,
// wired to a fresh Log. Pass alloc.Native{} for ordinary use, or an
// *alloc.Arena to exercise the OutOfMemory / StackOverflow paths.
func NewParserState(a alloc.Allocator) (*parser.ParserState, *Log) {
	log := &Log{}
	cfg := parser.DefaultConfig()
	cfg.StartState = uint16(StateStmts)
	p := parser.NewParserState(ParserTables(), nil, log, log.VMTable(), a, cfg)
	return p, log
}
