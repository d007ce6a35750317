// Package llgen is the public facade over the lexer and parser runtimes a
// generated recognizer links against: a generator emits tables, and the
// host program wires them into a lexer.Driver and a parser.ParserState
// through the types re-exported here.
package llgen

import (
	"github.com/cwbudde/go-llgen/internal/alloc"
	"github.com/cwbudde/go-llgen/internal/lexer"
	"github.com/cwbudde/go-llgen/internal/parser"
	"github.com/cwbudde/go-llgen/internal/tables"
)

// Re-exported table types a generator's output populates.
type (
	EquivTable           = tables.EquivTable
	TransitionTable      = tables.TransitionTable
	AcceptTable          = tables.AcceptTable
	FinalTransitionTable = tables.FinalTransitionTable
	ParserTables         = tables.ParserTables
	SyncTables           = tables.SyncTables
	TableEntry           = tables.TableEntry
)

// Re-exported runtime types.
type (
	Sink       = lexer.Sink
	SliceSink  = lexer.SliceSink
	LexerOption = lexer.Option

	Allocator   = alloc.Allocator
	NativeAlloc = alloc.Native
	ArenaAlloc  = alloc.Arena

	CBData        = parser.CBData
	VM            = parser.VM
	VMCase        = parser.VMCase
	VMTable       = parser.VMTable
	Correction    = parser.Correction
	CorrectionKind = parser.CorrectionKind
	Config        = parser.Config
	Result        = parser.Result
)

// Re-exported constants and constructors.
var (
	NewSliceSink    = lexer.NewSliceSink
	WithUnroll      = lexer.WithUnroll
	WithStartState  = lexer.WithStartState
	WithEOFToken    = lexer.WithEOFToken
	NewLexerDriver  = lexer.NewDriver
	NewArena        = alloc.NewArena
	DefaultConfig   = parser.DefaultConfig
	NewParserState  = parser.NewParserState
)

const (
	OK            = parser.OK
	OutOfMemory   = parser.OutOfMemory
	StackOverflow = parser.StackOverflow
	FatalError    = parser.FatalError
)

// LexerDriver is the generated lexer's driver type.
type LexerDriver = lexer.Driver

// ParserState is the generated parser's runtime state type.
type ParserState = parser.ParserState

// Lex runs a generated lexer over src and returns the resulting token id
// and start-offset streams, as a convenience for callers who just want
// the vectors rather than a streaming Sink.
func Lex(equiv *EquivTable, trans *TransitionTable, accept AcceptTable, final FinalTransitionTable, src []byte, opts ...LexerOption) ([]uint16, []uint32) {
	sink := NewSliceSink(256)
	d := NewLexerDriver(equiv, trans, accept, final, sink, opts...)
	d.Run(src)
	return sink.Tokens(), sink.Offsets()
}
