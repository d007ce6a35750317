package parser

import (
	"fmt"

	"github.com/cwbudde/go-llgen/internal/alloc"
	"github.com/cwbudde/go-llgen/internal/errors"
	"github.com/cwbudde/go-llgen/internal/tables"
)

// ParserState is one running (or reusable) instance of a generated LL
// parser: the table-driven step-loop, its reversible output chunks, and
// the stack and data arena the host allocator owns on its behalf. The
// zero value is not usable; construct one with NewParserState.
type ParserState struct {
	config  Config
	tables  *tables.ParserTables
	sync    *tables.SyncTables
	cb      CBData
	vmTable VMTable
	alloc   alloc.Allocator

	stack  *stack
	data   *dataArena
	chunks [2]*chunk
	active int

	input    []uint16
	inputPos int
	inputEnd int

	// tokensToSkip is the argument the panic-mode resync dispatcher hands
	// to the next PanicSkip observer call.
	tokensToSkip int
	// insertQueue holds terminals synthesized by panic or LEC recovery, in
	// the order their corresponding megaactions will be dispatched.
	insertQueue []uint16

	// lastErr is set whenever Run ends in anything other than OK: either a
	// generator VM case's own returned error (wrapped for uniform
	// formatting) or a *errors.CompilerError describing why recovery gave
	// up. Err() exposes it as a plain error so callers that don't care
	// about the formatting can still just check it's non-nil.
	lastErr error
}

// NewParserState builds the fixed scaffold (chunk pair, table and
// callback wiring) for a parser instance. The stack and data arena are
// not allocated until Init (or the first Run), matching the two-phase
// create/initialize lifecycle: a generator can construct a ParserState
// once per grammar and reuse it across many inputs.
//
// userVM supplies any generator-defined megaaction cases; the five
// built-in recovery-observer cases are registered automatically and take
// precedence only where userVM does not also define them.
func NewParserState(pt *tables.ParserTables, st *tables.SyncTables, cb CBData, userVM VMTable, a alloc.Allocator, cfg Config) *ParserState {
	vmTable := defaultVMTable()
	for id, fn := range userVM {
		vmTable[id] = fn
	}
	p := &ParserState{
		config:  cfg,
		tables:  pt,
		sync:    st,
		cb:      cb,
		vmTable: vmTable,
		alloc:   a,
	}
	p.chunks[0] = newChunk(cfg.ChunkSize)
	p.chunks[1] = newChunk(cfg.ChunkSize)
	return p
}

// Init allocates the stack and data arena at their configured initial
// sizes. Idempotent: Run calls it automatically, so callers only need it
// to pre-warm a ParserState before the first parse.
func (p *ParserState) Init() {
	if p.stack != nil {
		return
	}
	p.stack = newStack(p.alloc, p.config.StackInitial, p.config.StackMax)
	p.data = newDataArena(p.alloc, p.config.DataInitial, p.config.DataMax)
	p.pushStartState()
}

// pushStartState moves the stack pointer past the sentinel and writes the
// grammar's start state, so the very first step has a real (state, token)
// pair to dispatch on.
func (p *ParserState) pushStartState() {
	p.stack.move(1)
	p.stack.setAt(p.stack.sp, p.config.StartState)
}

// Reset rewinds a ParserState for reuse on a new input. The stack's
// backing storage and the data arena keep whatever capacity they grew to;
// only their logical contents and the chunk/position bookkeeping reset.
func (p *ParserState) Reset() {
	p.stack.sp = 0
	p.stack.setAt(0, tables.SentinelState)
	p.pushStartState()
	p.chunks[0].reset()
	p.chunks[1].reset()
	p.active = 0
	p.input = nil
	p.inputPos = 0
	p.inputEnd = 0
	p.tokensToSkip = 0
	p.insertQueue = nil
	p.lastErr = nil
}

// Destroy releases the stack and data arena back to the host allocator.
// Callers that built a ParserState with NewParserState must call Destroy
// exactly once when done with it; Reset alone never frees anything.
func (p *ParserState) Destroy() {
	if p.stack != nil {
		p.stack.destroy()
		p.stack = nil
	}
	if p.data != nil {
		p.data.destroy()
		p.data = nil
	}
}

// Err returns diagnostic detail for the most recent non-OK Result, or nil
// after OK. Its concrete type is *errors.CompilerError, carrying the token
// position Run was at when it gave up and a human-readable message;
// callers that want the caret-and-source-line rendering should type-assert
// and call Format.
func (p *ParserState) Err() error {
	return p.lastErr
}

// failWith records a *errors.CompilerError for the current input position
// unless a more specific error (typically a VM case's own failure,
// recorded by dispatchVM) has already been set.
func (p *ParserState) failWith(format string, args ...any) {
	if p.lastErr != nil {
		return
	}
	pos := errors.Position{TokenIndex: p.inputPos}
	p.lastErr = errors.NewCompilerError(pos, fmt.Sprintf(format, args...), "", "")
}

// Run parses input to completion, applying panic-mode and local error
// correction recovery whenever the step-loop's dispatch fails, and
// dispatches every committed action to the VM along the way. It is safe
// to call Run again on the same ParserState (after Reset) to parse a new
// input with the stack and data arena it has already grown.
// maxRecoveryAttemptsAtPos bounds how many times recovery may run without
// the input cursor making any forward progress. LEC's edit search and
// application operate on different snapshots of the grammar state (the
// search explores hypothetical offsets; application always replays from
// the real error position), so a correction chosen for one state can
// turn out to be a no-op once actually applied. Rather than spin forever
// retrying the same stuck position, Run gives up and reports FatalError
// once this bound is hit.
const maxRecoveryAttemptsAtPos = 3

func (p *ParserState) Run(input []uint16) Result {
	p.Init()
	p.input = input
	p.inputPos = 0
	p.inputEnd = len(input)

	stuckPos := -1
	stuckCount := 0

	for {
		switch outcome := p.runToEnd(false); outcome {
		case stepOK:
			// Exhausting input is necessary but not sufficient: the parse
			// is only accepted once the stack is also back on the
			// sentinel, meaning every pushed production actually reduced.
			// Reaching end of input with anything still on the stack is
			// itself a recoverable failure, handled the same way a
			// mid-stream dispatch failure is.
			if p.stack.atSentinel() {
				if !p.drain() {
					p.failWith("data arena exhausted while dispatching the final actions")
					return OutOfMemory
				}
				return OK
			}
			fallthrough
		case stepDispatchFail:
			if p.inputPos == stuckPos {
				stuckCount++
			} else {
				stuckPos = p.inputPos
				stuckCount = 1
			}
			if stuckCount > maxRecoveryAttemptsAtPos {
				p.drain()
				p.failWith("no forward progress after %d recovery attempts at token %d", maxRecoveryAttemptsAtPos, p.inputPos)
				return FatalError
			}
			if !p.recoverFromFailure() {
				// Actions already dispatched to the VM before the
				// failure remain observable; drain whatever the active
				// chunk still holds before reporting fatal.
				p.drain()
				p.failWith("no recovery strategy resynchronized the parser at token %d", p.inputPos)
				return FatalError
			}
		case stepStackOverflow:
			p.failWith("parser stack exceeded its configured maximum at token %d", p.inputPos)
			return StackOverflow
		case stepOutOfMemory:
			p.failWith("data arena exceeded its configured maximum at token %d", p.inputPos)
			return OutOfMemory
		}
	}
}
