package parser

// CBData is the set of user-supplied callbacks the runtime invokes while
// replaying committed actions and while recovering from errors. Semantic
// actions (string/number materialization,
// function dispatch) are grammar-specific and out of scope for this
// module; CBData carries only the five recovery-observer hooks every
// generated parser must implement. Generator-defined megaaction cases are
// supplied separately, as a VMTable.
type CBData interface {
	// PanicSkip reports that panic-mode resync is advancing the host's
	// token cursor by n tokens.
	PanicSkip(n int)
	// PanicInsert reports that panic-mode resync is synthesizing
	// terminal at the current cursor.
	PanicInsert(terminal uint16)
	// LECInsert reports that LEC is synthesizing terminal at the current
	// cursor. Semantically identical to PanicInsert.
	LECInsert(terminal uint16)
	// LECRemove reports that LEC is discarding the token at the current
	// cursor.
	LECRemove()
	// LECReplace reports that LEC is reassigning the current cursor to a
	// synthesized terminal.
	LECReplace(terminal uint16)
}

// VMCase is a single generator-defined semantic-action case: given the
// running VM state, it writes into the data arena and/or calls into
// CBData, returning an error only for conditions the VM itself cannot
// recover from (reaching VMCase is never itself a parse failure).
type VMCase func(vm *VM) error

// VMTable maps megaaction ids to their generator-defined case bodies. The
// five built-in recovery cases are registered automatically
// by NewParserState; callers populate VMTable with whatever additional
// cases their grammar's generator emitted.
type VMTable map[uint16]VMCase
