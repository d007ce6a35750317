package parser

import "github.com/cwbudde/go-llgen/internal/errors"

// Reserved megaaction ids for the five built-in recovery-observer cases
// every generated parser must implement. Generator-defined cases use any
// other non-zero id.
const (
	MegaPanicSkip    uint16 = 1
	MegaPanicInsert  uint16 = 2
	MegaLECInsert    uint16 = 3
	MegaLECRemove    uint16 = 4
	MegaLECReplace   uint16 = 5
)

// VM is the semantic-action dispatcher's view of a running parse: the data
// arena it writes generator-emitted bytes into, and the user callbacks it
// reports recovery events through. A VM value is only valid for the
// duration of a single VMCase invocation.
type VM struct {
	parser *ParserState
}

// Data returns the live data-arena bytes a case may append to. The
// dispatcher guarantees at least dataArenaGuard bytes of headroom before
// every case runs.
func (vm *VM) Data() *dataArena {
	return vm.parser.data
}

// WriteData appends p to the data arena. Returns false if the arena could
// not grow to hold it (should not happen given the per-iteration guard,
// but generator cases that write more than dataArenaGuard bytes in one
// case must check this).
func (vm *VM) WriteData(p []byte) bool {
	return vm.parser.data.write(p)
}

// Callbacks returns the user-supplied CBData for a case that needs to
// invoke a semantic or recovery-observer hook directly.
func (vm *VM) Callbacks() CBData {
	return vm.parser.cb
}

func builtinPanicSkip(vm *VM) error {
	p := vm.parser
	p.cb.PanicSkip(p.tokensToSkip)
	return nil
}

func builtinPanicInsert(vm *VM) error {
	p := vm.parser
	p.cb.PanicInsert(p.nextInsertTerminal())
	return nil
}

func builtinLECInsert(vm *VM) error {
	p := vm.parser
	p.cb.LECInsert(p.nextInsertTerminal())
	return nil
}

func builtinLECRemove(vm *VM) error {
	vm.parser.cb.LECRemove()
	return nil
}

func builtinLECReplace(vm *VM) error {
	p := vm.parser
	p.cb.LECReplace(p.nextInsertTerminal())
	return nil
}

func defaultVMTable() VMTable {
	return VMTable{
		MegaPanicSkip:   builtinPanicSkip,
		MegaPanicInsert: builtinPanicInsert,
		MegaLECInsert:   builtinLECInsert,
		MegaLECRemove:   builtinLECRemove,
		MegaLECReplace:  builtinLECReplace,
	}
}

// nextInsertTerminal pops the next synthesized terminal queued by panic or
// LEC recovery.
func (p *ParserState) nextInsertTerminal() uint16 {
	if len(p.insertQueue) == 0 {
		return 0
	}
	t := p.insertQueue[0]
	p.insertQueue = p.insertQueue[1:]
	return t
}

// dispatchVM replays one chunk's committed actions against the VM table in
// order. Before each iteration it ensures the
// data arena has at least dataArenaGuard bytes of headroom, growing (and
// reporting failure) as needed. A case's own returned error is wrapped as
// a *errors.CompilerError so Err() always hands back the same diagnostic
// type regardless of which stage of the parse actually failed.
func (p *ParserState) dispatchVM(c *chunk) bool {
	for i := 0; i < c.outLen; i++ {
		if !p.data.ensure(dataArenaGuard) {
			return false
		}
		code := c.output[i]
		fn, ok := p.vmTable[code]
		if !ok {
			continue
		}
		if err := fn(&VM{parser: p}); err != nil {
			pos := errors.Position{TokenIndex: p.inputPos}
			p.lastErr = errors.NewCompilerError(pos, err.Error(), "", "")
			return false
		}
	}
	return true
}
