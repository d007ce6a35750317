package parser

import (
	"testing"

	"github.com/cwbudde/go-llgen/internal/alloc"
	"github.com/cwbudde/go-llgen/internal/fixture"
)

// newFixtureCore builds a ParserState from the fixture grammar and runs
// Init, giving white-box tests direct access to step/rewind/chunk state.
func newFixtureCore(t *testing.T) *ParserState {
	t.Helper()
	log := &fixture.Log{}
	cfg := DefaultConfig()
	cfg.StartState = uint16(fixture.StateStmts)
	p := NewParserState(fixture.ParserTables(), nil, log, log.VMTable(), alloc.Native{}, cfg)
	p.Init()
	return p
}

// TestRewindUndoesTrialOutputExactly is a regression test for the chunk
// bookkeeping bug: a trial step reserves an output slot even when its
// table entry carries no Megaaction (needOutput := trial ||
// entry.Megaaction != 0), so rewinding a trial run must restore outLen to
// its pre-trial value by tracking what each step actually reserved, not
// by re-deriving it from the entry after the fact.
func TestRewindUndoesTrialOutputExactly(t *testing.T) {
	p := newFixtureCore(t)
	defer p.Destroy()

	tokens := fixture.Lex([]byte("a; 1;"))
	p.input = tokens
	p.inputPos = 0
	p.inputEnd = len(tokens)

	c := p.chunks[p.active]
	outBefore, rewBefore := c.outLen, c.rewLen

	// Steps 1 and 3 (the pushes) carry no Megaaction; step 2 and 4 (the
	// semicolons) do. A trial run over all four must reserve an output
	// slot for every one of them.
	for i := 0; i < 4; i++ {
		if outcome := p.step(true); outcome != stepOK {
			t.Fatalf("trial step %d failed: %v", i, outcome)
		}
	}
	if c.outLen != outBefore+4 {
		t.Fatalf("after 4 trial steps outLen = %d, want %d", c.outLen, outBefore+4)
	}

	if remaining := p.rewind(4); remaining != 0 {
		t.Fatalf("rewind(4) left %d unsatisfied", remaining)
	}
	if c.outLen != outBefore {
		t.Errorf("outLen after rewind = %d, want %d (pre-trial)", c.outLen, outBefore)
	}
	if c.rewLen != rewBefore {
		t.Errorf("rewLen after rewind = %d, want %d (pre-trial)", c.rewLen, rewBefore)
	}
	if p.inputPos != 0 {
		t.Errorf("inputPos after rewind = %d, want 0", p.inputPos)
	}
}

// TestRewindRealStepsOnlyCountRealOutput checks the non-trial counterpart:
// a real (non-trial) step only reserves an output slot when its table
// entry actually carries a Megaaction, and rewinding it must only undo
// those slots.
func TestRewindRealStepsOnlyCountRealOutput(t *testing.T) {
	p := newFixtureCore(t)
	defer p.Destroy()

	tokens := fixture.Lex([]byte("a;"))
	p.input = tokens
	p.inputPos = 0
	p.inputEnd = len(tokens)

	c := p.chunks[p.active]

	if outcome := p.step(false); outcome != stepOK { // shift 'a', push AfterID, no Megaaction
		t.Fatalf("step 1 failed: %v", outcome)
	}
	if c.outLen != 0 {
		t.Fatalf("outLen after no-action step = %d, want 0", c.outLen)
	}

	if outcome := p.step(false); outcome != stepOK { // shift ';', pop, ActionStmtID
		t.Fatalf("step 2 failed: %v", outcome)
	}
	if c.outLen != 1 {
		t.Fatalf("outLen after action step = %d, want 1", c.outLen)
	}

	if remaining := p.rewind(2); remaining != 0 {
		t.Fatalf("rewind(2) left %d unsatisfied", remaining)
	}
	if c.outLen != 0 {
		t.Errorf("outLen after full rewind = %d, want 0", c.outLen)
	}
	if p.inputPos != 0 {
		t.Errorf("inputPos after full rewind = %d, want 0", p.inputPos)
	}
	if p.stack.top() != uint16(fixture.StateStmts) {
		t.Errorf("stack top after full rewind = %d, want StateStmts", p.stack.top())
	}
}

// TestDrainTakesTwoCycles checks the two-chunk ping-pong directly: the
// first cycleChunks only swaps (the other slot was already empty), and
// the action written to the now-inactive chunk is only handed to the VM
// on the second cycle.
func TestDrainTakesTwoCycles(t *testing.T) {
	p := newFixtureCore(t)
	defer p.Destroy()

	log := p.cb.(*fixture.Log)
	tokens := fixture.Lex([]byte("a;"))
	p.input = tokens
	p.inputPos = 0
	p.inputEnd = len(tokens)

	if outcome := p.tryParse(len(tokens), false); outcome != stepOK {
		t.Fatalf("tryParse failed: %v", outcome)
	}
	writtenTo := p.active

	if !p.cycleChunks() {
		t.Fatal("first cycleChunks failed")
	}
	if len(log.Statements) != 0 {
		t.Fatalf("VM dispatched after only one cycle: %+v", log.Statements)
	}
	if p.chunks[writtenTo].isEmpty() {
		t.Fatal("the chunk holding the committed action should not have been touched yet")
	}

	if !p.cycleChunks() {
		t.Fatal("second cycleChunks failed")
	}
	if len(log.Statements) != 1 {
		t.Fatalf("expected the action to dispatch on the second cycle, got %+v", log.Statements)
	}
	if !p.chunks[writtenTo].isEmpty() {
		t.Error("chunk should be reset after dispatch")
	}
}
