package parser

// stepOutcome is the internal result of a single Step or RunToEnd
// iteration. Only stepDispatchFail is "interesting" at the API boundary:
// it is not an error — it is the trigger for recovery.
type stepOutcome int

const (
	stepOK stepOutcome = iota
	stepDispatchFail
	stepStackOverflow
	stepOutOfMemory
)

// step runs one iteration of the parser core:
//
//  1. Read state = *stack, tok = *input.
//  2. Dispatch on (state, tok); dispatch = "no entry" is a fail.
//  3. Look up the table entry the dispatch selects.
//  4. Append (state, entry_id) to the active chunk's rewind journal.
//  5. Apply the entry: advance input by Shift, overwrite the stack's
//     top-of-stack window, move the stack pointer, and emit Megaaction to
//     output iff it is non-zero.
//
// When trial is true (used by LEC's speculative parses; Run's own
// runToEnd passes false),
// every step reserves and writes an output slot regardless of whether
// Megaaction is zero, so a caller tracking "how far did this trial reach"
// can correlate step count with output-chunk occupancy 1:1.
func (p *ParserState) step(trial bool) stepOutcome {
	state := p.stack.top()
	tok := p.input[p.inputPos]

	entry, entryID, ok := p.tables.Lookup(state, tok)
	if !ok {
		return stepDispatchFail
	}

	c := p.chunks[p.active]
	needOutput := trial || entry.Megaaction != 0
	if c.rewindFull() || (needOutput && c.outputFull()) {
		if !p.cycleChunks() {
			return stepOutOfMemory
		}
		c = p.chunks[p.active]
	}

	c.priorStates[c.rewLen] = state
	c.entryIDs[c.rewLen] = entryID
	c.hadOutput[c.rewLen] = needOutput
	c.rewLen++

	p.inputPos += int(entry.Shift)
	p.stack.writeWindow(entry.Data)
	p.stack.move(entry.StateChange)
	if needOutput {
		c.output[c.outLen] = entry.Megaaction
		c.outLen++
	}

	if !p.stack.ensureRoom() {
		return stepStackOverflow
	}
	return stepOK
}

// tryParse repeatedly steps until inputPos reaches limitPos or a step
// fails to reach it. It is the shared primitive behind RunToEnd (limit ==
// input end), greedy_consume (limit == a specific recovery target), and
// LEC's single-step and multi-step trial harnesses.
func (p *ParserState) tryParse(limitPos int, trial bool) stepOutcome {
	for p.inputPos < limitPos {
		if outcome := p.step(trial); outcome != stepOK {
			return outcome
		}
	}
	return stepOK
}

// runToEnd drives the core loop until input is exhausted. Reaching the end
// of input here only means every token dispatched; it is the caller's job
// (Run) to additionally check the stack sits on the sentinel state before
// treating the parse as accepted.
func (p *ParserState) runToEnd(trial bool) stepOutcome {
	return p.tryParse(p.inputEnd, trial)
}

// cycleChunks is the commit operation: if the other chunk
// holds actions, they are handed to the VM (after which they are
// unreachable from any future rewind); the slots then swap and the
// now-active slot (the one just drained, or one that was already empty)
// is ready for fresh writes. Returns false on OutOfMemory (a VM action
// growing the data arena past its ceiling).
func (p *ParserState) cycleChunks() bool {
	otherIdx := 1 - p.active
	other := p.chunks[otherIdx]
	if !other.isEmpty() {
		if !p.dispatchVM(other) {
			return false
		}
	}
	other.reset()
	p.active = otherIdx
	return true
}

// drain forces both pending chunks through the VM (two cycles).
func (p *ParserState) drain() bool {
	if !p.cycleChunks() {
		return false
	}
	return p.cycleChunks()
}

// backtrackChunk swaps the active/other slots without running the VM,
// turning the previous other chunk -- which still holds
// actions neither committed nor rewound -- back into the active chunk.
// Used at the entry to LEC to uncommit the last chunk so recovery can
// rewind deeper than the active chunk's own head.
func (p *ParserState) backtrackChunk() {
	p.active = 1 - p.active
}

// rewindChunk undoes at most n forward token positions from the active
// chunk's rewind journal, popping records from the tail. It
// returns the leftover shift credit: 0 if n was fully satisfied, or a
// positive remainder if the chunk ran out of records before n was
// exhausted (meaning the caller should backtrackChunk and continue
// rewinding the remainder in the previous chunk).

// syntheticEntryID marks a rewind record written by recovery (panic-mode
// resync, or an applied LEC edit via emitRecoveryAction and
// applySyntheticStep) rather than a table-driven step: those records have
// no TableEntry to
// consult, so rewindChunk treats them as a zero-shift, zero-statechange
// action that is simply dropped rather than undone in place. Resync is
// only ever reached after LEC has already given up, so a rewind deep
// enough to reach one of these records would only occur inside another
// recovery attempt layered on top of a resync -- at which point undoing
// the resync's exact stack shape is out of scope; dropping the record
// keeps the journal's bookkeeping consistent instead of corrupting it.
const syntheticEntryID = ^uint32(0)

func (p *ParserState) rewindChunk(n int) int {
	c := p.chunks[p.active]
	for n > 0 && c.rewLen > 0 {
		idx := c.rewLen - 1
		entryID := c.entryIDs[idx]
		priorState := c.priorStates[idx]
		hadOutput := c.hadOutput[idx]

		if entryID == syntheticEntryID {
			c.rewLen--
			if hadOutput && c.outLen > 0 {
				c.outLen--
			}
			continue
		}

		entry := p.tables.Entries[entryID]

		if int(entry.Shift) > n {
			break
		}

		n -= int(entry.Shift)
		c.rewLen--

		p.stack.move(-entry.StateChange)
		p.stack.setAt(p.stack.sp, priorState)
		p.inputPos -= int(entry.Shift)
		if hadOutput {
			c.outLen--
		}
	}
	return n
}

// rewindSentinel passed to rewindChunk means "unwind this chunk entirely".
const rewindSentinel = 1<<31 - 1

// rewind undoes up to n token positions, chaining into the previous chunk
// via backtrackChunk if the
// active chunk's journal is exhausted before n is satisfied. It reports
// how many of the requested n positions could not be undone (0 means
// fully satisfied).
func (p *ParserState) rewind(n int) int {
	remaining := p.rewindChunk(n)
	if remaining > 0 && p.chunks[p.active].rewLen == 0 && !p.chunks[1-p.active].isEmpty() {
		p.backtrackChunk()
		remaining = p.rewindChunk(remaining)
	}
	return remaining
}

// emitRecoveryAction records a recovery-observer action directly to the
// active chunk's output, the same way a table-driven step would, using
// syntheticEntryID since no real TableEntry backs it. Used by both LEC
// (remove/replace/insert) and panic-mode resync (panic_skip).
func (p *ParserState) emitRecoveryAction(megaaction uint16) {
	c := p.ensureChunkRoom(true)
	c.priorStates[c.rewLen] = p.stack.top()
	c.entryIDs[c.rewLen] = syntheticEntryID
	c.hadOutput[c.rewLen] = true
	c.rewLen++
	c.output[c.outLen] = megaaction
	c.outLen++
}
