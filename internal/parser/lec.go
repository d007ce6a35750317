package parser

// lecDepth is the maximum number of chained edits a single correction
// attempt may combine: one edit to get past the immediate failure, and
// (if that edit does not clear the whole lookahead window by itself) one
// more to get past a second failure inside the same window.
const lecDepth = 2

// lecResult is a candidate correction: the edit chain that produced it,
// how many lookahead tokens it let the parser consume, and its summed
// weight. Candidates are ordered lexicographically by (-advance, cost):
// maximize forward progress first, minimize cost as the tiebreak.
type lecResult struct {
	edits   []Correction
	advance int
	cost    int
}

func (a lecResult) betterThan(b lecResult) bool {
	if a.advance != b.advance {
		return a.advance > b.advance
	}
	return a.cost < b.cost
}

// localErrorCorrection searches the bounded window around errorPos for a
// single- or double-edit fix that lets the parser make real forward
// progress, and applies the best one found. It reports whether a
// correction was accepted.
//
// The search only ever proposes edits the table itself calls plausible:
// an insert or replace candidate substitutes some terminal tok for which
// Lookup(currentState, tok) succeeds, rather than guessing from grammar
// knowledge the runtime does not have. This keeps LEC fully generic
// across generated grammars.
func (p *ParserState) localErrorCorrection(errorPos int) bool {
	backtrack := lecBacktrack
	if errorPos < backtrack {
		backtrack = errorPos
	}
	lookaheadEnd := errorPos + lecLookahead
	if lookaheadEnd > p.inputEnd {
		lookaheadEnd = p.inputEnd
	}

	basePos := p.inputPos
	var best lecResult
	found := false

	for offset := errorPos - backtrack; offset <= errorPos; offset++ {
		if offset < basePos {
			continue
		}
		catchUp := offset - basePos
		if outcome := p.tryParse(offset, true); outcome != stepOK {
			p.rewind(catchUp)
			continue
		}

		for _, cand := range p.searchEdits(offset, lookaheadEnd, lecDepth) {
			if !found || cand.betterThan(best) {
				best = cand
				found = true
			}
		}

		p.rewind(catchUp)
	}

	if !found || best.advance < lecAcceptThreshold {
		return false
	}

	p.applyCorrections(errorPos, best.edits)
	return true
}

// searchEdits tries remove/replace/insert at offset, measuring how many
// tokens of the window [offset, lookaheadEnd) the parser consumes once
// the edit is applied. If an edit does not clear the whole window and
// depth allows another try, it recurses from the point the edit's trial
// got stuck.
func (p *ParserState) searchEdits(offset, lookaheadEnd, depth int) []lecResult {
	var out []lecResult
	if depth <= 0 || offset >= p.inputEnd {
		return out
	}

	state := p.stack.top()

	tryWindow := func(edit Correction, window []uint16) {
		advance, stuck := p.runTrialWindow(window)
		result := lecResult{edits: []Correction{edit}, advance: advance, cost: int(edit.weight())}
		if stuck && depth > 1 {
			innerOffset := offset + advance
			if edit.Kind == CorrectionRemove {
				innerOffset++ // window omitted the removed token
			} else if edit.Kind == CorrectionInsert {
				innerOffset-- // window had one extra leading token
			}
			if innerOffset >= 0 && innerOffset < lookaheadEnd {
				for _, chained := range p.searchEdits(innerOffset, lookaheadEnd, depth-1) {
					out = append(out, lecResult{
						edits:   append([]Correction{edit}, chained.edits...),
						advance: advance + chained.advance,
						cost:    result.cost + chained.cost,
					})
				}
			}
		}
		out = append(out, result)
	}

	if offset+1 <= lookaheadEnd {
		window := cloneWindow(p.input[offset+1 : lookaheadEnd])
		tryWindow(Correction{Kind: CorrectionRemove, Offset: uint8(offset)}, window)
	}

	for tok := 0; tok < p.tables.TokenCount; tok++ {
		if _, _, ok := p.tables.Lookup(state, uint16(tok)); !ok {
			continue
		}
		if uint16(tok) != p.input[offset] {
			replaceWindow := cloneWindow(p.input[offset:lookaheadEnd])
			if len(replaceWindow) > 0 {
				replaceWindow[0] = uint16(tok)
				tryWindow(Correction{Kind: CorrectionReplace, Token: uint16(tok)}, replaceWindow)
			}
		}

		insertWindow := make([]uint16, 0, lookaheadEnd-offset+1)
		insertWindow = append(insertWindow, uint16(tok))
		insertWindow = append(insertWindow, p.input[offset:lookaheadEnd]...)
		tryWindow(Correction{Kind: CorrectionInsert, Token: uint16(tok)}, insertWindow)
	}

	return out
}

func cloneWindow(src []uint16) []uint16 {
	out := make([]uint16, len(src))
	copy(out, src)
	return out
}

// runTrialWindow runs a speculative trial parse over a synthetic token
// window, starting from the parser's current (real) stack state, and
// fully undoes whatever it did before returning -- this is the rewind
// primitive's purpose: let LEC ask "how far would this get me" without
// disturbing the real parse.
func (p *ParserState) runTrialWindow(window []uint16) (advance int, stuck bool) {
	savedInput, savedPos, savedEnd := p.input, p.inputPos, p.inputEnd
	p.input = window
	p.inputPos = 0
	p.inputEnd = len(window)

	outcome := stepOK
	for p.inputPos < p.inputEnd {
		outcome = p.step(true)
		if outcome != stepOK {
			break
		}
	}
	advance = p.inputPos
	stuck = outcome != stepOK

	p.rewind(advance)
	p.input, p.inputPos, p.inputEnd = savedInput, savedPos, savedEnd
	return advance, stuck
}

// applyCorrections greedily consumes input up to errorPos (already known
// good), then performs each edit for real: removing a token from the
// live stream skips it without ever dispatching it; replacing or
// inserting one drives the grammar's own table entry for the synthesized
// terminal (so the stack and any real semantic megaaction fire exactly
// as they would have for a genuine token), then separately notifies the
// matching VM recovery-observer case.
func (p *ParserState) applyCorrections(errorPos int, edits []Correction) {
	if outcome := p.tryParse(errorPos, false); outcome != stepOK {
		return
	}

	for _, edit := range edits {
		switch edit.Kind {
		case CorrectionRemove:
			p.emitRecoveryAction(MegaLECRemove)
			p.inputPos++
		case CorrectionReplace:
			p.applySyntheticStep(edit.Token)
			p.insertQueue = append(p.insertQueue, edit.Token)
			p.emitRecoveryAction(MegaLECReplace)
			p.inputPos++
		case CorrectionInsert:
			p.applySyntheticStep(edit.Token)
			p.insertQueue = append(p.insertQueue, edit.Token)
			p.emitRecoveryAction(MegaLECInsert)
		}
	}
}

// applySyntheticStep drives the table entry for tok against the current
// stack exactly as a real step would -- writing the stack window, moving
// the stack pointer, and emitting the entry's own Megaaction if it has
// one -- without reading or advancing the real input cursor. It is used
// to give a LEC-synthesized terminal the same grammar effect a genuine
// token would have had.
//
// The record it leaves in the rewind journal uses syntheticEntryID: a
// correction already committed to the stack is not meant to be undone by
// a later, unrelated rewind (the same reasoning applyResync uses for
// panic-mode's sync actions). If no entry matches tok at the current
// state, this is a no-op; searchEdits only ever proposes tokens the
// table accepted at search time, but the state search assumed may have
// since moved on.
func (p *ParserState) applySyntheticStep(tok uint16) {
	state := p.stack.top()
	entry, _, ok := p.tables.Lookup(state, tok)
	if !ok {
		return
	}

	hadOutput := entry.Megaaction != 0
	c := p.ensureChunkRoom(hadOutput)
	c.priorStates[c.rewLen] = state
	c.entryIDs[c.rewLen] = syntheticEntryID
	c.hadOutput[c.rewLen] = hadOutput
	c.rewLen++

	p.stack.writeWindow(entry.Data)
	p.stack.move(entry.StateChange)
	if hadOutput {
		c.output[c.outLen] = entry.Megaaction
		c.outLen++
	}
}
