package parser

// panicMaxSkip and panicMaxPop bound the cost-minimizing resync search: the
// number of input tokens ahead, and the number of stack entries below the
// current top, the search is willing to consider. Both searches are over
// small grammars' worth of lookahead, not the whole remaining input.
const (
	panicMaxSkip = 32
	panicMaxPop  = 16
)

// resyncPoint is a scored candidate resync position together with the sync
// row to apply if chosen.
type resyncPoint struct {
	skip int
	pop  int
	cost uint32
	tok  uint16
}

// panicResync performs the cost-minimizing search described for panic-mode
// resynchronization: over every (tokens skipped, states popped) pair in
// the bounded window, it sums the cost of discarding that many tokens, the
// cost of popping that many stack states, and the cost of the transition
// the search would land on, keeping the cheapest pair for which a sync row
// actually exists. It applies that row's actions on success.
func (p *ParserState) panicResync() bool {
	if p.sync == nil {
		return false
	}

	maxSkip := panicMaxSkip
	if rem := p.inputEnd - p.inputPos; rem < maxSkip {
		maxSkip = rem
	}
	maxPop := panicMaxPop
	if p.stack.sp < maxPop {
		maxPop = p.stack.sp
	}

	best, ok := p.findResyncPoint(maxSkip, maxPop)
	if !ok {
		return false
	}

	p.tokensToSkip = best.skip
	p.applyResync(best)
	return true
}

func (p *ParserState) findResyncPoint(maxSkip, maxPop int) (resyncPoint, bool) {
	var best resyncPoint
	found := false

	skipCost := uint32(0)
	for skip := 0; skip <= maxSkip; skip++ {
		if p.inputPos+skip > p.inputEnd {
			break
		}
		if skip > 0 {
			tok := p.input[p.inputPos+skip-1]
			skipCost += p.costOf(p.sync.TokenSkipCost, tok)
		}

		popCost := uint32(0)
		for pop := 0; pop <= maxPop; pop++ {
			if pop > 0 {
				state := p.stack.at(p.stack.sp - pop + 1)
				popCost += p.costOf(p.sync.StateSkipCost, state)
			}

			state := p.stack.at(p.stack.sp - pop)
			tokPos := p.inputPos + skip
			if tokPos >= p.inputEnd {
				continue
			}
			tok := p.input[tokPos]

			row, rok := p.sync.Row(state, tok)
			if !rok {
				continue
			}

			total := skipCost + popCost + p.costOf(p.sync.TokenSyncCost, tok) + row.Cost
			if !found || total < best.cost {
				best = resyncPoint{skip: skip, pop: pop, cost: total, tok: tok}
				found = true
			}
		}
	}
	return best, found
}

func (p *ParserState) costOf(vec []uint32, idx uint16) uint32 {
	if int(idx) >= len(vec) {
		return 0
	}
	return vec[idx]
}

// applyResync discards best.skip input tokens, pops best.pop stack
// entries, and replays the sync row's action list: each action's
// megaaction (if non-zero) is recorded to output and its push states are
// written onto the stack, exactly as a normal step would, so the rewind
// journal stays a faithful account of everything the parser has done. If
// any tokens were skipped, the built-in panic_skip action is emitted
// first so CBData.PanicSkip observes it, mirroring the explicit
// "push panic_skip before replaying the sync row" step of the reference
// resync routine.
func (p *ParserState) applyResync(best resyncPoint) {
	p.inputPos += best.skip

	for i := 0; i < best.pop; i++ {
		p.stack.move(-1)
	}

	if best.skip > 0 {
		p.emitRecoveryAction(MegaPanicSkip)
	}

	row, ok := p.sync.Row(p.stack.top(), best.tok)
	if !ok {
		return
	}

	c := p.ensureChunkRoom(true)
	for _, action := range row.Actions {
		hadOutput := action.Megaaction != 0

		c.priorStates[c.rewLen] = p.stack.top()
		c.entryIDs[c.rewLen] = syntheticEntryID
		c.hadOutput[c.rewLen] = hadOutput
		c.rewLen++

		for _, s := range action.PushStates {
			p.stack.move(1)
			p.stack.setAt(p.stack.sp, s)
		}
		if hadOutput {
			c.output[c.outLen] = action.Megaaction
			c.outLen++
		}
		c = p.ensureChunkRoom(hadOutput)
	}
}

// ensureChunkRoom cycles the active chunk if it has no room left for
// another rewind record (and, if wantsOutput, another output slot),
// returning whichever chunk is active afterward.
func (p *ParserState) ensureChunkRoom(wantsOutput bool) *chunk {
	c := p.chunks[p.active]
	if c.rewindFull() || (wantsOutput && c.outputFull()) {
		p.cycleChunks()
		c = p.chunks[p.active]
	}
	return c
}
