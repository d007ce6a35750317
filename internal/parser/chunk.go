package parser

// chunk pairs one output (action) buffer with its rewind journal. The
// parser keeps two chunks and ping-pongs between
// them: only the active chunk is written; the other chunk holds actions
// already produced but not yet handed to the VM.
type chunk struct {
	output []uint16
	outLen int

	// Rewind journal: parallel arrays of (prior_state, entry_id, had_output)
	// triples, one appended per parser step regardless of whether that
	// step emitted an action. hadOutput records whether *this particular*
	// step actually reserved an output slot (which depends on the trial
	// flag at the time, not just the table entry), so rewindChunk can
	// undo outLen exactly rather than re-derive it from the entry.
	priorStates []uint16
	entryIDs    []uint32
	hadOutput   []bool
	rewLen      int
}

func newChunk(chunkSize int) *chunk {
	return &chunk{
		output:      make([]uint16, chunkSize),
		priorStates: make([]uint16, chunkSize),
		entryIDs:    make([]uint32, chunkSize),
		hadOutput:   make([]bool, chunkSize),
	}
}

func (c *chunk) outputFull() bool {
	return c.outLen >= len(c.output)
}

func (c *chunk) rewindFull() bool {
	return c.rewLen >= len(c.priorStates)
}

func (c *chunk) reset() {
	c.outLen = 0
	c.rewLen = 0
}

func (c *chunk) isEmpty() bool {
	return c.outLen == 0 && c.rewLen == 0
}
