package tables

// NoDispatch is the dispatch-table sentinel meaning "no entry": the parser
// core fails when it reads this value.
const NoDispatch = 0xFF

// SentinelState is the reserved bottom-of-stack state id. Equality with it
// marks "stack empty / accept candidate".
const SentinelState uint16 = 0

// TableEntry is one row of the parser's action table: advance input by
// Shift tokens, overwrite the top-of-stack window with Data, move the stack
// pointer by StateChange (signed), and emit Megaaction to output iff it is
// non-zero.
type TableEntry struct {
	Shift       uint8
	StateChange int8
	Megaaction  uint16
	Data        [4]uint16
}

// ParserTables bundles the per-state dispatch table, the flat entry list it
// indexes into, and the goto/base offsets used to locate a state's row.
//
// Dispatch is addressed as Dispatch[state*TokenCount+token]; a value of
// NoDispatch means the parser should fail at that (state, token) pair.
// Otherwise Entries[Base[state]+d] is the TableEntry to apply.
type ParserTables struct {
	Dispatch   []uint8
	Base       []uint32
	Entries    []TableEntry
	TokenCount int
}

// Lookup returns the table entry and its id for a given state/token pair,
// and whether an entry was found at all.
func (t *ParserTables) Lookup(state uint16, tok uint16) (entry TableEntry, entryID uint32, ok bool) {
	d := t.Dispatch[int(state)*t.TokenCount+int(tok)]
	if d == NoDispatch {
		return TableEntry{}, 0, false
	}
	entryID = t.Base[state] + uint32(d)
	return t.Entries[entryID], entryID, true
}

// SyncAction is one action in a sync table's flat action/state list: a
// megaaction id to emit (0 meaning none) paired with the resulting states
// to push.
type SyncAction struct {
	Megaaction uint16
	PushStates []uint16
}

// SyncRow is the panic-mode resync row for a single (state, token) pair: the
// head transition cost plus the action list to emit on arrival.
type SyncRow struct {
	Cost    uint32
	Actions []SyncAction
}

// SyncTables bundles the cost vectors and dispatch rows used by panic-mode
// resynchronization.
type SyncTables struct {
	// TokenSkipCost[tok] is the cost of discarding one token of that kind.
	TokenSkipCost []uint32
	// TokenSyncCost[tok] is the cost of treating a token as the sync point.
	TokenSyncCost []uint32
	// StateSkipCost[state] is the cost of popping one stack entry in that state.
	StateSkipCost []uint32
	// Rows maps (state, token) -> SyncRow. Absent entries have infinite cost.
	Rows       map[[2]uint16]SyncRow
	TokenCount int
}

// Row looks up the sync row for a (state, token) pair.
func (s *SyncTables) Row(state, tok uint16) (SyncRow, bool) {
	row, ok := s.Rows[[2]uint16{state, tok}]
	return row, ok
}
