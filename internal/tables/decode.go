package tables

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// DecodeLexerTables parses the compact binary encoding a table generator
// would emit for a DFA: the 256-byte equivalence table, the DFA state
// count and class count (little-endian uint32 each), stateCount*classCount
// transition cells, and parallel accept/final-transition arrays one entry
// per DFA state. There is no generator in this module; this exists so
// generated tables have somewhere to land without forcing
// every caller to hand-build tables.EquivTable{} literals the way the
// fixture package does.
func DecodeLexerTables(blob []byte) (*EquivTable, *TransitionTable, AcceptTable, FinalTransitionTable, error) {
	r := bytes.NewReader(blob)

	var equiv EquivTable
	if _, err := io.ReadFull(r, equiv[:]); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("tables: decode equivalence table: %w", err)
	}

	var stateCount, classCount uint32
	if err := binary.Read(r, binary.LittleEndian, &stateCount); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("tables: decode state count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &classCount); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("tables: decode class count: %w", err)
	}

	cells := make([]uint16, stateCount*classCount)
	if err := binary.Read(r, binary.LittleEndian, cells); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("tables: decode transition cells: %w", err)
	}

	accept := make(AcceptTable, stateCount)
	if err := binary.Read(r, binary.LittleEndian, accept); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("tables: decode accept table: %w", err)
	}

	final := make(FinalTransitionTable, stateCount)
	if err := binary.Read(r, binary.LittleEndian, final); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("tables: decode final-transition table: %w", err)
	}

	return &equiv, &TransitionTable{Cells: cells, ClassCount: int(classCount)}, accept, final, nil
}

// DecodeParserTables parses the compact binary encoding a table generator
// would emit for an LL dispatch table: the dispatch byte array, the
// per-state base offsets, and the flat entry list. Sync tables (panic-mode
// resync) are deliberately not part of this format: a generator that
// never emits sync rows for a grammar (no panic-mode support compiled in)
// still produces a fully usable ParserTables blob.
func DecodeParserTables(blob []byte) (*ParserTables, error) {
	r := bytes.NewReader(blob)

	var tokenCount, stateCount, entryCount uint32
	if err := binary.Read(r, binary.LittleEndian, &tokenCount); err != nil {
		return nil, fmt.Errorf("tables: decode token count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &stateCount); err != nil {
		return nil, fmt.Errorf("tables: decode state count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &entryCount); err != nil {
		return nil, fmt.Errorf("tables: decode entry count: %w", err)
	}

	dispatch := make([]uint8, stateCount*tokenCount)
	if err := binary.Read(r, binary.LittleEndian, dispatch); err != nil {
		return nil, fmt.Errorf("tables: decode dispatch table: %w", err)
	}

	base := make([]uint32, stateCount)
	if err := binary.Read(r, binary.LittleEndian, base); err != nil {
		return nil, fmt.Errorf("tables: decode base offsets: %w", err)
	}

	entries := make([]TableEntry, entryCount)
	for i := range entries {
		if err := binary.Read(r, binary.LittleEndian, &entries[i].Shift); err != nil {
			return nil, fmt.Errorf("tables: decode entry %d shift: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &entries[i].StateChange); err != nil {
			return nil, fmt.Errorf("tables: decode entry %d state change: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &entries[i].Megaaction); err != nil {
			return nil, fmt.Errorf("tables: decode entry %d megaaction: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &entries[i].Data); err != nil {
			return nil, fmt.Errorf("tables: decode entry %d data window: %w", i, err)
		}
	}

	return &ParserTables{
		Dispatch:   dispatch,
		Base:       base,
		Entries:    entries,
		TokenCount: int(tokenCount),
	}, nil
}
