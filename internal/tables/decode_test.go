package tables_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/cwbudde/go-llgen/internal/tables"
)

// encodeLexerBlob hand-assembles the binary layout DecodeLexerTables
// expects, standing in for what a table generator would emit.
func encodeLexerBlob(t *testing.T, equiv tables.EquivTable, cells []uint16, classCount int, accept tables.AcceptTable, final tables.FinalTransitionTable) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(equiv[:])
	mustWrite(t, &buf, uint32(len(accept)))
	mustWrite(t, &buf, uint32(classCount))
	mustWrite(t, &buf, cells)
	mustWrite(t, &buf, accept)
	mustWrite(t, &buf, final)
	return buf.Bytes()
}

func mustWrite(t *testing.T, buf *bytes.Buffer, v any) {
	t.Helper()
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		t.Fatalf("binary.Write: %v", err)
	}
}

func TestDecodeLexerTables(t *testing.T) {
	var equiv tables.EquivTable
	equiv['a'] = 0
	equiv[';'] = 1

	// 3 states x 2 classes. State 0: class0 -> state1 no-emit, class1 ->
	// state2 no-emit; states 1 and 2 have all-zero rows.
	cells := []uint16{2, 4, 0, 0, 0, 0}
	accept := tables.AcceptTable{0, 7, 9}
	final := tables.FinalTransitionTable{0, 0, 0}

	blob := encodeLexerBlob(t, equiv, cells, 2, accept, final)

	gotEquiv, gotTrans, gotAccept, gotFinal, err := tables.DecodeLexerTables(blob)
	if err != nil {
		t.Fatalf("DecodeLexerTables: %v", err)
	}
	if gotEquiv.Class('a') != 0 || gotEquiv.Class(';') != 1 {
		t.Errorf("equivalence table mismatch: a=%d ;=%d", gotEquiv.Class('a'), gotEquiv.Class(';'))
	}
	if gotTrans.ClassCount != 2 {
		t.Errorf("ClassCount = %d, want 2", gotTrans.ClassCount)
	}
	if gotTrans.Cell(0, 0) != 2 {
		t.Errorf("Cell(0,0) = %d, want 2", gotTrans.Cell(0, 0))
	}
	if len(gotAccept) != 3 || gotAccept[1] != 7 {
		t.Errorf("accept table = %v, want [0 7 9]", gotAccept)
	}
	if len(gotFinal) != 3 {
		t.Errorf("final-transition table length = %d, want 3", len(gotFinal))
	}
}

func TestDecodeParserTables(t *testing.T) {
	const tokenCount = 2
	var buf bytes.Buffer
	mustWrite(t, &buf, uint32(tokenCount))
	mustWrite(t, &buf, uint32(2)) // stateCount
	mustWrite(t, &buf, uint32(1)) // entryCount

	dispatch := []uint8{tables.NoDispatch, tables.NoDispatch, 0, tables.NoDispatch}
	mustWrite(t, &buf, dispatch)
	mustWrite(t, &buf, []uint32{0, 0}) // base offsets

	// One entry: shift 1, push to state 1, no megaaction.
	mustWrite(t, &buf, uint8(1))                // Shift
	mustWrite(t, &buf, int8(1))                 // StateChange
	mustWrite(t, &buf, uint16(0))                // Megaaction
	mustWrite(t, &buf, [4]uint16{0, 1, 0, 0})     // Data

	pt, err := tables.DecodeParserTables(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeParserTables: %v", err)
	}
	if pt.TokenCount != tokenCount {
		t.Errorf("TokenCount = %d, want %d", pt.TokenCount, tokenCount)
	}

	entry, entryID, ok := pt.Lookup(1, 0)
	if !ok {
		t.Fatal("Lookup(1, 0) should find the one defined entry")
	}
	if entryID != 0 || entry.StateChange != 1 {
		t.Errorf("Lookup(1, 0) = %+v (id %d), want StateChange=1, id=0", entry, entryID)
	}

	if _, _, ok := pt.Lookup(1, 1); ok {
		t.Error("Lookup(1, 1) should miss")
	}
}
