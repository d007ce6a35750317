package parser

import (
	"encoding/binary"

	"github.com/cwbudde/go-llgen/internal/alloc"
	"github.com/cwbudde/go-llgen/internal/tables"
)

// stackReserve is the number of extra entries kept free above the logical
// stack pointer so a TableEntry's 4-word data window can always be written
// without an intervening bounds check.
const stackReserve = 4

// stack is the parser's array of 16-bit state ids. It grows toward higher
// indices; sp is the index of the current top-of-stack entry. Storage is
// routed through the host Allocator as raw bytes (two per entry,
// little-endian) so the exact-size alloc/realloc/free contract is honored
// rather than approximated with a bare Go slice append.
type stack struct {
	alloc alloc.Allocator
	raw   []byte // len(raw) == cap*2
	cap   int    // capacity in entries
	max   int    // stack_max ceiling, in entries
	sp    int    // current stack pointer: index of the top entry
}

func newStack(a alloc.Allocator, initial, max int) *stack {
	s := &stack{alloc: a, max: max}
	s.raw = a.Allocate(initial * 2)
	s.cap = initial
	s.raw[0], s.raw[1] = byte(tables.SentinelState), byte(tables.SentinelState>>8)
	s.sp = 0
	return s
}

// limit reports the highest index that may be written to directly without
// growing.
func (s *stack) limit() int {
	return s.cap - stackReserve
}

// top returns the state id at the current stack pointer.
func (s *stack) top() uint16 {
	return s.at(s.sp)
}

func (s *stack) at(i int) uint16 {
	return binary.LittleEndian.Uint16(s.raw[i*2:])
}

func (s *stack) setAt(i int, v uint16) {
	binary.LittleEndian.PutUint16(s.raw[i*2:], v)
}

// writeWindow overwrites the 4-entry window starting at the current stack
// pointer with data, per TableEntry semantics.
func (s *stack) writeWindow(data [4]uint16) {
	for i, v := range data {
		s.setAt(s.sp+i, v)
	}
}

// move advances the stack pointer by a signed delta (TableEntry.StateChange).
func (s *stack) move(delta int8) {
	s.sp += int(delta)
}

// atSentinel reports whether the stack is sitting on the bottom sentinel,
// i.e. "stack empty / accept candidate".
func (s *stack) atSentinel() bool {
	return s.sp == 0 && s.top() == tables.SentinelState
}

// ensureRoom grows the stack, doubling capacity up to max, so that sp
// stays <= limit(). Returns false (StackOverflow) if the ceiling is hit
// and no growth is possible.
func (s *stack) ensureRoom() bool {
	for s.sp > s.limit() {
		if s.cap >= s.max {
			return false
		}
		newCap := s.cap * 2
		if newCap > s.max {
			newCap = s.max
		}
		grown := s.alloc.Reallocate(s.raw, newCap*2)
		if grown == nil {
			return false
		}
		s.alloc.Free(s.raw, s.cap*2)
		s.raw = grown
		s.cap = newCap
	}
	return true
}

func (s *stack) destroy() {
	s.alloc.Free(s.raw, s.cap*2)
	s.raw = nil
}
