package parser

// Result is the API-level outcome of a parser run. The step-loop's
// internal "dispatch = 0xFF" failure is never one of these: it
// is the trigger for recovery and is invisible to the caller unless
// recovery itself is exhausted.
type Result int

const (
	// OK means the parse completed (accepted) and every committed chunk
	// was drained to the VM.
	OK Result = iota
	// OutOfMemory means the host allocator refused a growth request.
	OutOfMemory
	// StackOverflow means the parser stack hit Config.StackMax and
	// could not grow further.
	StackOverflow
	// FatalError means panic-mode resynchronization found no viable
	// resync point after LEC also failed, or recovery ran more than
	// maxRecoveryAttemptsAtPos times without the input cursor moving; the
	// run aborts. Actions already
	// dispatched to the VM before the failure remain observable.
	FatalError
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case OutOfMemory:
		return "OutOfMemory"
	case StackOverflow:
		return "StackOverflow"
	case FatalError:
		return "FatalError"
	default:
		return "Unknown"
	}
}
