// Package invariant provides contract assertions for the PDDL analysis core.
//
// Assertions express programmer contracts: arena indices stay in bounds, the
// build cursor always advances, extracted models reference live tree nodes.
// They must never be reachable from user-supplied PDDL text - malformed input
// is recovered from, not asserted on.
//
// All functions panic on violation - these are programming errors, not user errors.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func (t *SyntaxTree) Node(id NodeID) *Node {
//	    invariant.Precondition(id >= 0, "node id must not be negative")
//	    // ... work ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Use this for loop progress checks and arena consistency.
//
// Example:
//
//	prev := s.pos
//	for s.pos < len(s.input) {
//	    // ... scan one token ...
//	    invariant.Invariant(s.pos > prev, "scanner must advance")
//	    prev = s.pos
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// InRange panics if value is outside [minVal, maxVal].
// This is a precondition check for numeric arguments.
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("PRECONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// fail panics with a formatted message including the violation site.
func fail(kind, format string, args ...interface{}) {
	// Skip fail() and the wrapper that called it
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
