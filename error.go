package seqex

import (
	"errors"
	"fmt"
)

// ErrScannerClosed is returned by Scanner.Push and Scanner.End once End
// has already been called, the way the teacher's nfa package exposes
// sentinel errors (ErrNoMatch, ErrTooComplex) for conditions a caller
// can check with errors.Is rather than parse from a message.
var ErrScannerClosed = errors.New("seqex: scanner already ended")

// InvalidPatternError reports a pattern that fails a builder or
// compiler invariant: an out-of-range quantifier bound, an empty
// alternation, or a malformed AST caught by ast.Validate. It wraps the
// underlying cause the way the teacher's nfa.CompileError wraps a
// parse failure.
type InvalidPatternError struct {
	Reason string
	Err    error
}

func (e *InvalidPatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("seqex: invalid pattern: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("seqex: invalid pattern: %s", e.Reason)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// PredicateError wraps a value recovered from a panicking predicate.
// Predicates are expected to be total; if one panics anyway, Scanner
// recovers it at the Push/End boundary and returns it through the
// normal error channel instead of unwinding the caller's stack, so the
// caller can decide how to handle the failure. The original value (or
// error, if that's what was panicked) survives via Unwrap.
type PredicateError[T any] struct {
	Recovered any
}

func (e *PredicateError[T]) Error() string {
	return fmt.Sprintf("seqex: predicate panicked: %v", e.Recovered)
}

func (e *PredicateError[T]) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}
