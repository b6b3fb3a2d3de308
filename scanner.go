package seqex

import "github.com/dawsonbooth/seqex/nfa"

// Scanner drives a Matcher's compiled pattern over a pushed stream of
// elements, emitting each match as soon as it becomes definitive: a
// lazy pattern emits the instant its minimum is satisfied, a greedy
// one only once no live thread could possibly extend it further (or
// End forces the issue). Create one with Matcher.Scanner; it is not
// safe for concurrent use.
type Scanner[T any] struct {
	sim     *nfa.Simulator[T]
	matcher *Matcher[T]
	closed  bool
}

// Push appends e to the stream and returns the match that became
// definitive as a result, if any: the simulator yields at most one
// match per element, so the slice holds zero or one entries.
//
// If pred panics while Push evaluates it, the panic is recovered and
// returned as a *PredicateError[T] instead of unwinding the caller;
// the scanner is left in an undefined-but-not-crashing state
// afterward and should not be reused.
func (s *Scanner[T]) Push(e T) (results []MatchResult[T], err error) {
	if s.closed {
		return nil, ErrScannerClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PredicateError[T]{Recovered: r}
		}
	}()

	if match := s.sim.Step(e); match != nil {
		if r, ok := fromNFAMatch(match); ok {
			results = append(results, r)
			s.sim.Reset()
		}
	}
	s.matcher.lastStats = s.sim.Stats()
	return results, nil
}

// End runs end-of-stream finalization — resolving any AssertEnd
// threads and flushing a pending greedy match — and returns whatever
// emerges. Any subsequent Push or End returns ErrScannerClosed.
func (s *Scanner[T]) End() (results []MatchResult[T], err error) {
	if s.closed {
		return nil, ErrScannerClosed
	}
	s.closed = true
	defer func() {
		if r := recover(); r != nil {
			err = &PredicateError[T]{Recovered: r}
		}
	}()

	if match := s.sim.Finalize(); match != nil {
		if r, ok := fromNFAMatch(match); ok {
			results = append(results, r)
		}
	}
	s.matcher.lastStats = s.sim.Stats()
	return results, nil
}

// Buffered returns the number of elements currently retained in the
// scanner's internal window: the span since the earliest live
// thread's start, or since the last emitted match, whichever is more
// recent. Unbounded-greedy patterns over all-matching input can grow
// this without limit until End is called — an inherent cost of greedy
// semantics, not a bug.
func (s *Scanner[T]) Buffered() int { return s.sim.Buffered() }
