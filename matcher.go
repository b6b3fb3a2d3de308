package seqex

import (
	"iter"

	"github.com/dawsonbooth/seqex/nfa"
)

// Matcher is a compiled pattern, ready to search sequences. Like the
// teacher's *Regex, it is immutable and safe to share across
// goroutines for concurrent read (each search constructs its own
// Simulator), provided the pattern's predicates are themselves
// side-effect-free or externally synchronized.
type Matcher[T any] struct {
	nfa *nfa.NFA[T]

	lastStats nfa.Stats
}

// Stats reports the predicate-evaluation and thread-step counters
// accumulated by the most recent FindAll, Find, Test, or Scanner run,
// mirroring (at a much smaller scale) the teacher's
// meta.Engine.Stats()/ResetStats(): seqex has only one search strategy
// to count, so there is only one counter family.
func (m *Matcher[T]) Stats() nfa.Stats { return m.lastStats }

// String renders the compiled NFA's shape for debugging.
func (m *Matcher[T]) String() string { return m.nfa.String() }

// FindAll returns every non-overlapping match in seq, left to right,
// earliest start wins. Anchored patterns only ever match at position
// 0. Empty matches are suppressed and never interrupt the scan.
func (m *Matcher[T]) FindAll(seq iter.Seq[T]) []MatchResult[T] {
	sim := nfa.NewSimulator(m.nfa)
	var results []MatchResult[T]

	for e := range seq {
		if match := sim.Step(e); match != nil {
			if r, ok := fromNFAMatch(match); ok {
				results = append(results, r)
				sim.Reset()
			}
		}
	}
	if match := sim.Finalize(); match != nil {
		if r, ok := fromNFAMatch(match); ok {
			results = append(results, r)
		}
	}

	m.lastStats = sim.Stats()
	return results
}

// FindAllSlice is FindAll for a materialized slice.
func (m *Matcher[T]) FindAllSlice(s []T) []MatchResult[T] {
	return m.FindAll(sliceSeq(s))
}

// Find returns the first match in seq, consuming no more of seq than
// necessary to confirm it, or nil if no match exists.
func (m *Matcher[T]) Find(seq iter.Seq[T]) *MatchResult[T] {
	sim := nfa.NewSimulator(m.nfa)
	var found *MatchResult[T]

	for e := range seq {
		if match := sim.Step(e); match != nil {
			if r, ok := fromNFAMatch(match); ok {
				found = &r
				break
			}
		}
	}
	if found == nil {
		if match := sim.Finalize(); match != nil {
			if r, ok := fromNFAMatch(match); ok {
				found = &r
			}
		}
	}

	m.lastStats = sim.Stats()
	return found
}

// FindSlice is Find for a materialized slice.
func (m *Matcher[T]) FindSlice(s []T) *MatchResult[T] {
	return m.Find(sliceSeq(s))
}

// Test reports whether seq contains at least one match.
func (m *Matcher[T]) Test(seq iter.Seq[T]) bool {
	return m.Find(seq) != nil
}

// TestSlice is Test for a materialized slice.
func (m *Matcher[T]) TestSlice(s []T) bool {
	return m.Test(sliceSeq(s))
}

// Scanner returns a fresh streaming scanner over this Matcher's
// compiled pattern.
func (m *Matcher[T]) Scanner() *Scanner[T] {
	return &Scanner[T]{sim: nfa.NewSimulator(m.nfa), matcher: m}
}

func sliceSeq[T any](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range s {
			if !yield(e) {
				return
			}
		}
	}
}
