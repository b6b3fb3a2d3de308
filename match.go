package seqex

import "github.com/dawsonbooth/seqex/nfa"

// MatchResult reports a single match: the inclusive [Start, End] span
// and a copy of the elements it covers, mirroring the teacher's
// []int-index + matched-substring pairing but generalized past bytes.
// A zero-width match (Start > End, empty Data) is never returned by
// FindAll, Find, Test, or Scanner: fromNFAMatch reports it as not ok
// and those callers drop it.
type MatchResult[T any] struct {
	Start int
	End   int
	Data  []T
}

// fromNFAMatch converts the simulator's half-open [Start, End) match
// into the inclusive-End MatchResult external callers see, and reports
// whether it is non-empty. A zero-width match (m.Start == m.End)
// reports ok == false; callers suppress it rather than emit it.
func fromNFAMatch[T any](m *nfa.Match[T]) (MatchResult[T], bool) {
	if m.End <= m.Start {
		return MatchResult[T]{}, false
	}
	return MatchResult[T]{Start: m.Start, End: m.End - 1, Data: m.Data}, true
}
