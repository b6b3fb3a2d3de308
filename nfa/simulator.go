package nfa

import (
	"github.com/dawsonbooth/seqex/internal/sparse"
)

// Thread is a single path through the NFA, tagged with the position at
// which it began. Several threads, each started at a different
// position, can be alive at once; this is what lets the Simulator find
// the leftmost match in a single forward pass instead of restarting a
// fresh simulation at every candidate start.
type Thread struct {
	State StateID
	Start int
}

// Match reports a single successful match: the half-open [Start, End)
// span, and the elements it covers.
type Match[T any] struct {
	Start int
	End   int
	Data  []T
}

// Stats accumulates simulator-level counters, mirroring (at a much
// smaller scale) the teacher's meta.Engine.Stats: since seqex has only
// one execution strategy, there is only one counter family to track.
type Stats struct {
	PredicateEvaluations int
	ThreadSteps          int
}

type pendingMatch struct {
	start int
	end   int
}

// Simulator runs a Pike-VM-style simulation of an NFA over a sequence
// of elements pushed one at a time. It is the shared engine behind
// every driver in the root package: Matcher's FindAll/Find/Test each
// drive one, and Scanner exposes one directly for streaming input.
//
// At every position, in addition to stepping whatever threads are
// already alive, it spawns a fresh thread at the NFA's start state
// (unless the pattern is anchored and the position isn't 0, or a
// pending match already makes any new, later-starting thread
// irrelevant). Because threads are always walked in priority order —
// older (leftmost) origins before newer ones, and within one origin the
// order Thompson's construction assigns to greedy/lazy branches — the
// first accept state reached in a single step is always the best
// available match, and every thread walked after it is discarded rather
// than stepped.
type Simulator[T any] struct {
	nfa *NFA[T]

	current []Thread
	next    []Thread
	seen    *sparse.SparseSet

	pos     int
	pending *pendingMatch

	buf     []T
	bufBase int

	stats Stats
}

// NewSimulator creates a Simulator over nfa, ready to consume elements
// from position 0.
func NewSimulator[T any](n *NFA[T]) *Simulator[T] {
	return &Simulator[T]{
		nfa:     n,
		current: make([]Thread, 0, 16),
		next:    make([]Thread, 0, 16),
		seen:    sparse.NewSparseSet(uint32(n.States())),
		buf:     make([]T, 0, 16),
	}
}

// Stats returns a snapshot of the accumulated counters.
func (s *Simulator[T]) Stats() Stats { return s.stats }

// Buffered returns the number of elements currently retained in the
// simulator's internal window (elements that might still be part of a
// match already in progress).
func (s *Simulator[T]) Buffered() int { return len(s.buf) }

// Step consumes one element at the current position. It returns the
// match that became definitive as a result (nil if none did) and
// advances the position by one.
//
// A match becomes definitive the instant no surviving thread could ever
// produce a better one: either this step's accept thread was the
// highest-priority thread alive (so nothing propagates past it, as
// happens immediately for a minimal/lazy match), or every
// higher-priority thread that could have extended a pending match has
// now died.
func (s *Simulator[T]) Step(elem T) *Match[T] {
	pos0 := s.pos
	s.buf = append(s.buf, elem)

	s.spawnOrigin(pos0)

	matched := false
	var candStart, candEnd int

	// A fresh spawn's epsilon closure can reach an accept state before
	// elem is even consumed (a zero-width match available right here).
	// Everything at or after the first such entry is strictly lower
	// priority than it — existing (pre-spawn) threads are always
	// appended to s.current ahead of this step's spawn, so a Match this
	// early can only appear at or after the spawn's own entries.
	for i, th := range s.current {
		if s.nfa.State(th.State).Kind() == StateMatch {
			matched = true
			candStart, candEnd = th.Start, pos0
			s.current = s.current[:i]
			break
		}
	}

	s.next = s.next[:0]
	s.seen.Clear()

currentLoop:
	for _, th := range s.current {
		s.stats.ThreadSteps++
		st := s.nfa.State(th.State)
		switch st.Kind() {
		case StateConsume:
			s.stats.PredicateEvaluations++
			if st.Pred()(elem) {
				before := len(s.next)
				s.addThread(&s.next, st.Next(), th.Start, pos0+1, false)
				// Per spec.md §4.7, an accept reached as a result of
				// this step's consume must be recognized in this same
				// call, not deferred to the next Step/Finalize. Any
				// entry at or after the first Match found here is
				// strictly lower priority and is dropped along with
				// every thread not yet visited.
				for i := before; i < len(s.next); i++ {
					if s.nfa.State(s.next[i].State).Kind() == StateMatch {
						matched = true
						candStart, candEnd = s.next[i].Start, pos0+1
						s.next = s.next[:i]
						break currentLoop
					}
				}
			}
		case StateAssertEnd:
			// elem follows this thread's position, so the sequence did
			// not end there: the thread dies.
		}
	}

	var emitted *Match[T]
	switch {
	case matched && len(s.next) == 0:
		emitted = s.emit(candStart, candEnd)
		s.pending = nil
	case matched:
		s.pending = &pendingMatch{start: candStart, end: candEnd}
	case len(s.next) == 0 && s.pending != nil:
		p := *s.pending
		emitted = s.emit(p.start, p.end)
		s.pending = nil
	}

	s.current, s.next = s.next, s.current
	s.pos++
	s.trimBuffer()
	return emitted
}

// Finalize runs one last, input-free step that resolves any threads
// still waiting on an end-of-sequence assertion, and flushes a pending
// greedy match if nothing supersedes it. Call this once, after the last
// element has been pushed.
func (s *Simulator[T]) Finalize() *Match[T] {
	pos0 := s.pos
	s.spawnOrigin(pos0)

	final := s.next[:0]
	s.seen.Clear()

	for _, th := range s.current {
		s.addThread(&final, th.State, th.Start, pos0, true)
	}

	for _, th := range final {
		if s.nfa.State(th.State).Kind() == StateMatch {
			m := s.emit(th.Start, pos0)
			s.pending = nil
			s.current = s.current[:0]
			return m
		}
	}

	if s.pending != nil {
		p := *s.pending
		s.pending = nil
		s.current = s.current[:0]
		return s.emit(p.start, p.end)
	}
	s.current = s.current[:0]
	return nil
}

// Dead reports whether no thread is alive and no match is pending —
// i.e. whether no origin spawned so far can still produce a match.
func (s *Simulator[T]) Dead() bool {
	return len(s.current) == 0 && s.pending == nil
}

// Reset discards every in-flight thread and any pending match, then
// truncates the buffer to the current position, without otherwise
// disturbing the simulator's position counter. This is the primitive a
// non-overlapping driver needs after emitting a match: continue the
// same forward pass (so an unmatched prefix is never rescanned), but
// forbid any older, now-overlapping thread from producing a second,
// overlapping match.
func (s *Simulator[T]) Reset() {
	s.current = s.current[:0]
	s.next = s.next[:0]
	s.pending = nil
	if drop := s.pos - s.bufBase; drop > 0 {
		s.buf = s.buf[drop:]
		s.bufBase = s.pos
	}
}

func (s *Simulator[T]) spawnOrigin(pos int) {
	if s.pending != nil {
		return
	}
	if s.nfa.IsAnchored() && pos != 0 {
		return
	}
	s.addThread(&s.current, s.nfa.Start(), pos, pos, false)
}

// addThread resolves the epsilon closure from state, appending every
// Consume, Match, or still-unresolved AssertEnd state it reaches to
// list. atEnd, when true, lets AssertEnd states resolve immediately
// (used only from Finalize); pos is compared against 0 for
// AssertStart. The simulator's seen set prevents revisiting a state
// twice within the same step, which both bounds the work per step and
// guarantees that the first (highest-priority) path to reach a state
// wins.
func (s *Simulator[T]) addThread(list *[]Thread, state StateID, start, pos int, atEnd bool) {
	if state == InvalidState {
		return
	}
	if !s.seen.Insert(uint32(state)) {
		return
	}

	st := s.nfa.State(state)
	switch st.Kind() {
	case StateEpsilon:
		s.addThread(list, st.Next(), start, pos, atEnd)
	case StateBranch:
		for _, e := range st.Edges() {
			s.addThread(list, e.Target, start, pos, atEnd)
		}
	case StateAssertStart:
		if pos == 0 {
			s.addThread(list, st.Next(), start, pos, atEnd)
		}
	case StateAssertEnd:
		if atEnd {
			s.addThread(list, st.Next(), start, pos, atEnd)
		} else {
			*list = append(*list, Thread{State: state, Start: start})
		}
	case StateConsume, StateMatch:
		*list = append(*list, Thread{State: state, Start: start})
	}
}

func (s *Simulator[T]) emit(start, end int) *Match[T] {
	data := make([]T, end-start)
	copy(data, s.buf[start-s.bufBase:end-s.bufBase])
	return &Match[T]{Start: start, End: end, Data: data}
}

// trimBuffer drops elements no live thread or pending match could still
// need, bounding the window to what spec.md calls the streaming greedy
// bound: the span since the earliest live thread's start.
func (s *Simulator[T]) trimBuffer() {
	minNeeded := s.pos
	if s.pending != nil && s.pending.start < minNeeded {
		minNeeded = s.pending.start
	}
	for _, th := range s.current {
		if th.Start < minNeeded {
			minNeeded = th.Start
		}
	}
	if drop := minNeeded - s.bufBase; drop > 0 {
		s.buf = s.buf[drop:]
		s.bufBase += drop
	}
}
