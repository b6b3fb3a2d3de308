package nfa

import (
	"fmt"

	"github.com/dawsonbooth/seqex/internal/ast"
)

// StateID identifies a single state within an NFA's state table.
type StateID uint32

// InvalidState is a sentinel for "not yet patched" / "no such state".
const InvalidState StateID = ^StateID(0)

// StateKind tags which variant a State holds.
type StateKind uint8

const (
	// StateMatch accepts: reaching it means the pattern matched.
	StateMatch StateKind = iota
	// StateConsume tests Pred against the current element; on success
	// control moves to Next.
	StateConsume
	// StateEpsilon moves to Next without consuming input.
	StateEpsilon
	// StateBranch offers a priority-ordered list of epsilon Edges; all
	// reachable simultaneously, walked in Edges order (highest priority
	// first). This generalizes the teacher's binary Split to the k-way
	// fan-out spec.md's alternation priority model requires.
	StateBranch
	// StateAssertStart moves to Next only when the current position is 0.
	StateAssertStart
	// StateAssertEnd moves to Next only once end-of-sequence has been
	// confirmed (during Simulator finalization).
	StateAssertEnd
)

func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateConsume:
		return "Consume"
	case StateEpsilon:
		return "Epsilon"
	case StateBranch:
		return "Branch"
	case StateAssertStart:
		return "AssertStart"
	case StateAssertEnd:
		return "AssertEnd"
	default:
		return "Unknown"
	}
}

// EpsilonEdge is one priority-ordered target of a StateBranch. Lower
// Priority values are preferred: a thread taking the edge with Priority 0
// always wins over one taking Priority 1 when both reach an accept
// state in the same simulation step.
type EpsilonEdge struct {
	Target   StateID
	Priority int
}

// State is a single NFA state. Like the teacher's nfa.State, fields are
// tagged by Kind rather than split across an interface per variant, so
// construction never needs to box a state in an interface value.
type State[T any] struct {
	kind StateKind

	pred ast.Predicate[T] // StateConsume
	next StateID          // StateConsume, StateEpsilon, StateAssertStart, StateAssertEnd

	edges []EpsilonEdge // StateBranch, priority-ascending (0 = highest)
}

func (s State[T]) Kind() StateKind        { return s.kind }
func (s State[T]) Pred() ast.Predicate[T] { return s.pred }
func (s State[T]) Next() StateID          { return s.next }
func (s State[T]) Edges() []EpsilonEdge   { return s.edges }

func (s State[T]) String() string {
	switch s.kind {
	case StateMatch:
		return "Match"
	case StateConsume:
		return fmt.Sprintf("Consume -> %d", s.next)
	case StateEpsilon:
		return fmt.Sprintf("Epsilon -> %d", s.next)
	case StateBranch:
		return fmt.Sprintf("Branch %v", s.edges)
	case StateAssertStart:
		return fmt.Sprintf("AssertStart -> %d", s.next)
	case StateAssertEnd:
		return fmt.Sprintf("AssertEnd -> %d", s.next)
	default:
		return "?"
	}
}

// NFA is a compiled, immutable automaton over elements of type T.
type NFA[T any] struct {
	states   []State[T]
	start    StateID
	anchored bool // true if the pattern can only match starting at position 0
}

// Start returns the NFA's single start state.
func (n *NFA[T]) Start() StateID { return n.start }

// IsAnchored reports whether the compiled pattern carries a leading
// AnchorStart, restricting matches to begin at position 0.
func (n *NFA[T]) IsAnchored() bool { return n.anchored }

// State returns the state with the given ID.
func (n *NFA[T]) State(id StateID) State[T] { return n.states[id] }

// States returns the number of states in the automaton, mirroring the
// teacher's nfa.NFA.States() debugging accessor.
func (n *NFA[T]) States() int { return len(n.states) }

// String renders every state, one per line, for debugging.
func (n *NFA[T]) String() string {
	s := ""
	for i, st := range n.states {
		if StateID(i) == n.start {
			s += fmt.Sprintf("%d: %s (start)\n", i, st)
		} else {
			s += fmt.Sprintf("%d: %s\n", i, st)
		}
	}
	return s
}
