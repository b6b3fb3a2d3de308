package nfa

import (
	"fmt"

	"github.com/dawsonbooth/seqex/internal/ast"
)

// Builder constructs NFAs incrementally, one state at a time, the way
// the teacher's nfa.Builder does: each Add* method appends a state and
// returns its ID, and forward references are resolved later via Patch.
type Builder[T any] struct {
	states []State[T]
	start  StateID
}

// NewBuilder creates an empty builder with a small initial capacity.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{
		states: make([]State[T], 0, 16),
		start:  InvalidState,
	}
}

// AddMatch adds an accepting state and returns its ID.
func (b *Builder[T]) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{kind: StateMatch})
	return id
}

// AddConsume adds a state that tests pred against the current element.
func (b *Builder[T]) AddConsume(pred ast.Predicate[T], next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{kind: StateConsume, pred: pred, next: next})
	return id
}

// AddEpsilon adds a state with a single, unconditional epsilon transition.
func (b *Builder[T]) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{kind: StateEpsilon, next: next})
	return id
}

// AddBranch adds a state with a priority-ordered epsilon fan-out to
// targets. Each edge's Priority is its position in targets: the first
// target gets priority 0 (highest), the next priority 1, and so on,
// matching the left-to-right priority spec.md assigns to
// alternation branches and to each quantifier's repeat-vs-exit choice.
func (b *Builder[T]) AddBranch(targets ...StateID) StateID {
	edges := make([]EpsilonEdge, len(targets))
	for i, t := range targets {
		edges[i] = EpsilonEdge{Target: t, Priority: i}
	}
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{kind: StateBranch, edges: edges})
	return id
}

// AddAssertStart adds a zero-width assertion state that only proceeds
// to next when the simulator is at position 0.
func (b *Builder[T]) AddAssertStart(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{kind: StateAssertStart, next: next})
	return id
}

// AddAssertEnd adds a zero-width assertion state that only proceeds to
// next once end-of-sequence is confirmed.
func (b *Builder[T]) AddAssertEnd(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{kind: StateAssertEnd, next: next})
	return id
}

// Patch sets the single dangling target of a Consume, Epsilon,
// AssertStart, or AssertEnd state. Branch states are patched with
// PatchBranch instead, since they hold more than one target.
func (b *Builder[T]) Patch(id, target StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: id}
	}
	s := &b.states[id]
	switch s.kind {
	case StateConsume, StateEpsilon, StateAssertStart, StateAssertEnd:
		s.next = target
		return nil
	default:
		return &BuildError{Message: fmt.Sprintf("cannot patch state of kind %s", s.kind), StateID: id}
	}
}

// PatchBranch overwrites the target of one edge (identified by its
// current index within the branch's priority order) of a Branch state.
func (b *Builder[T]) PatchBranch(id StateID, edgeIndex int, target StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: id}
	}
	s := &b.states[id]
	if s.kind != StateBranch {
		return &BuildError{Message: fmt.Sprintf("expected Branch state, got %s", s.kind), StateID: id}
	}
	if edgeIndex < 0 || edgeIndex >= len(s.edges) {
		return &BuildError{Message: fmt.Sprintf("edge index %d out of range", edgeIndex), StateID: id}
	}
	s.edges[edgeIndex].Target = target
	return nil
}

// SetStart designates the NFA's single start state.
func (b *Builder[T]) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states.
func (b *Builder[T]) States() int {
	return len(b.states)
}

// Validate checks that the start state and every target reference
// point at a state that exists.
func (b *Builder[T]) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set"}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateConsume, StateEpsilon, StateAssertStart, StateAssertEnd:
			if s.next != InvalidState && int(s.next) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid next state %d", s.next), StateID: id}
			}
		case StateBranch:
			for j, e := range s.edges {
				if e.Target != InvalidState && int(e.Target) >= len(b.states) {
					return &BuildError{Message: fmt.Sprintf("invalid edge %d target %d", j, e.Target), StateID: id}
				}
			}
		}
	}
	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder[T]) Build(anchored bool) (*NFA[T], error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA[T]{
		states:   b.states,
		start:    b.start,
		anchored: anchored,
	}, nil
}
