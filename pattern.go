// Package seqex implements regex-like pattern matching over sequences
// of an arbitrary element type T: patterns are built from predicate
// functions T -> bool instead of character classes, compiled via
// Thompson's construction to an NFA, and executed by a Pike-VM-style
// simulator against slices, iter.Seq[T] sources, or a pushed element
// stream.
package seqex

import (
	"fmt"

	"github.com/dawsonbooth/seqex/internal/ast"
	"github.com/dawsonbooth/seqex/nfa"
)

// Predicate reports whether a single element satisfies some test. It
// is invoked left-to-right, in NFA-step order, exactly once per
// transition attempt: never batched, memoized, or reordered, so the
// "closure variable" idiom (a predicate that reads or writes captured
// state from the host) behaves the way its call order suggests.
type Predicate[T any] func(T) bool

// Pattern is a fluent, immutable pattern builder: every method returns
// a new Pattern rather than mutating the receiver, the way the
// teacher's Regex value is built once by Compile and never mutated
// afterward. A Pattern that accumulates an invalid construction (e.g.
// Times(0)) carries that error internally and short-circuits every
// subsequent method until Compile reports it — poisoning the value
// instead of panicking keeps the fluent chain safe to write without a
// guard after every step.
type Pattern[T any] struct {
	node ast.Node[T]
	err  error
}

// Where builds a Pattern matching exactly one element satisfying p.
func Where[T any](p Predicate[T]) Pattern[T] {
	return Pattern[T]{node: ast.NewPred[T](ast.Predicate[T](p))}
}

// Any builds a Pattern matching exactly one element, unconditionally.
func Any[T any]() Pattern[T] {
	return Pattern[T]{node: ast.NewAny[T]()}
}

// OneOf builds a Pattern matching if any one of items matches, tried
// left to right; each item may be a Predicate[T], a plain func(T)
// bool, or a Pattern[T]. Earlier items have priority over later ones
// when more than one could match at the same position (see Or).
func OneOf[T any](items ...any) Pattern[T] {
	if len(items) == 0 {
		return Pattern[T]{err: &InvalidPatternError{Reason: "oneOf: at least one alternative required"}}
	}
	branches := make([]ast.Node[T], 0, len(items))
	for _, it := range items {
		n, err := lift[T](it)
		if err != nil {
			return Pattern[T]{err: err}
		}
		branches = append(branches, n)
	}
	if len(branches) == 1 {
		return Pattern[T]{node: branches[0]}
	}
	return Pattern[T]{node: ast.Alt(branches...)}
}

// lift converts x (a Predicate[T], a plain func(T) bool, or a
// Pattern[T]) to an ast.Node[T]. A Pattern[T] carrying its own
// poisoned error propagates that error instead of its node.
func lift[T any](x any) (ast.Node[T], error) {
	switch v := x.(type) {
	case Pattern[T]:
		if v.err != nil {
			return ast.Node[T]{}, v.err
		}
		return v.node, nil
	case Predicate[T]:
		return ast.NewPred[T](ast.Predicate[T](v)), nil
	case func(T) bool:
		return ast.NewPred[T](ast.Predicate[T](v)), nil
	default:
		return ast.Node[T]{}, &InvalidPatternError{Reason: fmt.Sprintf("unsupported pattern operand of type %T", x)}
	}
}

// wrapLast applies wrap to the trailing child of a Concat, or to the
// whole node for any other shape, per the "modifies the last element"
// contract of the quantifiers. Anchors (AtStart, AtEnd) do not use it:
// they wrap the whole pattern.
func wrapLast[T any](n ast.Node[T], wrap func(ast.Node[T]) ast.Node[T]) ast.Node[T] {
	if n.Kind() != ast.KindConcat {
		return wrap(n)
	}
	children := n.Children()
	last := len(children) - 1
	rebuilt := make([]ast.Node[T], len(children))
	copy(rebuilt, children)
	rebuilt[last] = wrap(children[last])
	return ast.Concat(rebuilt...)
}

func (p Pattern[T]) poisoned() (Pattern[T], bool) {
	if p.err != nil {
		return p, true
	}
	return p, false
}

// FollowedBy appends x (a Predicate[T], func(T) bool, or Pattern[T])
// to the sequence: the result matches p then x, in order.
func (p Pattern[T]) FollowedBy(x any) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	n, err := lift[T](x)
	if err != nil {
		return Pattern[T]{err: err}
	}
	return Pattern[T]{node: ast.Concat(p.node, n)}
}

// Or builds an alternation between p and x, with p's branch given
// priority: if both could match at the same position, p wins.
func (p Pattern[T]) Or(x any) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	n, err := lift[T](x)
	if err != nil {
		return Pattern[T]{err: err}
	}
	return Pattern[T]{node: ast.Alt(p.node, n)}
}

// OneOrMore wraps the trailing element in a Repeat of [1, Unbounded].
// greedy selects whether the repetition prefers consuming as much as
// possible (true) or as little as possible (false) before the rest of
// the pattern is tried.
func (p Pattern[T]) OneOrMore(greedy bool) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	return Pattern[T]{node: wrapLast(p.node, func(c ast.Node[T]) ast.Node[T] {
		return ast.Repeat(c, 1, ast.Unbounded, greedy)
	})}
}

// ZeroOrMore wraps the trailing element in a Repeat of [0, Unbounded].
func (p Pattern[T]) ZeroOrMore(greedy bool) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	return Pattern[T]{node: wrapLast(p.node, func(c ast.Node[T]) ast.Node[T] {
		return ast.Repeat(c, 0, ast.Unbounded, greedy)
	})}
}

// Optional wraps the trailing element in a Repeat of [0, 1].
func (p Pattern[T]) Optional(greedy bool) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	return Pattern[T]{node: wrapLast(p.node, func(c ast.Node[T]) ast.Node[T] {
		return ast.Repeat(c, 0, 1, greedy)
	})}
}

// Times wraps the trailing element in a Repeat of exactly n
// occurrences. n < 1 poisons the pattern.
func (p Pattern[T]) Times(n uint32) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	if n < 1 {
		return Pattern[T]{err: &InvalidPatternError{Reason: fmt.Sprintf("times: n must be >= 1, got %d", n)}}
	}
	return Pattern[T]{node: wrapLast(p.node, func(c ast.Node[T]) ast.Node[T] {
		return ast.Repeat(c, n, n, true)
	})}
}

// Between wraps the trailing element in a Repeat of [min, max]
// occurrences, preferring the longest match first. min > max or
// max == 0 poisons the pattern.
func (p Pattern[T]) Between(min, max uint32) Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	if max == 0 {
		return Pattern[T]{err: &InvalidPatternError{Reason: "between: max must be > 0"}}
	}
	if min > max {
		return Pattern[T]{err: &InvalidPatternError{Reason: fmt.Sprintf("between: min %d > max %d", min, max)}}
	}
	return Pattern[T]{node: wrapLast(p.node, func(c ast.Node[T]) ast.Node[T] {
		return ast.Repeat(c, min, max, true)
	})}
}

// AtStart wraps the whole pattern so it may only match starting at
// sequence position 0.
func (p Pattern[T]) AtStart() Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	return Pattern[T]{node: ast.AnchorStart(p.node)}
}

// AtEnd wraps the whole pattern so it may only match ending at the
// final position of the sequence.
func (p Pattern[T]) AtEnd() Pattern[T] {
	if _, bad := p.poisoned(); bad {
		return p
	}
	return Pattern[T]{node: ast.AnchorEnd(p.node)}
}

// String renders the pattern's AST shape for debugging. seqex patterns
// have no source text to echo back (they're built fluently, not
// parsed), so this describes the tree instead, e.g.
// "Concat(Pred, Repeat(Pred, min=1, max=+Inf, greedy), AnchorEnd(Pred))".
func (p Pattern[T]) String() string {
	if p.err != nil {
		return fmt.Sprintf("<invalid pattern: %v>", p.err)
	}
	return p.node.String()
}

// Compile validates the pattern and lowers it to a Matcher via
// Thompson's construction. Any error accumulated during building (an
// invalid quantifier, an unsupported lift operand) or raised while
// validating the AST or compiling the NFA is returned as an
// *InvalidPatternError.
func (p Pattern[T]) Compile() (*Matcher[T], error) {
	if p.err != nil {
		return nil, &InvalidPatternError{Reason: "pattern construction failed", Err: p.err}
	}
	if err := ast.Validate(p.node); err != nil {
		return nil, &InvalidPatternError{Reason: "pattern failed validation", Err: err}
	}
	n, err := nfa.NewDefaultCompiler[T]().Compile(p.node)
	if err != nil {
		return nil, &InvalidPatternError{Reason: "compilation failed", Err: err}
	}
	return &Matcher[T]{nfa: n}, nil
}
