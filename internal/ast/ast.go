// Package ast defines the immutable pattern tree that seqex.Pattern[T]
// builds and that nfa.Compiler[T] lowers to an NFA.
//
// Every combinator returns a new Node; existing nodes are never mutated
// after construction. This mirrors the regexp/syntax.Regexp tree the
// teacher's compiler consumes, generalized from a parsed byte pattern to
// a fluently built tree over an arbitrary element type T.
package ast

import "fmt"

// Predicate reports whether a single element of the sequence satisfies
// some test. It is opaque: the compiler never inspects what a Predicate
// tests, only when and how many times it is invoked.
type Predicate[T any] func(T) bool

// Unbounded is the Max sentinel for a Repeat node with no upper bound
// (e.g. "one or more").
const Unbounded = ^uint32(0)

// Kind tags the variant a Node holds.
type Kind uint8

const (
	KindPred Kind = iota
	KindAny
	KindConcat
	KindAlt
	KindRepeat
	KindAnchorStart
	KindAnchorEnd
)

func (k Kind) String() string {
	switch k {
	case KindPred:
		return "Pred"
	case KindAny:
		return "Any"
	case KindConcat:
		return "Concat"
	case KindAlt:
		return "Alt"
	case KindRepeat:
		return "Repeat"
	case KindAnchorStart:
		return "AnchorStart"
	case KindAnchorEnd:
		return "AnchorEnd"
	default:
		return "Unknown"
	}
}

// Node is a single node of the pattern tree, tagged by Kind. It follows
// the same "one struct, tagged fields" shape the teacher uses for
// nfa.State rather than an interface-per-variant union, so that building
// a tree never allocates more than the slices and child pointer it
// explicitly holds.
type Node[T any] struct {
	kind Kind

	pred Predicate[T] // KindPred

	children []Node[T] // KindConcat (>=1), KindAlt (>=2)

	child *Node[T] // KindRepeat, KindAnchorStart, KindAnchorEnd

	min, max uint32 // KindRepeat
	greedy   bool   // KindRepeat
}

// Kind reports which variant n holds.
func (n Node[T]) Kind() Kind { return n.kind }

// Pred returns the wrapped predicate. Valid only when Kind() == KindPred.
func (n Node[T]) Pred() Predicate[T] { return n.pred }

// Children returns the child list. Valid only when Kind() is KindConcat
// or KindAlt.
func (n Node[T]) Children() []Node[T] { return n.children }

// Child returns the wrapped node. Valid only when Kind() is KindRepeat,
// KindAnchorStart, or KindAnchorEnd.
func (n Node[T]) Child() Node[T] { return *n.child }

// Bounds returns the repetition bounds and greediness. Valid only when
// Kind() == KindRepeat.
func (n Node[T]) Bounds() (min, max uint32, greedy bool) { return n.min, n.max, n.greedy }

// NewPred wraps a predicate as a leaf node.
func NewPred[T any](p Predicate[T]) Node[T] {
	return Node[T]{kind: KindPred, pred: p}
}

// NewAny builds a node that matches any single element.
func NewAny[T any]() Node[T] {
	return Node[T]{kind: KindAny}
}

// Concat builds a sequencing node, flattening any nested Concat children
// so that Concat(Concat(a, b), c) and Concat(a, b, c) produce identical
// trees. Concat always holds at least one child; a single child is
// returned unwrapped.
func Concat[T any](parts ...Node[T]) Node[T] {
	children := make([]Node[T], 0, len(parts))
	for _, p := range parts {
		if p.kind == KindConcat {
			children = append(children, p.children...)
		} else {
			children = append(children, p)
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	return Node[T]{kind: KindConcat, children: children}
}

// Alt builds a left-to-right priority alternation over two or more
// branches. Alt requires at least two branches; passing fewer is a
// programmer error in the builder layer, which is expected to have
// already enforced this (seqex.Pattern.Or/OneOf always supply >= 2).
func Alt[T any](branches ...Node[T]) Node[T] {
	if len(branches) < 2 {
		panic(fmt.Sprintf("ast.Alt: need at least 2 branches, got %d", len(branches)))
	}
	flat := make([]Node[T], 0, len(branches))
	for _, b := range branches {
		if b.kind == KindAlt {
			flat = append(flat, b.children...)
		} else {
			flat = append(flat, b)
		}
	}
	return Node[T]{kind: KindAlt, children: flat}
}

// Repeat builds a bounded or unbounded repetition of child. Max may be
// Unbounded. Callers (seqex.Pattern) are responsible for rejecting
// max == 0 and min > max before calling Repeat; Repeat itself only
// assembles the node.
func Repeat[T any](child Node[T], min, max uint32, greedy bool) Node[T] {
	return Node[T]{kind: KindRepeat, child: &child, min: min, max: max, greedy: greedy}
}

// AnchorStart wraps child so that it may only match starting at
// position 0 of the sequence.
func AnchorStart[T any](child Node[T]) Node[T] {
	return Node[T]{kind: KindAnchorStart, child: &child}
}

// AnchorEnd wraps child so that it may only match ending at the final
// position of the sequence.
func AnchorEnd[T any](child Node[T]) Node[T] {
	return Node[T]{kind: KindAnchorEnd, child: &child}
}

// Walk calls visit for n and, recursively, every descendant. Traversal
// order is parent before children, children left to right.
func Walk[T any](n Node[T], visit func(Node[T])) {
	visit(n)
	switch n.kind {
	case KindConcat, KindAlt:
		for _, c := range n.children {
			Walk(c, visit)
		}
	case KindRepeat, KindAnchorStart, KindAnchorEnd:
		Walk(*n.child, visit)
	}
}

// String renders the tree shape for debugging, e.g.
// "Concat(Pred, Repeat(Pred, min=1, max=+Inf, greedy), AnchorEnd(Pred))".
func (n Node[T]) String() string {
	switch n.kind {
	case KindPred:
		return "Pred"
	case KindAny:
		return "Any"
	case KindConcat:
		return joinKind("Concat", n.children)
	case KindAlt:
		return joinKind("Alt", n.children)
	case KindRepeat:
		maxStr := "+Inf"
		if n.max != Unbounded {
			maxStr = fmt.Sprintf("%d", n.max)
		}
		greed := "greedy"
		if !n.greedy {
			greed = "lazy"
		}
		return fmt.Sprintf("Repeat(%s, min=%d, max=%s, %s)", n.child, n.min, maxStr, greed)
	case KindAnchorStart:
		return fmt.Sprintf("AnchorStart(%s)", n.child)
	case KindAnchorEnd:
		return fmt.Sprintf("AnchorEnd(%s)", n.child)
	default:
		return "?"
	}
}

func joinKind[T any](name string, children []Node[T]) string {
	s := name + "("
	for i, c := range children {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + ")"
}

// InvalidNodeError reports a structural violation in a pattern tree,
// e.g. an anchor nested somewhere other than its path's outermost
// position. It is returned by Validate and wrapped by the builder layer
// into seqex.InvalidPatternError.
type InvalidNodeError struct {
	Reason string
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid pattern: %s", e.Reason)
}

// Validate walks n and checks the structural invariants spec.md assigns
// to the tree: Concat/Alt arities, Repeat bounds, and "at most once, at
// the outermost position of that end" for anchors.
func Validate[T any](n Node[T]) error {
	if err := validateAnchors(n, true, true); err != nil {
		return err
	}
	return validateShape(n)
}

func validateShape[T any](n Node[T]) error {
	switch n.kind {
	case KindConcat:
		if len(n.children) == 0 {
			return &InvalidNodeError{Reason: "concat: no children"}
		}
		for _, c := range n.children {
			if err := validateShape(c); err != nil {
				return err
			}
		}
	case KindAlt:
		if len(n.children) < 2 {
			return &InvalidNodeError{Reason: "alt: fewer than 2 branches"}
		}
		for _, c := range n.children {
			if err := validateShape(c); err != nil {
				return err
			}
		}
	case KindRepeat:
		if n.max == 0 {
			return &InvalidNodeError{Reason: "repeat: max must be > 0"}
		}
		if n.min > n.max {
			return &InvalidNodeError{Reason: fmt.Sprintf("repeat: min %d > max %d", n.min, n.max)}
		}
		return validateShape(*n.child)
	case KindAnchorStart, KindAnchorEnd:
		return validateShape(*n.child)
	}
	return nil
}

// validateAnchors enforces that AnchorStart only occurs while still at
// the leading edge of the tree (atLeadingEdge) and AnchorEnd only while
// still at the trailing edge (atTrailingEdge), and that each occurs at
// most once per path.
func validateAnchors[T any](n Node[T], atLeadingEdge, atTrailingEdge bool) error {
	switch n.kind {
	case KindConcat:
		for i, c := range n.children {
			lead := atLeadingEdge && i == 0
			trail := atTrailingEdge && i == len(n.children)-1
			if err := validateAnchors(c, lead, trail); err != nil {
				return err
			}
		}
	case KindAlt:
		for _, c := range n.children {
			if err := validateAnchors(c, atLeadingEdge, atTrailingEdge); err != nil {
				return err
			}
		}
	case KindRepeat:
		return validateAnchors(*n.child, false, false)
	case KindAnchorStart:
		if !atLeadingEdge {
			return &InvalidNodeError{Reason: "AnchorStart must be at the outermost leading position"}
		}
		return validateAnchors(*n.child, false, atTrailingEdge)
	case KindAnchorEnd:
		if !atTrailingEdge {
			return &InvalidNodeError{Reason: "AnchorEnd must be at the outermost trailing position"}
		}
		return validateAnchors(*n.child, atLeadingEdge, false)
	}
	return nil
}
