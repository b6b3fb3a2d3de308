package nfa

import (
	"github.com/dawsonbooth/seqex/internal/ast"
)

// CompilerConfig controls the one operational knob Thompson's
// construction needs: a recursion-depth ceiling guarding against stack
// overflow on pathological trees, the way the teacher's
// CompilerConfig.MaxRecursionDepth guards compileRegexp.
type CompilerConfig struct {
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns the default configuration, matching the
// teacher's default of 100.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 100}
}

// Compiler lowers an ast.Node[T] tree to an *NFA[T] via Thompson's
// construction: every node compiles to a fragment with one entry state
// and one dangling state whose single "next" slot is patched once the
// surrounding context is known.
type Compiler[T any] struct {
	config  CompilerConfig
	builder *Builder[T]
}

// NewCompiler creates a Compiler with the given configuration.
func NewCompiler[T any](config CompilerConfig) *Compiler[T] {
	return &Compiler[T]{config: config}
}

// NewDefaultCompiler creates a Compiler with DefaultCompilerConfig().
func NewDefaultCompiler[T any]() *Compiler[T] {
	return NewCompiler[T](DefaultCompilerConfig())
}

// Compile lowers root to an NFA.
func (c *Compiler[T]) Compile(root ast.Node[T]) (*NFA[T], error) {
	c.builder = NewBuilder[T]()

	entry, end, err := c.compileNode(root, 0)
	if err != nil {
		return nil, &CompileError{Pattern: root.String(), Err: err}
	}

	matchID := c.builder.AddMatch()
	if err := c.builder.Patch(end, matchID); err != nil {
		return nil, &CompileError{Pattern: root.String(), Err: err}
	}
	c.builder.SetStart(entry)

	nfa, err := c.builder.Build(isAnchoredRoot(root))
	if err != nil {
		return nil, &CompileError{Pattern: root.String(), Err: err}
	}
	return nfa, nil
}

// isAnchoredRoot reports whether root's leading position is an
// AnchorStart, i.e. whether the whole pattern can only match at
// position 0. AnchorStart's placement invariant (internal/ast) keeps it
// on the leading edge; an AnchorStart at the head of only some Alt
// branches leaves the NFA unanchored and is enforced by its AssertStart
// state alone.
func isAnchoredRoot[T any](root ast.Node[T]) bool {
	if root.Kind() == ast.KindAnchorStart {
		return true
	}
	if root.Kind() == ast.KindConcat {
		children := root.Children()
		if len(children) > 0 && children[0].Kind() == ast.KindAnchorStart {
			return true
		}
	}
	return false
}

// compileNode compiles a single node to a fragment, returning the
// fragment's entry state and its dangling state: a Consume, Epsilon,
// AssertStart, or AssertEnd state whose Next has not yet been patched.
func (c *Compiler[T]) compileNode(n ast.Node[T], depth int) (entry, dangling StateID, err error) {
	if depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, ErrTooComplex
	}

	switch n.Kind() {
	case ast.KindPred:
		return c.compilePred(n.Pred())
	case ast.KindAny:
		return c.compilePred(func(T) bool { return true })
	case ast.KindConcat:
		return c.compileConcat(n.Children(), depth)
	case ast.KindAlt:
		return c.compileAlt(n.Children(), depth)
	case ast.KindRepeat:
		return c.compileRepeat(n, depth)
	case ast.KindAnchorStart:
		return c.compileAnchorStart(n.Child(), depth)
	case ast.KindAnchorEnd:
		return c.compileAnchorEnd(n.Child(), depth)
	default:
		return InvalidState, InvalidState, ErrInvalidState
	}
}

func (c *Compiler[T]) compilePred(p ast.Predicate[T]) (entry, dangling StateID, err error) {
	id := c.builder.AddConsume(p, InvalidState)
	return id, id, nil
}

func (c *Compiler[T]) compileConcat(children []ast.Node[T], depth int) (entry, dangling StateID, err error) {
	entry, dangling, err = c.compileNode(children[0], depth+1)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, child := range children[1:] {
		nextEntry, nextDangling, err := c.compileNode(child, depth+1)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(dangling, nextEntry); err != nil {
			return InvalidState, InvalidState, err
		}
		dangling = nextDangling
	}
	return entry, dangling, nil
}

// compileAlt compiles a k-way priority alternation: a single Branch
// state fans out to each branch's entry in left-to-right priority
// order, and every branch's dangling end is patched to a shared join
// epsilon, which becomes the fragment's own dangling end.
func (c *Compiler[T]) compileAlt(branches []ast.Node[T], depth int) (entry, dangling StateID, err error) {
	entries := make([]StateID, len(branches))
	ends := make([]StateID, len(branches))
	for i, b := range branches {
		e, d, err := c.compileNode(b, depth+1)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		entries[i] = e
		ends[i] = d
	}

	branchState := c.builder.AddBranch(entries...)
	join := c.builder.AddEpsilon(InvalidState)
	for _, end := range ends {
		if err := c.builder.Patch(end, join); err != nil {
			return InvalidState, InvalidState, err
		}
	}
	return branchState, join, nil
}

// compileRepeat handles {min,max} uniformly: a mandatory prefix of min
// copies, followed by either an unbounded loop (max == ast.Unbounded) or
// a chain of max-min optional copies. Greediness is expressed purely as
// which edge of each Branch state is given priority 0; no other part of
// the construction differs between greedy and lazy.
func (c *Compiler[T]) compileRepeat(n ast.Node[T], depth int) (entry, dangling StateID, err error) {
	child := n.Child()
	min, max, greedy := n.Bounds()

	var prefixEntry, prefixEnd StateID
	havePrefix := min > 0
	for i := uint32(0); i < min; i++ {
		e, d, err := c.compileNode(child, depth+1)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if i == 0 {
			prefixEntry, prefixEnd = e, d
			continue
		}
		if err := c.builder.Patch(prefixEnd, e); err != nil {
			return InvalidState, InvalidState, err
		}
		prefixEnd = d
	}

	var tailEntry, tailDangling StateID
	if max == ast.Unbounded {
		tailEntry, tailDangling, err = c.compileUnboundedLoop(child, greedy, depth)
	} else {
		tailEntry, tailDangling, err = c.compileOptionalChain(child, max-min, greedy, depth)
	}
	if err != nil {
		return InvalidState, InvalidState, err
	}

	if !havePrefix {
		return tailEntry, tailDangling, nil
	}
	if err := c.builder.Patch(prefixEnd, tailEntry); err != nil {
		return InvalidState, InvalidState, err
	}
	return prefixEntry, tailDangling, nil
}

// compileUnboundedLoop builds "zero or more" over a fresh copy of
// child: a Branch state L doubles as both the loop's entry and its
// back-edge target, with one edge re-entering the body and the other
// exiting to a join epsilon.
func (c *Compiler[T]) compileUnboundedLoop(child ast.Node[T], greedy bool, depth int) (entry, dangling StateID, err error) {
	subEntry, subEnd, err := c.compileNode(child, depth+1)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	join := c.builder.AddEpsilon(InvalidState)

	var loop StateID
	if greedy {
		loop = c.builder.AddBranch(subEntry, join) // continue has priority over exit
	} else {
		loop = c.builder.AddBranch(join, subEntry) // exit has priority over continue
	}

	if err := c.builder.Patch(subEnd, loop); err != nil {
		return InvalidState, InvalidState, err
	}
	return loop, join, nil
}

// compileOptionalChain builds a chain of n optional copies of child,
// built from the last slot back to the first so each slot's "enter" and
// "skip" paths converge on the same downstream cursor.
func (c *Compiler[T]) compileOptionalChain(child ast.Node[T], n uint32, greedy bool, depth int) (entry, dangling StateID, err error) {
	finalJoin := c.builder.AddEpsilon(InvalidState)
	cursor := finalJoin

	for i := uint32(0); i < n; i++ {
		copyEntry, copyEnd, err := c.compileNode(child, depth+1)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(copyEnd, cursor); err != nil {
			return InvalidState, InvalidState, err
		}

		var slot StateID
		if greedy {
			slot = c.builder.AddBranch(copyEntry, cursor) // enter has priority over skip
		} else {
			slot = c.builder.AddBranch(cursor, copyEntry) // skip has priority over enter
		}
		cursor = slot
	}

	return cursor, finalJoin, nil
}

func (c *Compiler[T]) compileAnchorStart(child ast.Node[T], depth int) (entry, dangling StateID, err error) {
	childEntry, childEnd, err := c.compileNode(child, depth+1)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	s := c.builder.AddAssertStart(childEntry)
	return s, childEnd, nil
}

func (c *Compiler[T]) compileAnchorEnd(child ast.Node[T], depth int) (entry, dangling StateID, err error) {
	childEntry, childEnd, err := c.compileNode(child, depth+1)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	s := c.builder.AddAssertEnd(InvalidState)
	if err := c.builder.Patch(childEnd, s); err != nil {
		return InvalidState, InvalidState, err
	}
	return childEntry, s, nil
}
