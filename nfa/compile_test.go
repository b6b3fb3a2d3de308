package nfa

import (
	"testing"

	"github.com/dawsonbooth/seqex/internal/ast"
)

func isPositive(n int) bool { return n > 0 }
func isNegative(n int) bool { return n < 0 }

func compile(t *testing.T, n ast.Node[int]) *NFA[int] {
	t.Helper()
	c := NewDefaultCompiler[int]()
	nfa, err := c.Compile(n)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return nfa
}

func TestCompilePredMatchesSingleElement(t *testing.T) {
	n := ast.NewPred[int](isPositive)
	f := compile(t, n)

	sim := NewSimulator(f)
	if m := sim.Step(1); m == nil || m.Start != 0 || m.End != 1 {
		t.Fatalf("expected match [0,1) from the Step that completes it, got %+v", m)
	}
	if m := sim.Finalize(); m != nil {
		t.Fatalf("unexpected second match from Finalize: %+v", m)
	}
}

func TestCompileConcat(t *testing.T) {
	n := ast.Concat(ast.NewPred[int](isPositive), ast.NewPred[int](isNegative))
	f := compile(t, n)

	sim := NewSimulator(f)
	sim.Step(1)
	m := sim.Step(-1)
	if m == nil || m.Start != 0 || m.End != 2 {
		t.Fatalf("expected match [0,2), got %+v", m)
	}
}

func TestAnchoredOnlyMatchesAtStart(t *testing.T) {
	n := ast.AnchorStart(ast.NewPred[int](isPositive))
	f := compile(t, n)
	if !f.IsAnchored() {
		t.Fatal("expected IsAnchored() == true")
	}

	sim := NewSimulator(f)
	m := sim.Step(-1) // first element doesn't satisfy predicate at pos 0
	if m != nil {
		t.Fatalf("unexpected match: %+v", m)
	}
	m = sim.Step(1) // a later positive should never start a new anchored origin
	if m != nil {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestGreedyVsLazyOneOrMore(t *testing.T) {
	greedy := ast.Repeat(ast.NewPred[int](isPositive), 1, ast.Unbounded, true)
	lazy := ast.Repeat(ast.NewPred[int](isPositive), 1, ast.Unbounded, false)

	gf := compile(t, greedy)
	lf := compile(t, lazy)

	elems := []int{1, 2, 3}

	gs := NewSimulator(gf)
	var gotGreedy *Match[int]
	for _, e := range elems {
		if m := gs.Step(e); m != nil {
			gotGreedy = m
		}
	}
	if m := gs.Finalize(); m != nil {
		gotGreedy = m
	}
	if gotGreedy == nil || gotGreedy.Start != 0 || gotGreedy.End != 3 {
		t.Fatalf("expected greedy match [0,3), got %+v", gotGreedy)
	}

	ls := NewSimulator(lf)
	var gotLazy *Match[int]
	for _, e := range elems {
		if m := ls.Step(e); m != nil {
			gotLazy = m
			break
		}
	}
	if gotLazy == nil || gotLazy.Start != 0 || gotLazy.End != 1 {
		t.Fatalf("expected lazy match [0,1), got %+v", gotLazy)
	}
}

func TestAlternationLeftmostBranchWins(t *testing.T) {
	// Alt(a, ab): against "ab", the leftmost branch (just "a") should win,
	// per spec's priority-ordered alternation (not POSIX longest-match).
	isA := func(n int) bool { return n == 1 }
	isB := func(n int) bool { return n == 2 }

	branchA := ast.NewPred[int](isA)
	branchAB := ast.Concat(ast.NewPred[int](isA), ast.NewPred[int](isB))
	n := ast.Alt(branchA, branchAB)
	f := compile(t, n)

	sim := NewSimulator(f)
	var got *Match[int]
	if m := sim.Step(1); m != nil {
		got = m
	}
	if m := sim.Step(2); m != nil {
		got = m
	}
	if m := sim.Finalize(); m != nil {
		got = m
	}
	if got == nil || got.Start != 0 || got.End != 1 {
		t.Fatalf("expected leftmost-first match [0,1), got %+v", got)
	}
}

func TestRepeatExactCount(t *testing.T) {
	n := ast.Repeat(ast.NewPred[int](isPositive), 3, 3, true)
	f := compile(t, n)

	sim := NewSimulator(f)
	sim.Step(1)
	sim.Step(2)
	m := sim.Step(3)
	if m == nil {
		m = sim.Finalize()
	}
	if m == nil || m.Start != 0 || m.End != 3 {
		t.Fatalf("expected exact match [0,3), got %+v", m)
	}
}

func TestRepeatRangeOptionalTail(t *testing.T) {
	n := ast.Repeat(ast.NewPred[int](isPositive), 1, 3, true)
	f := compile(t, n)

	sim := NewSimulator(f)
	sim.Step(1)
	m := sim.Finalize()
	if m == nil || m.Start != 0 || m.End != 1 {
		t.Fatalf("expected match [0,1) when fewer than max are present, got %+v", m)
	}
}

func TestAnchorEndOnlyMatchesAtFinalPosition(t *testing.T) {
	n := ast.Concat(ast.NewPred[int](isPositive), ast.AnchorEnd(ast.NewPred[int](isNegative)))
	f := compile(t, n)

	sim := NewSimulator(f)
	sim.Step(1)
	sim.Step(-1)
	sim.Step(2) // more input after what would be the anchored end
	if m := sim.Finalize(); m != nil {
		t.Fatalf("expected no match since -1 wasn't the final element, got %+v", m)
	}
}

func TestUnboundedLoopDoesNotHangFinalize(t *testing.T) {
	n := ast.Repeat(ast.NewPred[int](isPositive), 0, ast.Unbounded, true)
	f := compile(t, n)

	sim := NewSimulator(f)
	m := sim.Finalize() // zero elements, min=0: matches the empty sequence
	if m == nil || m.Start != 0 || m.End != 0 {
		t.Fatalf("expected empty match [0,0), got %+v", m)
	}
}
