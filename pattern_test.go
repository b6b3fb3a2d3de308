package seqex

import "testing"

func isEven(n int) bool     { return n%2 == 0 }
func isOdd(n int) bool      { return n%2 != 0 }
func isPositive(n int) bool { return n > 0 }

func TestWhereCompiles(t *testing.T) {
	m, err := Where(Predicate[int](isEven)).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !m.TestSlice([]int{1, 3, 4}) {
		t.Fatal("expected a match")
	}
}

func TestFollowedByAcceptsPlainFunc(t *testing.T) {
	p := Where(Predicate[int](isEven)).FollowedBy(func(n int) bool { return n > 0 })
	if _, err := p.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

func TestFollowedByAcceptsPattern(t *testing.T) {
	p := Where(Predicate[int](isEven)).FollowedBy(Where(Predicate[int](isOdd)))
	if _, err := p.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

func TestTimesRejectsZero(t *testing.T) {
	p := Where(Predicate[int](isPositive)).Times(0)
	if _, err := p.Compile(); err == nil {
		t.Fatal("expected an error for Times(0)")
	}
}

func TestBetweenRejectsInvertedBounds(t *testing.T) {
	p := Where(Predicate[int](isPositive)).Between(5, 2)
	if _, err := p.Compile(); err == nil {
		t.Fatal("expected an error for Between(5, 2)")
	}
}

func TestPoisonedPatternShortCircuitsChain(t *testing.T) {
	p := Where(Predicate[int](isPositive)).Times(0).FollowedBy(Where(Predicate[int](isEven))).AtStart().AtEnd()
	if _, err := p.Compile(); err == nil {
		t.Fatal("expected the original Times(0) error to survive the rest of the chain")
	}
}

func TestOneOfRequiresAtLeastOneAlternative(t *testing.T) {
	p := OneOf[int]()
	if _, err := p.Compile(); err == nil {
		t.Fatal("expected an error for OneOf with no alternatives")
	}
}

func TestOneOfUnsupportedOperandPoisons(t *testing.T) {
	p := OneOf[int](42)
	if _, err := p.Compile(); err == nil {
		t.Fatal("expected an error for an unsupported OneOf operand")
	}
}

func TestQuantifierWrapsOnlyTrailingConcatChild(t *testing.T) {
	// where(isEven).followedBy(isOdd).oneOrMore(true) should only repeat
	// the trailing isOdd element, not the whole Concat.
	p := Where(Predicate[int](isEven)).FollowedBy(Predicate[int](isOdd)).OneOrMore(true)
	m, err := p.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := m.FindAllSlice([]int{2, 3, 5, 7})
	if len(got) != 1 || got[0].Start != 0 || got[0].End != 3 {
		t.Fatalf("expected a single match [0,3], got %+v", got)
	}
}
