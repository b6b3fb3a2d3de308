package seqex

import "testing"

func mustCompile[T any](t *testing.T, p Pattern[T]) *Matcher[T] {
	t.Helper()
	m, err := p.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return m
}

func equalResults[T comparable](t *testing.T, got, want []MatchResult[T]) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Start != w.Start || g.End != w.End || len(g.Data) != len(w.Data) {
			t.Fatalf("match %d: expected %+v, got %+v", i, w, g)
		}
		for j := range w.Data {
			if g.Data[j] != w.Data[j] {
				t.Fatalf("match %d data[%d]: expected %v, got %v", i, j, w.Data[j], g.Data[j])
			}
		}
	}
}

// Scenario 1 from spec §8: where(isEven).followedBy(isOdd).followedBy(isEven)
// on [2,3,4,6,7,8,9,10] -> [{0,2,[2,3,4]}, {3,5,[6,7,8]}].
func TestFindAllNonOverlappingScenario(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isEven)).
		FollowedBy(Predicate[int](isOdd)).
		FollowedBy(Predicate[int](isEven)))

	got := m.FindAllSlice([]int{2, 3, 4, 6, 7, 8, 9, 10})
	equalResults(t, got, []MatchResult[int]{
		{Start: 0, End: 2, Data: []int{2, 3, 4}},
		{Start: 3, End: 5, Data: []int{6, 7, 8}},
	})
}

// Scenario 2: where(isEven).atStart() on [2,3,4] -> [{0,0,[2]}]; on
// [1,2,4] -> [].
func TestAtStartScenario(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isEven)).AtStart())

	equalResults(t, m.FindAllSlice([]int{2, 3, 4}), []MatchResult[int]{
		{Start: 0, End: 0, Data: []int{2}},
	})
	equalResults(t, m.FindAllSlice([]int{1, 2, 4}), nil)
}

// Scenario 3: where(isEven).atEnd() on [1,3,4] -> [{2,2,[4]}]; on
// [1,3,5] -> [].
func TestAtEndScenario(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isEven)).AtEnd())

	equalResults(t, m.FindAllSlice([]int{1, 3, 4}), []MatchResult[int]{
		{Start: 2, End: 2, Data: []int{4}},
	})
	equalResults(t, m.FindAllSlice([]int{1, 3, 5}), nil)
}

// Scenario 4: where(isPositive).oneOrMore(true).followedBy(isPositive)
// on [1,2,3] -> [{0,2,[1,2,3]}]; with oneOrMore(false) -> [{0,1,[1,2]}].
func TestGreedyVsLazyScenario(t *testing.T) {
	greedy := mustCompile(t, Where(Predicate[int](isPositive)).OneOrMore(true).FollowedBy(Predicate[int](isPositive)))
	equalResults(t, greedy.FindAllSlice([]int{1, 2, 3}), []MatchResult[int]{
		{Start: 0, End: 2, Data: []int{1, 2, 3}},
	})

	lazy := mustCompile(t, Where(Predicate[int](isPositive)).OneOrMore(false).FollowedBy(Predicate[int](isPositive)))
	equalResults(t, lazy.FindAllSlice([]int{1, 2, 3}), []MatchResult[int]{
		{Start: 0, End: 1, Data: []int{1, 2}},
	})
}

// Scenario 5: where(n => n > 0).times(3) on [1,2,3,4] -> [{0,2,[1,2,3]}]
// (next start 3 fails times(3)).
func TestTimesScenario(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isPositive)).Times(3))
	equalResults(t, m.FindAllSlice([]int{1, 2, 3, 4}), []MatchResult[int]{
		{Start: 0, End: 2, Data: []int{1, 2, 3}},
	})
}

func TestTestAndFindEquivalence(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isEven)))
	input := []int{1, 3, 5, 6, 7}

	test := m.TestSlice(input)
	find := m.FindSlice(input)
	all := m.FindAllSlice(input)

	if test != (find != nil) {
		t.Fatalf("Test()=%v but (Find()!=nil)=%v", test, find != nil)
	}
	if test != (len(all) != 0) {
		t.Fatalf("Test()=%v but (len(FindAll())!=0)=%v", test, len(all) != 0)
	}
}

func TestFindStopsAtFirstMatch(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isEven)))
	got := m.FindSlice([]int{1, 3, 4, 6, 8})
	if got == nil || got.Start != 2 || got.End != 2 {
		t.Fatalf("expected first match [2,2], got %+v", got)
	}
}

func TestFindAllSliceMatchesFindAllOverIterSeq(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isEven)).FollowedBy(Predicate[int](isOdd)))
	input := []int{2, 3, 4, 5, 6, 7}
	equalResults(t, m.FindAllSlice(input), m.FindAll(sliceSeq(input)))
}

func TestAnchoredPatternNeverMatchesPastPositionZero(t *testing.T) {
	m := mustCompile(t, Where(Predicate[int](isOdd)).AtStart())
	got := m.FindAllSlice([]int{2, 3, 5, 7})
	equalResults(t, got, nil)
}
