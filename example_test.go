package seqex_test

import (
	"fmt"

	"github.com/dawsonbooth/seqex"
)

// ExampleWhere demonstrates compiling and testing a single-predicate
// pattern.
func ExampleWhere() {
	m, err := seqex.Where(seqex.Predicate[int](func(n int) bool { return n%2 == 0 })).Compile()
	if err != nil {
		panic(err)
	}

	fmt.Println(m.TestSlice([]int{1, 3, 4}))
	// Output: true
}

// ExamplePattern_FollowedBy demonstrates chaining predicates into a
// sequence and finding the first match.
func ExamplePattern_FollowedBy() {
	isEven := seqex.Predicate[int](func(n int) bool { return n%2 == 0 })
	isOdd := seqex.Predicate[int](func(n int) bool { return n%2 != 0 })

	m, err := seqex.Where(isEven).FollowedBy(isOdd).Compile()
	if err != nil {
		panic(err)
	}

	match := m.FindSlice([]int{1, 2, 3, 4, 5})
	fmt.Println(match.Start, match.End, match.Data)
	// Output: 1 2 [2 3]
}

// ExampleMatcher_FindAll demonstrates collecting every non-overlapping
// match from a sequence of runes.
func ExampleMatcher_FindAll() {
	isVowel := seqex.Predicate[rune](func(r rune) bool {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			return true
		}
		return false
	})

	m, err := seqex.Where(isVowel).OneOrMore(true).Compile()
	if err != nil {
		panic(err)
	}

	for _, match := range m.FindAllSlice([]rune("sequoia")) {
		fmt.Printf("[%d,%d] %q\n", match.Start, match.End, string(match.Data))
	}
	// Output:
	// [1,1] "e"
	// [3,6] "uoia"
}

// ExampleMatcher_Scanner demonstrates streaming matches from a pushed
// element stream, one element at a time.
func ExampleMatcher_Scanner() {
	isEven := seqex.Predicate[int](func(n int) bool { return n%2 == 0 })
	isOdd := seqex.Predicate[int](func(n int) bool { return n%2 != 0 })

	m, err := seqex.Where(isEven).OneOrMore(true).FollowedBy(isOdd).Compile()
	if err != nil {
		panic(err)
	}

	scanner := m.Scanner()
	for _, e := range []int{2, 4, 6, 3} {
		results, err := scanner.Push(e)
		if err != nil {
			panic(err)
		}
		for _, r := range results {
			fmt.Println(r.Start, r.End, r.Data)
		}
	}
	if _, err := scanner.End(); err != nil {
		panic(err)
	}
	// Output: 0 3 [2 4 6 3]
}
