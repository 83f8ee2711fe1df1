package arr

import (
	"iter"
	"slices"
)

// ─────────────────────────────────────────────────────────────────────────────
// Permutations & combinations
//
// The generators work on a private copy of items and yield a fresh slice on
// every step, so callers may keep or modify what they receive. Stopping the
// range loop early stops the generator.
// ─────────────────────────────────────────────────────────────────────────────

// Permutations yields every ordering of items using Heap's algorithm, which
// reaches each permutation from the previous one by a single swap. An empty
// input yields one empty permutation.
//
//	for p := range arr.Permutations([]int{1, 2, 3}) {
//	    fmt.Println(p) // [1 2 3] [2 1 3] [3 1 2] [1 3 2] [2 3 1] [3 2 1]
//	}
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		a := slices.Clone(items)
		if !yield(slices.Clone(a)) {
			return
		}
		c := make([]int, len(a))
		for i := 1; i < len(a); {
			if c[i] >= i {
				c[i] = 0
				i++
				continue
			}
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if !yield(slices.Clone(a)) {
				return
			}
			c[i]++
			i = 1
		}
	}
}

// Combinations yields every k-element subset of items, preserving the input
// order inside each subset, in lexicographic order of positions. k == 0
// yields one empty subset; k < 0 or k > len(items) yields nothing.
//
//	arr.Combinations([]string{"a", "b", "c"}, 2) // [a b] [a c] [b c]
func Combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(items)
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(Map(idx, func(i, _ int) T { return items[i] })) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// PermutationsK yields every ordered arrangement of k elements of items:
// each combination from [Combinations] expanded by [Permutations].
func PermutationsK[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for c := range Combinations(items, k) {
			for p := range Permutations(c) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// NGrams returns every run of n consecutive elements of items, each as its
// own slice. n <= 0 or n > len(items) gives an empty result.
//
//	arr.NGrams([]string{"the", "quick", "fox"}, 2) // [[the quick] [quick fox]]
func NGrams[T any](items []T, n int) [][]T {
	if n <= 0 || n > len(items) {
		return [][]T{}
	}
	out := make([][]T, 0, len(items)-n+1)
	for i := 0; i+n <= len(items); i++ {
		out = append(out, slices.Clone(items[i:i+n]))
	}
	return out
}
