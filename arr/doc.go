// Package arr provides standalone generic helpers for Go slices: the small
// map/filter/partition set the rest of this module builds on, and
// combinators that the standard library lacks.
//
//	evens := arr.Filter([]int{1, 2, 3, 4}, func(n, _ int) bool { return n%2 == 0 })
//
//	for p := range arr.Permutations([]int{1, 2, 3}) {
//	    fmt.Println(p)
//	}
//
//	pairs := arr.Combinations([]string{"a", "b", "c"}, 2) // iter.Seq[[]string]
//	bigrams := arr.NGrams(strings.Fields("to be or not"), 2)
//
// Permutations, PermutationsK and Combinations are lazy [iter.Seq]
// generators; breaking out of the range loop stops them.
package arr
