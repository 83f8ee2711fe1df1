// Package memo caches the results of a function per argument.
//
// Each [Func] owns its cache; there is no process-wide table. Concurrent
// calls for the same key share one invocation, so an expensive function
// runs once per key even under load:
//
//	lookup, err := memo.New(fetchUser, memo.DefaultOptions[int]())
//	u, err := lookup.Call(42) // runs fetchUser(42)
//	u, err = lookup.Call(42)  // cached
//
// Set [Options.MaxEntries] to bound the cache (the oldest entry is evicted
// first) and [Options.Key] to memoize on arguments that are not comparable.
package memo
