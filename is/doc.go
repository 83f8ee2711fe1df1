// Package is answers "is this value an X" for [object.Value]s: primitives,
// functions, arrays, maps, sets, plain objects, typed arrays and the other
// built-in kinds, plus the class tag lookup used to pick a cloning strategy.
//
//	is.Map(m)                 // true
//	is.PlainObject(o)         // prototype is Object.prototype or nil
//	is.Tag(object.NewSet())   // "[object Set]"
//
// Every predicate accepts any value and returns false rather than failing.
package is
