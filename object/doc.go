// Package object models dynamic, prototype-based values in Go: objects with
// ordered own properties, property descriptors, prototype links and an
// extensibility flag, plus the built-in kinds (arrays, dates, regular
// expressions, maps, sets, weak collections, boxed primitives, errors,
// typed arrays and functions).
//
// # Values
//
// A [Value] is either a primitive (nil for null, [Undefined], bool, float64,
// string, *[Symbol], *big.Int) or an *[Object]:
//
//	o := object.NewPlainObject()
//	_ = o.Set(object.Key("name"), "Alice")
//	_ = o.DefineProperty(object.Key("id"), object.DataDescriptor(1.0, false, false, false))
//
//	tags := object.ArrayOf("a", "b")
//	m := object.NewMap()
//	_ = m.MapSet("tags", tags)
//
// # Property reflection
//
// [Object.OwnKeys], [Object.GetOwnProperty], [Object.DefineProperty],
// [Object.GetPrototypeOf], [Object.SetPrototypeOf], [Object.IsExtensible]
// and [Object.PreventExtensions] expose the same surface as the Reflect
// API, with errors instead of exceptions.
//
// # Kind slots
//
// Kind-specific state lives in an internal slot rather than in own
// properties: the timestamp of a Date, the pattern of a RegExp, the entries
// of a Map or Set, the bytes of a typed array. Typed array elements are read
// with [Object.At], not as index properties.
//
// # JSON
//
// [ParseJSON] and [StringifyJSON] convert between JSON text and object
// graphs, preserving key order in both directions.
package object
