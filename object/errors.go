package object

import "errors"

// Sentinel errors returned by object operations.
//
// Use [errors.Is] for comparisons:
//
//	if err := o.DefineProperty(object.Key("x"), desc); errors.Is(err, object.ErrNotConfigurable) {
//	    // the existing property cannot be redefined
//	}
var (
	// ErrNotConfigurable is returned when a non-configurable property would
	// be redefined with different attributes or deleted.
	ErrNotConfigurable = errors.New("object: property is not configurable")

	// ErrNotWritable is returned when the value of a read-only property would
	// change, or when an accessor without a setter is assigned.
	ErrNotWritable = errors.New("object: property is not writable")

	// ErrNotExtensible is returned when a property is added to, or the
	// prototype changed on, a non-extensible object.
	ErrNotExtensible = errors.New("object: object is not extensible")

	// ErrPrototypeCycle is returned by [Object.SetPrototypeOf] when the new
	// prototype chain would contain the object itself.
	ErrPrototypeCycle = errors.New("object: cyclic prototype chain")

	// ErrInvalidLength is returned when an array length or typed array
	// buffer size is out of range.
	ErrInvalidLength = errors.New("object: invalid length")

	// ErrInvalidKind is returned when a kind-specific constructor is given a
	// kind it does not build, or a slot accessor is used on the wrong kind.
	ErrInvalidKind = errors.New("object: invalid kind")

	// ErrInvalidRegExp is returned by [NewRegExp] for unknown or repeated
	// flags and for patterns the RE2 engine cannot compile.
	ErrInvalidRegExp = errors.New("object: invalid regular expression")

	// ErrNotCallable is returned by [Object.Call] on a non-function.
	ErrNotCallable = errors.New("object: value is not callable")

	// ErrInvalidJSON is returned by [ParseJSON] for malformed input.
	ErrInvalidJSON = errors.New("object: invalid JSON")

	// ErrCyclicJSON is returned by [StringifyJSON] when the graph contains a
	// cycle.
	ErrCyclicJSON = errors.New("object: cannot serialise cyclic structure to JSON")

	// ErrUnserializable is returned by [StringifyJSON] for values with no
	// JSON representation, such as bigints or a bare function.
	ErrUnserializable = errors.New("object: value cannot be serialised to JSON")
)
