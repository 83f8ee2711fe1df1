package object

import (
	"math"
	"math/big"
)

// Value is any value reachable in an object graph.
//
// Primitive values are nil (null), [Undefined], bool, float64, string,
// *[Symbol] and *big.Int (bigint). Every other value is an *[Object].
// Other Go types are not part of the model.
type Value = any

// UndefinedType is the type of [Undefined].
type UndefinedType struct{}

// String implements [fmt.Stringer].
func (UndefinedType) String() string { return "undefined" }

// Undefined is the value of missing properties and of calls that return
// nothing.
var Undefined = UndefinedType{}

// Symbol is a unique property key. Two symbols are equal only when they are
// the same pointer, whatever their descriptions.
type Symbol struct {
	description string
}

// NewSymbol returns a new symbol with the given description.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

// Description returns the description the symbol was created with.
func (s *Symbol) Description() string { return s.description }

// String returns "Symbol(description)".
func (s *Symbol) String() string { return "Symbol(" + s.description + ")" }

// IsPrimitive reports whether v is a primitive, i.e. anything but a non-nil
// *Object.
func IsPrimitive(v Value) bool {
	o, ok := v.(*Object)
	return !ok || o == nil
}

// SameValue reports whether a and b are the same value: NaN equals NaN,
// +0 and -0 differ, bigints compare by value and objects by identity.
func SameValue(a, b Value) bool {
	if x, ok := a.(float64); ok {
		y, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(x) {
			return math.IsNaN(y)
		}
		return x == y && math.Signbit(x) == math.Signbit(y)
	}
	return sameNonNumber(a, b)
}

// SameValueZero is [SameValue] except that +0 and -0 are equal. It is the
// key equality used by Map and Set.
func SameValueZero(a, b Value) bool {
	if x, ok := a.(float64); ok {
		y, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(x) {
			return math.IsNaN(y)
		}
		return x == y
	}
	return sameNonNumber(a, b)
}

func sameNonNumber(a, b Value) bool {
	if x, ok := a.(*big.Int); ok {
		y, ok := b.(*big.Int)
		return ok && x.Cmp(y) == 0
	}
	return a == b
}
