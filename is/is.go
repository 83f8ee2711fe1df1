package is

import (
	"math"
	"math/big"

	"github.com/hasbyte1/go-value-utils/object"
)

func asObject(v object.Value) (*object.Object, bool) {
	o, ok := v.(*object.Object)
	return o, ok && o != nil
}

func ofKind(v object.Value, kinds ...object.Kind) bool {
	o, ok := asObject(v)
	if !ok {
		return false
	}
	for _, k := range kinds {
		if o.Kind() == k {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Primitive vs object
// ─────────────────────────────────────────────────────────────────────────────

// Primitive reports whether v is not an object.
func Primitive(v object.Value) bool { return object.IsPrimitive(v) }

// Object reports whether v is a non-nil *object.Object, functions included.
func Object(v object.Value) bool {
	_, ok := asObject(v)
	return ok
}

// Nil reports whether v is null or undefined.
func Nil(v object.Value) bool { return v == nil || v == object.Undefined }

// Symbol reports whether v is a symbol.
func Symbol(v object.Value) bool {
	_, ok := v.(*object.Symbol)
	return ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Kinds
// ─────────────────────────────────────────────────────────────────────────────

// Function reports whether v is callable, generator functions included.
func Function(v object.Value) bool {
	o, ok := asObject(v)
	return ok && o.Kind().IsFunction()
}

// Array reports whether v is an array.
func Array(v object.Value) bool { return ofKind(v, object.KindArray) }

// Date reports whether v is a Date.
func Date(v object.Value) bool { return ofKind(v, object.KindDate) }

// RegExp reports whether v is a regular expression.
func RegExp(v object.Value) bool { return ofKind(v, object.KindRegExp) }

// Map reports whether v is a Map.
func Map(v object.Value) bool { return ofKind(v, object.KindMap) }

// Set reports whether v is a Set.
func Set(v object.Value) bool { return ofKind(v, object.KindSet) }

// WeakMap reports whether v is a WeakMap.
func WeakMap(v object.Value) bool { return ofKind(v, object.KindWeakMap) }

// WeakSet reports whether v is a WeakSet.
func WeakSet(v object.Value) bool { return ofKind(v, object.KindWeakSet) }

// Boxed reports whether v is a Boolean or Number wrapper object.
func Boxed(v object.Value) bool { return ofKind(v, object.KindBoolean, object.KindNumber) }

// Error reports whether v is an Error, subclasses included.
func Error(v object.Value) bool { return ofKind(v, object.KindError) }

// TypedArray reports whether v is any typed array.
func TypedArray(v object.Value) bool {
	o, ok := asObject(v)
	return ok && o.Kind().IsTypedArray()
}

// PlainObject reports whether v is an ordinary object whose prototype is
// [object.ObjectPrototype] or nil.
func PlainObject(v object.Value) bool {
	o, ok := asObject(v)
	if !ok || o.Kind() != object.KindObject {
		return false
	}
	p := o.GetPrototypeOf()
	return p == nil || p == object.ObjectPrototype
}

// ArrayLike reports whether v is an array, or a non-function object whose
// "length" is a non-negative integer no larger than 2⁵³-1.
func ArrayLike(v object.Value) bool {
	o, ok := asObject(v)
	if !ok || o.Kind().IsFunction() {
		return false
	}
	if o.Kind() == object.KindArray {
		return true
	}
	l, err := o.Get(object.Key("length"))
	if err != nil {
		return false
	}
	f, ok := l.(float64)
	return ok && f >= 0 && f <= 1<<53-1 && f == math.Trunc(f)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tags
// ─────────────────────────────────────────────────────────────────────────────

// KindOf returns the kind of an object value; ok is false for primitives.
func KindOf(v object.Value) (k object.Kind, ok bool) {
	o, ok := asObject(v)
	if !ok {
		return 0, false
	}
	return o.Kind(), true
}

// Tag returns the class tag of v in the "[object Name]" form used by
// Object.prototype.toString, e.g. "[object Map]" or "[object Null]".
// Functions of either kind are reported as "[object Function]"; Go values
// outside the model give "[object Unknown]".
func Tag(v object.Value) string {
	return "[object " + tagName(v) + "]"
}

func tagName(v object.Value) string {
	switch x := v.(type) {
	case nil:
		return "Null"
	case object.UndefinedType:
		return "Undefined"
	case bool:
		return "Boolean"
	case float64:
		return "Number"
	case string:
		return "String"
	case *object.Symbol:
		return "Symbol"
	case *big.Int:
		return "BigInt"
	case *object.Object:
		if x == nil {
			return "Null"
		}
		if x.Kind().IsFunction() {
			return "Function"
		}
		return x.Kind().String()
	}
	return "Unknown"
}
