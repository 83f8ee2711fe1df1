package object

// Kind is the structural category of an [Object]. The set is closed: every
// object has exactly one kind, fixed at construction.
type Kind uint8

// Recognised kinds.
const (
	KindObject Kind = iota
	KindArray
	KindFunction
	KindGeneratorFunction
	KindDate
	KindRegExp
	KindMap
	KindSet
	KindWeakMap
	KindWeakSet
	KindBoolean
	KindNumber
	KindError
	KindInt8Array
	KindUint8Array
	KindUint8ClampedArray
	KindInt16Array
	KindUint16Array
	KindInt32Array
	KindUint32Array
	KindFloat32Array
	KindFloat64Array
	KindBigInt64Array
	KindBigUint64Array

	kindCount
)

var kindNames = [kindCount]string{
	KindObject:            "Object",
	KindArray:             "Array",
	KindFunction:          "Function",
	KindGeneratorFunction: "GeneratorFunction",
	KindDate:              "Date",
	KindRegExp:            "RegExp",
	KindMap:               "Map",
	KindSet:               "Set",
	KindWeakMap:           "WeakMap",
	KindWeakSet:           "WeakSet",
	KindBoolean:           "Boolean",
	KindNumber:            "Number",
	KindError:             "Error",
	KindInt8Array:         "Int8Array",
	KindUint8Array:        "Uint8Array",
	KindUint8ClampedArray: "Uint8ClampedArray",
	KindInt16Array:        "Int16Array",
	KindUint16Array:       "Uint16Array",
	KindInt32Array:        "Int32Array",
	KindUint32Array:       "Uint32Array",
	KindFloat32Array:      "Float32Array",
	KindFloat64Array:      "Float64Array",
	KindBigInt64Array:     "BigInt64Array",
	KindBigUint64Array:    "BigUint64Array",
}

// String returns the class tag of k, e.g. "Map" or "Uint8Array".
func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds returns every recognised kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// IsTypedArray reports whether k is one of the typed array kinds.
func (k Kind) IsTypedArray() bool {
	return k >= KindInt8Array && k <= KindBigUint64Array
}

// IsFunction reports whether k is a callable kind.
func (k Kind) IsFunction() bool {
	return k == KindFunction || k == KindGeneratorFunction
}

// ElementSize returns the byte width of one element of a typed array kind,
// or 0 for other kinds.
func (k Kind) ElementSize() int {
	switch k {
	case KindInt8Array, KindUint8Array, KindUint8ClampedArray:
		return 1
	case KindInt16Array, KindUint16Array:
		return 2
	case KindInt32Array, KindUint32Array, KindFloat32Array:
		return 4
	case KindFloat64Array, KindBigInt64Array, KindBigUint64Array:
		return 8
	}
	return 0
}
