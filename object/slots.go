package object

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Date
// ─────────────────────────────────────────────────────────────────────────────

const maxTimestamp = 8.64e15

// NewDate returns a Date holding ms milliseconds since the Unix epoch.
// Non-finite or out-of-range timestamps give an invalid date (NaN).
func NewDate(ms float64) *Object {
	return newObject(KindDate, DatePrototype, timeClip(ms))
}

// DateFromTime returns a Date for t, truncated to milliseconds.
func DateFromTime(t time.Time) *Object {
	return NewDate(float64(t.UnixMilli()))
}

func timeClip(ms float64) float64 {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxTimestamp {
		return math.NaN()
	}
	return math.Trunc(ms) + 0
}

// Timestamp returns the milliseconds since the epoch held by a Date (NaN for
// an invalid date). ok is false when o is not a Date.
func (o *Object) Timestamp() (ms float64, ok bool) {
	ms, ok = o.slot.(float64)
	return ms, ok && o.kind == KindDate
}

// Time returns the instant held by a valid Date.
func (o *Object) Time() (time.Time, bool) {
	ms, ok := o.Timestamp()
	if !ok || math.IsNaN(ms) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// ─────────────────────────────────────────────────────────────────────────────
// RegExp
// ─────────────────────────────────────────────────────────────────────────────

const regexpFlagOrder = "dgimsuvy"

type regexpSlot struct {
	source string
	flags  string
	re     *regexp.Regexp
}

// NewRegExp compiles source with flags (any of "dgimsuvy", each at most
// once). The i, m and s flags map onto RE2 flags; the others are recorded
// only. The object gets an own writable "lastIndex" of 0.
func NewRegExp(source, flags string) (*Object, error) {
	var seen [256]bool
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		if !strings.ContainsRune(regexpFlagOrder, rune(c)) || seen[c] {
			return nil, fmt.Errorf("%w: flags %q", ErrInvalidRegExp, flags)
		}
		seen[c] = true
	}
	var canonical, inline strings.Builder
	for i := 0; i < len(regexpFlagOrder); i++ {
		c := regexpFlagOrder[i]
		if !seen[c] {
			continue
		}
		canonical.WriteByte(c)
		if c == 'i' || c == 'm' || c == 's' {
			inline.WriteByte(c)
		}
	}
	if source == "" {
		source = "(?:)"
	}
	pattern := source
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + source
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegExp, err)
	}
	o := newObject(KindRegExp, RegExpPrototype, &regexpSlot{source: source, flags: canonical.String(), re: re})
	_ = o.defineOwn(Key("lastIndex"), DataDescriptor(float64(0), true, false, false))
	return o, nil
}

// MustRegExp is like [NewRegExp] but panics on error.
func MustRegExp(source, flags string) *Object {
	o, err := NewRegExp(source, flags)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Object) regexpSlot() (*regexpSlot, bool) {
	s, ok := o.slot.(*regexpSlot)
	return s, ok && o.kind == KindRegExp
}

// Source returns the pattern text of a RegExp.
func (o *Object) Source() (string, bool) {
	s, ok := o.regexpSlot()
	if !ok {
		return "", false
	}
	return s.source, true
}

// Flags returns the flags of a RegExp in canonical order.
func (o *Object) Flags() (string, bool) {
	s, ok := o.regexpSlot()
	if !ok {
		return "", false
	}
	return s.flags, true
}

// Regexp returns the compiled pattern of a RegExp.
func (o *Object) Regexp() (*regexp.Regexp, bool) {
	s, ok := o.regexpSlot()
	if !ok {
		return nil, false
	}
	return s.re, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Boxed primitives
// ─────────────────────────────────────────────────────────────────────────────

// NewBoolean returns a Boolean wrapper object.
func NewBoolean(b bool) *Object {
	return newObject(KindBoolean, BooleanPrototype, b)
}

// NewNumber returns a Number wrapper object.
func NewNumber(f float64) *Object {
	return newObject(KindNumber, NumberPrototype, f)
}

// PrimitiveValue returns the primitive wrapped by a Boolean or Number object.
func (o *Object) PrimitiveValue() (Value, bool) {
	if o.kind != KindBoolean && o.kind != KindNumber {
		return nil, false
	}
	return o.slot, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Error
// ─────────────────────────────────────────────────────────────────────────────

var messageKey = Key("message")

// NewError returns an Error inheriting from proto ([ErrorPrototype] when
// nil). A non-empty message becomes an own non-enumerable "message".
func NewError(proto *Object, message string) *Object {
	if proto == nil {
		proto = ErrorPrototype
	}
	o := newObject(KindError, proto, nil)
	if message != "" {
		_ = o.defineOwn(messageKey, DataDescriptor(message, true, false, true))
	}
	return o
}

// Message returns the own "message" of an Error when it is a string.
func (o *Object) Message() (string, bool) {
	if o.kind != KindError {
		return "", false
	}
	d, ok := o.props[messageKey]
	if !ok || d.IsAccessor() {
		return "", false
	}
	s, ok := d.Value.(string)
	return s, ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Functions
// ─────────────────────────────────────────────────────────────────────────────

// Callable is the Go body of a function object.
type Callable func(this Value, args ...Value) (Value, error)

// NewFunction returns a function object. Like built-in functions it gets
// own non-writable, non-enumerable "length" and "name" properties.
func NewFunction(name string, arity int, fn Callable) *Object {
	return newFunction(KindFunction, FunctionPrototype, name, arity, fn)
}

// NewGeneratorFunction returns a generator function object. The body is
// expected to return the generator object.
func NewGeneratorFunction(name string, arity int, fn Callable) *Object {
	return newFunction(KindGeneratorFunction, GeneratorFunctionPrototype, name, arity, fn)
}

func newFunction(kind Kind, proto *Object, name string, arity int, fn Callable) *Object {
	o := newObject(kind, proto, fn)
	_ = o.defineOwn(lengthKey, DataDescriptor(float64(max(arity, 0)), false, false, true))
	_ = o.defineOwn(Key("name"), DataDescriptor(name, false, false, true))
	return o
}

// Call invokes a function object with the given receiver and arguments.
// A nil body returns [Undefined].
func (o *Object) Call(this Value, args ...Value) (Value, error) {
	if !o.kind.IsFunction() {
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, o)
	}
	fn, _ := o.slot.(Callable)
	if fn == nil {
		return Undefined, nil
	}
	return fn(this, args...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Typed arrays
// ─────────────────────────────────────────────────────────────────────────────

// NewTypedArray returns a zero-filled typed array of kind k with length
// elements.
func NewTypedArray(k Kind, length int) (*Object, error) {
	if !k.IsTypedArray() {
		return nil, fmt.Errorf("%w: %s is not a typed array", ErrInvalidKind, k)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return newObject(k, PrototypeFor(k), make([]byte, length*k.ElementSize())), nil
}

// TypedArrayFrom returns a typed array of kind k over a copy of data, which
// holds little-endian elements and must be a whole number of them.
func TypedArrayFrom(k Kind, data []byte) (*Object, error) {
	if !k.IsTypedArray() {
		return nil, fmt.Errorf("%w: %s is not a typed array", ErrInvalidKind, k)
	}
	if len(data)%k.ElementSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidLength, len(data), k.ElementSize())
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return newObject(k, PrototypeFor(k), buf), nil
}

func (o *Object) typedBytes() ([]byte, bool) {
	b, ok := o.slot.([]byte)
	return b, ok && o.kind.IsTypedArray()
}

// Bytes returns a copy of the backing bytes of a typed array.
func (o *Object) Bytes() ([]byte, bool) {
	b, ok := o.typedBytes()
	if !ok {
		return nil, false
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true
}

// ElementCount returns the number of elements of a typed array.
func (o *Object) ElementCount() int {
	b, ok := o.typedBytes()
	if !ok {
		return 0
	}
	return len(b) / o.kind.ElementSize()
}

// At returns element i of a typed array: a float64, or a *big.Int for the
// bigint kinds.
func (o *Object) At(i int) (Value, bool) {
	b, ok := o.typedBytes()
	size := o.kind.ElementSize()
	if !ok || i < 0 || (i+1)*size > len(b) {
		return nil, false
	}
	e := b[i*size : (i+1)*size]
	switch o.kind {
	case KindInt8Array:
		return float64(int8(e[0])), true
	case KindUint8Array, KindUint8ClampedArray:
		return float64(e[0]), true
	case KindInt16Array:
		return float64(int16(binary.LittleEndian.Uint16(e))), true
	case KindUint16Array:
		return float64(binary.LittleEndian.Uint16(e)), true
	case KindInt32Array:
		return float64(int32(binary.LittleEndian.Uint32(e))), true
	case KindUint32Array:
		return float64(binary.LittleEndian.Uint32(e)), true
	case KindFloat32Array:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(e))), true
	case KindFloat64Array:
		return math.Float64frombits(binary.LittleEndian.Uint64(e)), true
	case KindBigInt64Array:
		return big.NewInt(int64(binary.LittleEndian.Uint64(e))), true
	default:
		return new(big.Int).SetUint64(binary.LittleEndian.Uint64(e)), true
	}
}

// SetAt stores v at element i of a typed array, converting it the way typed
// array stores do: numbers wrap modulo the element width (Uint8Clamped
// clamps and rounds half to even), the bigint kinds take a *big.Int.
func (o *Object) SetAt(i int, v Value) error {
	b, ok := o.typedBytes()
	size := o.kind.ElementSize()
	if !ok {
		return fmt.Errorf("%w: %s is not a typed array", ErrInvalidKind, o)
	}
	if i < 0 || (i+1)*size > len(b) {
		return fmt.Errorf("%w: index %d", ErrInvalidLength, i)
	}
	e := b[i*size : (i+1)*size]
	if o.kind == KindBigInt64Array || o.kind == KindBigUint64Array {
		n, ok := v.(*big.Int)
		if !ok {
			return fmt.Errorf("%w: %s needs a bigint, got %T", ErrInvalidKind, o.kind, v)
		}
		binary.LittleEndian.PutUint64(e, new(big.Int).And(n, new(big.Int).SetUint64(math.MaxUint64)).Uint64())
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("%w: %s needs a number, got %T", ErrInvalidKind, o.kind, v)
	}
	switch o.kind {
	case KindFloat32Array:
		binary.LittleEndian.PutUint32(e, math.Float32bits(float32(f)))
	case KindFloat64Array:
		binary.LittleEndian.PutUint64(e, math.Float64bits(f))
	case KindUint8ClampedArray:
		switch {
		case math.IsNaN(f) || f <= 0:
			e[0] = 0
		case f >= 255:
			e[0] = 255
		default:
			e[0] = uint8(math.RoundToEven(f))
		}
	default:
		n := toUint64Modular(f)
		switch size {
		case 1:
			e[0] = uint8(n)
		case 2:
			binary.LittleEndian.PutUint16(e, uint16(n))
		case 4:
			binary.LittleEndian.PutUint32(e, uint32(n))
		}
	}
	return nil
}

func toUint64Modular(f float64) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return uint64(f)
}
