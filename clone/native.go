package clone

import (
	"log/slog"
	"math/big"
	"reflect"
	"regexp"
	"slices"
	"time"
	"unsafe"

	"github.com/hasbyte1/go-value-utils/object"
)

// Native returns a deep copy of an ordinary Go value.
//
// Pointers, maps and slices reached more than once are copied once, so
// shared structure and cycles survive; a slice is identified by its backing
// array together with its length. Unexported struct fields are copied too.
// Strings, numbers and other scalars are copied by value; channels and
// unsafe pointers are shared; a non-nil func fails with [ErrFunction] unless
// the policy allows functions, in which case it is shared.
//
// A few types get dedicated treatment: time.Time is copied as a value,
// *regexp.Regexp is recompiled, *big.Int, *big.Float and *big.Rat are
// duplicated with their Set methods, *object.Symbol is shared, and
// *object.Object graphs are handed to [Clone]. Below the root, a value
// with a method Clone() returning its own type is copied with that method,
// once per distinct pointer, map or slice; a reference back to a pointer
// whose copy is still being built gets that copy instead.
func Native[T any](v T, policy ...Policy) (T, error) {
	var zero T
	c := &nativeCloner{
		policy:  pick(policy),
		visited: make(map[visitKey]reflect.Value),
	}
	c.logger = c.policy.logger()
	out, err := c.value(reflect.ValueOf(&v).Elem())
	if err != nil {
		return zero, err
	}
	if !out.IsValid() {
		return zero, nil
	}
	res, _ := out.Interface().(T)
	return res, nil
}

// MustNative is like [Native] but panics on error.
func MustNative[T any](v T, policy ...Policy) T {
	out, err := Native(v, policy...)
	if err != nil {
		panic(err)
	}
	return out
}

type visitKey struct {
	typ reflect.Type
	ptr unsafe.Pointer
	len int
}

type nativeCloner struct {
	policy  Policy
	logger  *slog.Logger
	visited map[visitKey]reflect.Value
	path    Path
	objects *cloner
	nested  bool
}

var (
	timeType   = reflect.TypeFor[time.Time]()
	regexpType = reflect.TypeFor[*regexp.Regexp]()
	bigIntType = reflect.TypeFor[*big.Int]()
	bigFltType = reflect.TypeFor[*big.Float]()
	bigRatType = reflect.TypeFor[*big.Rat]()
	objectType = reflect.TypeFor[*object.Object]()
	symbolType = reflect.TypeFor[*object.Symbol]()
)

func (c *nativeCloner) fail(err error) error {
	return &PathError{Path: slices.Clone(c.path), Err: err}
}

func (c *nativeCloner) value(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return v, nil
	}
	if out, ok, err := c.special(v); ok || err != nil {
		return out, err
	}
	if c.nested {
		key, tracked := identity(v)
		if tracked {
			if dup, ok := c.visited[key]; ok {
				return dup, nil
			}
		}
		if out, ok := c.cloneMethod(v); ok {
			if tracked {
				c.visited[key] = out
			}
			return out, nil
		}
	}
	c.nested = true

	switch v.Kind() {
	case reflect.Pointer:
		return c.pointer(v)
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type()), nil
		}
		inner, err := c.value(v.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(inner)
		return out, nil
	case reflect.Struct:
		return c.structure(v)
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			c.path = append(c.path, indexSegment(i))
			e, err := c.value(v.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(e)
			c.path = c.path[:len(c.path)-1]
		}
		return out, nil
	case reflect.Slice:
		return c.slice(v)
	case reflect.Map:
		return c.mapping(v)
	case reflect.Func:
		if !v.IsNil() && !c.policy.AllowFunctions {
			return reflect.Value{}, c.fail(ErrFunction)
		}
		return v, nil
	case reflect.Chan, reflect.UnsafePointer:
		c.logger.Debug("clone: value shared", slog.String("type", v.Type().String()), slog.String("path", c.path.String()))
		return v, nil
	}
	return v, nil
}

// special handles the types whose internals must not be walked field by
// field.
func (c *nativeCloner) special(v reflect.Value) (reflect.Value, bool, error) {
	switch v.Type() {
	case timeType, symbolType:
		return v, true, nil
	case regexpType, bigIntType, bigFltType, bigRatType, objectType:
	default:
		return reflect.Value{}, false, nil
	}
	if v.IsNil() {
		return v, true, nil
	}
	key := visitKey{typ: v.Type(), ptr: v.UnsafePointer()}
	if dup, ok := c.visited[key]; ok {
		return dup, true, nil
	}

	var out any
	switch x := v.Interface().(type) {
	case *regexp.Regexp:
		re, err := regexp.Compile(x.String())
		if err != nil {
			return reflect.Value{}, true, c.fail(err)
		}
		out = re
	case *big.Int:
		out = new(big.Int).Set(x)
	case *big.Float:
		out = new(big.Float).Copy(x)
	case *big.Rat:
		out = new(big.Rat).Set(x)
	case *object.Object:
		if c.objects == nil {
			c.objects = newCloner(c.policy)
		}
		c.objects.path = slices.Clone(c.path)
		o, err := c.objects.node(x)
		c.objects.path = nil
		if err != nil {
			return reflect.Value{}, true, err
		}
		out = o
	}
	rv := reflect.ValueOf(out)
	c.visited[key] = rv
	return rv, true, nil
}

// identity returns the visited-table key of a non-nil pointer, map or slice.
func identity(v reflect.Value) (visitKey, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		if !v.IsNil() {
			return visitKey{typ: v.Type(), ptr: v.UnsafePointer()}, true
		}
	case reflect.Slice:
		if !v.IsNil() {
			return visitKey{typ: v.Type(), ptr: v.UnsafePointer(), len: v.Len()}, true
		}
	}
	return visitKey{}, false
}

// cloneMethod uses a Clone() T method when the value has one.
func (c *nativeCloner) cloneMethod(v reflect.Value) (reflect.Value, bool) {
	if v.Kind() == reflect.Interface || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return reflect.Value{}, false
	}
	m := v.MethodByName("Clone")
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 || mt.Out(0) != v.Type() {
		return reflect.Value{}, false
	}
	return m.Call(nil)[0], true
}

func (c *nativeCloner) pointer(v reflect.Value) (reflect.Value, error) {
	if v.IsNil() {
		return reflect.Zero(v.Type()), nil
	}
	key := visitKey{typ: v.Type(), ptr: v.UnsafePointer()}
	if dup, ok := c.visited[key]; ok {
		return dup, nil
	}
	out := reflect.New(v.Type().Elem())
	c.visited[key] = out
	elem, err := c.value(v.Elem())
	if err != nil {
		return reflect.Value{}, err
	}
	out.Elem().Set(elem)
	return out, nil
}

func (c *nativeCloner) structure(v reflect.Value) (reflect.Value, error) {
	if !v.CanAddr() {
		tmp := reflect.New(v.Type()).Elem()
		tmp.Set(v)
		v = tmp
	}
	out := reflect.New(v.Type()).Elem()
	for i := range v.NumField() {
		c.path = append(c.path, fieldSegment(v.Type().Field(i).Name))
		f, err := c.value(exposed(v.Field(i)))
		if err != nil {
			return reflect.Value{}, err
		}
		exposed(out.Field(i)).Set(f)
		c.path = c.path[:len(c.path)-1]
	}
	return out, nil
}

func (c *nativeCloner) slice(v reflect.Value) (reflect.Value, error) {
	if v.IsNil() {
		return reflect.Zero(v.Type()), nil
	}
	key := visitKey{typ: v.Type(), ptr: v.UnsafePointer(), len: v.Len()}
	if dup, ok := c.visited[key]; ok {
		return dup, nil
	}
	out := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
	c.visited[key] = out
	if scalar(v.Type().Elem()) {
		reflect.Copy(out, v)
		return out, nil
	}
	for i := range v.Len() {
		c.path = append(c.path, indexSegment(i))
		e, err := c.value(v.Index(i))
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(e)
		c.path = c.path[:len(c.path)-1]
	}
	return out, nil
}

// mapping copies a map. Keys are kept as they are; values are cloned.
func (c *nativeCloner) mapping(v reflect.Value) (reflect.Value, error) {
	if v.IsNil() {
		return reflect.Zero(v.Type()), nil
	}
	key := visitKey{typ: v.Type(), ptr: v.UnsafePointer()}
	if dup, ok := c.visited[key]; ok {
		return dup, nil
	}
	out := reflect.MakeMapWithSize(v.Type(), v.Len())
	c.visited[key] = out
	iter := v.MapRange()
	for iter.Next() {
		c.path = append(c.path, mapKeySegment(iter.Key()))
		e, err := c.value(iter.Value())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(iter.Key(), e)
		c.path = c.path[:len(c.path)-1]
	}
	return out, nil
}

// exposed returns a settable, interfaceable view of an addressable field,
// unexported or not.
func exposed(f reflect.Value) reflect.Value {
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

func scalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}
