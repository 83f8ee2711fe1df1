package object

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hasbyte1/go-value-utils/arr"
)

// Object is a non-primitive value: an ordered set of own properties, a
// prototype link, an extensibility flag and a kind with its internal slot
// (the timestamp of a Date, the entries of a Map, and so on).
//
// Object is not safe for concurrent mutation. Concurrent reads are safe as
// long as no getter mutates the graph. Weak collections are the exception:
// their tables are guarded internally.
type Object struct {
	proto      *Object
	kind       Kind
	extensible bool
	props      map[PropertyKey]*PropertyDescriptor
	order      []PropertyKey
	slot       any
}

var lengthKey = Key("length")

func newObject(kind Kind, proto *Object, slot any) *Object {
	return &Object{
		proto:      proto,
		kind:       kind,
		extensible: true,
		props:      make(map[PropertyKey]*PropertyDescriptor),
		slot:       slot,
	}
}

// NewObject returns an empty ordinary object whose prototype is proto.
// A nil proto gives an object with no prototype.
func NewObject(proto *Object) *Object {
	return newObject(KindObject, proto, nil)
}

// NewPlainObject returns an empty object inheriting from [ObjectPrototype].
func NewPlainObject() *Object {
	return NewObject(ObjectPrototype)
}

// NewArray returns an array of the given length with no elements defined.
func NewArray(length int) *Object {
	o := newObject(KindArray, ArrayPrototype, nil)
	_ = o.defineOwn(lengthKey, DataDescriptor(float64(max(length, 0)), true, false, false))
	return o
}

// ArrayOf returns an array holding values.
func ArrayOf(values ...Value) *Object {
	o := NewArray(0)
	for i, v := range values {
		_ = o.DefineProperty(IndexKey(i), DataDescriptor(v, true, true, true))
	}
	return o
}

// Kind returns the structural category of o.
func (o *Object) Kind() Kind { return o.kind }

// String returns the class tag of o, e.g. "[object Map]".
func (o *Object) String() string { return "[object " + o.kind.String() + "]" }

// ─────────────────────────────────────────────────────────────────────────────
// Prototype & extensibility
// ─────────────────────────────────────────────────────────────────────────────

// GetPrototypeOf returns the prototype of o, or nil.
func (o *Object) GetPrototypeOf() *Object { return o.proto }

// SetPrototypeOf replaces the prototype of o. It fails with
// [ErrNotExtensible] when o is non-extensible and proto differs from the
// current prototype, and with [ErrPrototypeCycle] when proto inherits from o.
func (o *Object) SetPrototypeOf(proto *Object) error {
	if proto == o.proto {
		return nil
	}
	if !o.extensible {
		return fmt.Errorf("%w: cannot change prototype", ErrNotExtensible)
	}
	for p := proto; p != nil; p = p.proto {
		if p == o {
			return ErrPrototypeCycle
		}
	}
	o.proto = proto
	return nil
}

// IsExtensible reports whether new properties may be added to o.
func (o *Object) IsExtensible() bool { return o.extensible }

// PreventExtensions makes o non-extensible. It cannot be undone.
func (o *Object) PreventExtensions() { o.extensible = false }

// Freeze makes o non-extensible and every own property non-configurable;
// data properties also become read-only.
func (o *Object) Freeze() {
	o.extensible = false
	for _, d := range o.props {
		d.Configurable = false
		if !d.IsAccessor() {
			d.Writable = false
		}
	}
}

// IsFrozen reports whether o is non-extensible and no own property can
// change.
func (o *Object) IsFrozen() bool {
	if o.extensible {
		return false
	}
	for _, d := range o.props {
		if d.Configurable || (!d.IsAccessor() && d.Writable) {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Own property reflection
// ─────────────────────────────────────────────────────────────────────────────

// OwnKeys returns every own property key of o: array indices in ascending
// order, then the remaining names in insertion order, then symbols in
// insertion order.
func (o *Object) OwnKeys() []PropertyKey {
	symbols, names := arr.Partition(o.order, PropertyKey.IsSymbol)
	indices, others := arr.Partition(names, func(k PropertyKey) bool {
		_, ok := k.Index()
		return ok
	})
	slices.SortFunc(indices, func(a, b PropertyKey) int {
		ai, _ := a.Index()
		bi, _ := b.Index()
		return cmp.Compare(ai, bi)
	})
	out := make([]PropertyKey, 0, len(o.order))
	out = append(out, indices...)
	out = append(out, others...)
	return append(out, symbols...)
}

// OwnPropertyNames returns the string keys of o in [Object.OwnKeys] order.
func (o *Object) OwnPropertyNames() []PropertyKey {
	return arr.Reject(o.OwnKeys(), func(k PropertyKey, _ int) bool { return k.IsSymbol() })
}

// OwnPropertySymbols returns the symbol keys of o in insertion order.
func (o *Object) OwnPropertySymbols() []PropertyKey {
	return arr.Filter(o.order, func(k PropertyKey, _ int) bool { return k.IsSymbol() })
}

// EnumerableOwnNames returns the enumerable string keys of o.
func (o *Object) EnumerableOwnNames() []PropertyKey {
	return arr.Filter(o.OwnPropertyNames(), func(k PropertyKey, _ int) bool {
		return o.props[k].Enumerable
	})
}

// GetOwnProperty returns a copy of the descriptor of the own property key.
func (o *Object) GetOwnProperty(key PropertyKey) (PropertyDescriptor, bool) {
	d, ok := o.props[key]
	if !ok {
		return PropertyDescriptor{}, false
	}
	return *d, true
}

// HasOwnProperty reports whether o has an own property key.
func (o *Object) HasOwnProperty(key PropertyKey) bool {
	_, ok := o.props[key]
	return ok
}

// HasProperty reports whether key is found on o or its prototype chain.
func (o *Object) HasProperty(key PropertyKey) bool {
	for cur := o; cur != nil; cur = cur.proto {
		if _, ok := cur.props[key]; ok {
			return true
		}
	}
	return false
}

// DefineProperty creates or replaces the own property key with desc.
//
// An existing non-configurable property may only be redefined with the same
// attributes (a writable one may change value). Adding a property to a
// non-extensible object fails with [ErrNotExtensible]. On arrays, defining
// an index at or past the length grows the length, and redefining "length"
// with a smaller value deletes the trailing elements.
func (o *Object) DefineProperty(key PropertyKey, desc PropertyDescriptor) error {
	if o.kind == KindArray && !key.IsSymbol() {
		if key == lengthKey {
			return o.defineArrayLength(desc)
		}
		if idx, ok := key.Index(); ok && idx >= o.arrayLength() {
			lp := o.props[lengthKey]
			if !lp.Writable {
				return fmt.Errorf("%w: %s", ErrNotWritable, lengthKey)
			}
			if err := o.defineOwn(key, desc); err != nil {
				return err
			}
			lp.Value = float64(idx) + 1
			return nil
		}
	}
	return o.defineOwn(key, desc)
}

func (o *Object) defineOwn(key PropertyKey, desc PropertyDescriptor) error {
	cur, ok := o.props[key]
	if !ok {
		if !o.extensible {
			return fmt.Errorf("%w: cannot add property %s", ErrNotExtensible, key)
		}
		d := desc.normalized()
		o.props[key] = &d
		o.order = append(o.order, key)
		return nil
	}
	if err := validateRedefine(key, cur, desc); err != nil {
		return err
	}
	*cur = desc.normalized()
	return nil
}

func validateRedefine(key PropertyKey, cur *PropertyDescriptor, desc PropertyDescriptor) error {
	if cur.Configurable {
		return nil
	}
	if desc.Configurable || desc.Enumerable != cur.Enumerable || desc.IsAccessor() != cur.IsAccessor() {
		return fmt.Errorf("%w: %s", ErrNotConfigurable, key)
	}
	if cur.IsAccessor() {
		if desc.Get != cur.Get || desc.Set != cur.Set {
			return fmt.Errorf("%w: %s", ErrNotConfigurable, key)
		}
		return nil
	}
	if !cur.Writable {
		if desc.Writable {
			return fmt.Errorf("%w: %s", ErrNotConfigurable, key)
		}
		if !SameValue(desc.Value, cur.Value) {
			return fmt.Errorf("%w: %s", ErrNotWritable, key)
		}
	}
	return nil
}

// Delete removes the own property key. Missing keys are not an error;
// non-configurable ones fail with [ErrNotConfigurable].
func (o *Object) Delete(key PropertyKey) error {
	d, ok := o.props[key]
	if !ok {
		return nil
	}
	if !d.Configurable {
		return fmt.Errorf("%w: %s", ErrNotConfigurable, key)
	}
	o.removeKey(key)
	return nil
}

func (o *Object) removeKey(key PropertyKey) {
	delete(o.props, key)
	if i := slices.Index(o.order, key); i >= 0 {
		o.order = slices.Delete(o.order, i, i+1)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Get & Set
// ─────────────────────────────────────────────────────────────────────────────

// Get looks key up on o and its prototype chain. Getters are called with o
// as the receiver; a missing property yields [Undefined].
func (o *Object) Get(key PropertyKey) (Value, error) {
	for cur := o; cur != nil; cur = cur.proto {
		d, ok := cur.props[key]
		if !ok {
			continue
		}
		if d.IsAccessor() {
			if d.Get == nil {
				return Undefined, nil
			}
			return d.Get.Call(o)
		}
		return d.Value, nil
	}
	return Undefined, nil
}

// Set assigns v to key the way an ordinary assignment does: an inherited
// setter is called, a read-only property (own or inherited) fails with
// [ErrNotWritable], an existing own data property keeps its attributes, and
// otherwise a writable, enumerable, configurable own property is created.
func (o *Object) Set(key PropertyKey, v Value) error {
	for cur := o; cur != nil; cur = cur.proto {
		d, ok := cur.props[key]
		if !ok {
			continue
		}
		if d.IsAccessor() {
			if d.Set == nil {
				return fmt.Errorf("%w: %s has no setter", ErrNotWritable, key)
			}
			_, err := d.Set.Call(o, v)
			return err
		}
		if !d.Writable {
			return fmt.Errorf("%w: %s", ErrNotWritable, key)
		}
		if cur == o {
			desc := *d
			desc.Value = v
			return o.DefineProperty(key, desc)
		}
		break
	}
	return o.DefineProperty(key, DataDescriptor(v, true, true, true))
}

// ─────────────────────────────────────────────────────────────────────────────
// Arrays
// ─────────────────────────────────────────────────────────────────────────────

// Len returns the length of an array, or 0 for other kinds.
func (o *Object) Len() int {
	if o.kind != KindArray {
		return 0
	}
	return int(o.arrayLength())
}

func (o *Object) arrayLength() uint32 {
	f, _ := o.props[lengthKey].Value.(float64)
	return uint32(f)
}

func (o *Object) defineArrayLength(desc PropertyDescriptor) error {
	if desc.IsAccessor() {
		return fmt.Errorf("%w: %s", ErrNotConfigurable, lengthKey)
	}
	f, ok := desc.Value.(float64)
	if !ok || f < 0 || f > float64(^uint32(0)) || f != float64(uint32(f)) {
		return fmt.Errorf("%w: %v", ErrInvalidLength, desc.Value)
	}
	cur := o.props[lengthKey]
	if err := validateRedefine(lengthKey, cur, desc); err != nil {
		return err
	}
	newLen, oldLen := uint32(f), o.arrayLength()
	if newLen < oldLen {
		doomed := arr.Filter(o.order, func(k PropertyKey, _ int) bool {
			idx, ok := k.Index()
			return ok && idx >= newLen
		})
		slices.SortFunc(doomed, func(a, b PropertyKey) int {
			ai, _ := a.Index()
			bi, _ := b.Index()
			return cmp.Compare(bi, ai)
		})
		for _, k := range doomed {
			if !o.props[k].Configurable {
				idx, _ := k.Index()
				cur.Value = float64(idx) + 1
				return fmt.Errorf("%w: %s", ErrNotConfigurable, k)
			}
			o.removeKey(k)
		}
	}
	*cur = desc.normalized()
	cur.Value = float64(newLen)
	return nil
}
