package object

// PropertyDescriptor describes one own property.
//
// A data descriptor carries Value and Writable; an accessor descriptor
// carries Get and Set. The zero value is a data descriptor holding null with
// every attribute false. Build descriptors with [DataDescriptor] and
// [AccessorDescriptor] to make the intent explicit.
type PropertyDescriptor struct {
	Value    Value
	Get      *Object
	Set      *Object
	Writable bool

	Enumerable   bool
	Configurable bool

	accessor bool
}

// DataDescriptor returns a data descriptor.
func DataDescriptor(value Value, writable, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		Value:        value,
		Writable:     writable,
		Enumerable:   enumerable,
		Configurable: configurable,
	}
}

// AccessorDescriptor returns an accessor descriptor. Either function may be
// nil.
func AccessorDescriptor(get, set *Object, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		Get:          get,
		Set:          set,
		Enumerable:   enumerable,
		Configurable: configurable,
		accessor:     true,
	}
}

// IsAccessor reports whether d describes a getter/setter pair.
func (d PropertyDescriptor) IsAccessor() bool {
	return d.accessor || d.Get != nil || d.Set != nil
}

// IsData reports whether d describes a plain value.
func (d PropertyDescriptor) IsData() bool { return !d.IsAccessor() }

func (d PropertyDescriptor) normalized() PropertyDescriptor {
	if d.IsAccessor() {
		d.accessor = true
		d.Value = nil
		d.Writable = false
	}
	return d
}
