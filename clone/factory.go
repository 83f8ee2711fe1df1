package clone

import (
	"fmt"

	"github.com/hasbyte1/go-value-utils/object"
)

// shellFactory builds an empty object of the same kind as src, carrying over
// the kind's internal slot but none of the own properties.
type shellFactory func(src *object.Object) (*object.Object, error)

// factories maps every recognised kind to its shell constructor. Kinds
// missing from the table are built as ordinary objects by plainShell.
var factories = func() map[object.Kind]shellFactory {
	m := map[object.Kind]shellFactory{
		object.KindObject:            plainShell,
		object.KindArray:             arrayShell,
		object.KindFunction:          sameFunction,
		object.KindGeneratorFunction: sameFunction,
		object.KindDate:              dateShell,
		object.KindRegExp:            regexpShell,
		object.KindMap:               func(*object.Object) (*object.Object, error) { return object.NewMap(), nil },
		object.KindSet:               func(*object.Object) (*object.Object, error) { return object.NewSet(), nil },
		object.KindWeakMap:           func(*object.Object) (*object.Object, error) { return object.NewWeakMap(), nil },
		object.KindWeakSet:           func(*object.Object) (*object.Object, error) { return object.NewWeakSet(), nil },
		object.KindBoolean:           boxedShell,
		object.KindNumber:            boxedShell,
		object.KindError:             errorShell,
	}
	for _, k := range object.Kinds() {
		if k.IsTypedArray() {
			m[k] = typedArrayShell
		}
	}
	return m
}()

func factoryFor(k object.Kind) shellFactory {
	if f, ok := factories[k]; ok {
		return f
	}
	return plainShell
}

func plainShell(src *object.Object) (*object.Object, error) {
	return object.NewObject(src.GetPrototypeOf()), nil
}

func arrayShell(src *object.Object) (*object.Object, error) {
	return object.NewArray(src.Len()), nil
}

// sameFunction returns the function itself: closures cannot be duplicated.
func sameFunction(src *object.Object) (*object.Object, error) {
	return src, nil
}

func dateShell(src *object.Object) (*object.Object, error) {
	ms, _ := src.Timestamp()
	return object.NewDate(ms), nil
}

func regexpShell(src *object.Object) (*object.Object, error) {
	source, _ := src.Source()
	flags, _ := src.Flags()
	return object.NewRegExp(source, flags)
}

func boxedShell(src *object.Object) (*object.Object, error) {
	v, _ := src.PrimitiveValue()
	switch x := v.(type) {
	case bool:
		return object.NewBoolean(x), nil
	case float64:
		return object.NewNumber(x), nil
	}
	return nil, fmt.Errorf("%w: boxed %T", object.ErrInvalidKind, v)
}

// errorShell builds a bare Error. The message is an own property and is
// copied in source order by the engine, which also re-applies the prototype.
func errorShell(*object.Object) (*object.Object, error) {
	return object.NewError(nil, ""), nil
}

func typedArrayShell(src *object.Object) (*object.Object, error) {
	b, _ := src.Bytes()
	return object.TypedArrayFrom(src.Kind(), b)
}
