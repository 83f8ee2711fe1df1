package clone

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/hasbyte1/go-value-utils/is"
	"github.com/hasbyte1/go-value-utils/object"
)

// Clone returns a deep copy of the object graph rooted at v.
//
// Every distinct object is copied once: shared sub-graphs stay shared and
// cycles are reproduced as cycles. Each copy has the kind, internal slot,
// prototype, own properties (with their attributes) and extensibility of its
// source, subject to the policy (default [DefaultPolicy]). Map values and Set
// elements are cloned; Map keys are shared. Weak collections clone empty
// because their entries cannot be enumerated. Prototypes are shared, never
// copied.
//
// A primitive root fails with [ErrPrimitive]. Functions and accessors fail
// with [ErrFunction] and [ErrAccessor] unless allowed; those errors, and any
// failure to rebuild a property, come wrapped in a [*PathError]. No partial
// result is returned.
func Clone(v object.Value, policy ...Policy) (*object.Object, error) {
	root, ok := v.(*object.Object)
	if !ok || root == nil {
		return nil, fmt.Errorf("%w: got %s", ErrPrimitive, is.Tag(v))
	}
	return newCloner(pick(policy)).node(root)
}

// MustClone is like [Clone] but panics on error.
func MustClone(v object.Value, policy ...Policy) *object.Object {
	out, err := Clone(v, policy...)
	if err != nil {
		panic(err)
	}
	return out
}

// cloner holds the state of one Clone call.
type cloner struct {
	policy  Policy
	logger  *slog.Logger
	visited map[*object.Object]*object.Object
	protos  map[*object.Object]struct{}
	path    Path
}

func newCloner(p Policy) *cloner {
	return &cloner{
		policy:  p,
		logger:  p.logger(),
		visited: make(map[*object.Object]*object.Object),
		protos:  make(map[*object.Object]struct{}),
	}
}

func (c *cloner) fail(err error) error {
	return &PathError{Path: slices.Clone(c.path), Err: err}
}

func (c *cloner) value(v object.Value) (object.Value, error) {
	o, ok := v.(*object.Object)
	if !ok || o == nil {
		return v, nil
	}
	return c.node(o)
}

func (c *cloner) node(o *object.Object) (*object.Object, error) {
	if is.Function(o) {
		if !c.policy.AllowFunctions {
			return nil, c.fail(ErrFunction)
		}
		return o, nil
	}
	if dup, ok := c.visited[o]; ok {
		return dup, nil
	}
	if _, ok := c.protos[o]; ok {
		return o, nil
	}

	shell, err := factoryFor(o.Kind())(o)
	if err != nil {
		return nil, c.fail(err)
	}
	if shell == o {
		return o, nil
	}
	proto := o.GetPrototypeOf()
	if proto != nil {
		c.protos[proto] = struct{}{}
	}
	if shell.GetPrototypeOf() != proto {
		if err := shell.SetPrototypeOf(proto); err != nil {
			return nil, c.fail(err)
		}
	}
	// Registered before the children so that back-references resolve to it.
	c.visited[o] = shell

	keys := o.OwnKeys()
	if c.policy.IgnoreSymbols {
		keys = o.OwnPropertyNames()
	}
	for _, k := range keys {
		c.path = append(c.path, propertySegment(k))
		if err := c.property(o, shell, k); err != nil {
			return nil, err
		}
		c.path = c.path[:len(c.path)-1]
	}
	if err := c.entries(o, shell); err != nil {
		return nil, err
	}

	if !c.policy.IgnoreExtensibility && !o.IsExtensible() {
		shell.PreventExtensions()
	}
	return shell, nil
}

func (c *cloner) property(src, shell *object.Object, k object.PropertyKey) error {
	desc, ok := src.GetOwnProperty(k)
	if !ok {
		return nil
	}
	if desc.IsAccessor() {
		if !c.policy.AllowAccessors {
			return c.fail(ErrAccessor)
		}
		return c.define(shell, k, desc)
	}
	v, err := c.value(desc.Value)
	if err != nil {
		return err
	}
	if c.policy.IgnoreAttributes {
		if cur, exists := shell.GetOwnProperty(k); exists && !cur.Configurable {
			return c.wrap(shell.Set(k, v))
		}
		return c.define(shell, k, object.DataDescriptor(v, true, true, true))
	}
	desc.Value = v
	return c.define(shell, k, desc)
}

func (c *cloner) define(shell *object.Object, k object.PropertyKey, desc object.PropertyDescriptor) error {
	return c.wrap(shell.DefineProperty(k, desc))
}

func (c *cloner) wrap(err error) error {
	if err != nil {
		return c.fail(err)
	}
	return nil
}

// entries fills Map and Set shells, which keep their contents in a slot
// rather than in own properties.
func (c *cloner) entries(src, shell *object.Object) error {
	switch src.Kind() {
	case object.KindMap, object.KindSet:
	case object.KindWeakMap, object.KindWeakSet:
		c.logger.Debug("clone: weak collection cloned empty",
			slog.String("kind", src.Kind().String()),
			slog.String("path", c.path.String()))
		return nil
	default:
		return nil
	}
	for i, e := range src.Entries() {
		c.path = append(c.path, entrySegment(i))
		v, err := c.value(e.Value)
		if err != nil {
			return err
		}
		if src.Kind() == object.KindMap {
			err = shell.MapSet(e.Key, v)
		} else {
			err = shell.SetAdd(v)
		}
		if err != nil {
			return c.fail(err)
		}
		c.path = c.path[:len(c.path)-1]
	}
	return nil
}
