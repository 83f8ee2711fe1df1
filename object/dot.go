package object

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation helpers
//
// These functions read, write and test values in nested object graphs using
// dot-separated key paths. Array elements are addressed by index:
//
//	o, _ := object.ParseJSON([]byte(`{"user": {"tags": ["a", "b"]}}`))
//
//	GetPath(o, "user.tags.1")  → "b", true
//	SetPath(o, "user.age", 30.0)
//	HasPath(o, "user.tags")    → true
// ─────────────────────────────────────────────────────────────────────────────

// GetPath looks up a dot-notation path starting at o. Each segment is read
// with [Object.Get], so inherited properties and getters count. It returns
// false when a segment is missing or an intermediate value is primitive.
func GetPath(o *Object, path string) (Value, bool) {
	var current Value = o
	for _, seg := range strings.Split(path, ".") {
		obj, ok := current.(*Object)
		if !ok || obj == nil || !obj.HasProperty(Key(seg)) {
			return nil, false
		}
		v, err := obj.Get(Key(seg))
		if err != nil {
			return nil, false
		}
		current = v
	}
	return current, true
}

// HasPath reports whether every segment of path exists.
func HasPath(o *Object, path string) bool {
	_, ok := GetPath(o, path)
	return ok
}

// SetPath assigns v at the dot-notation path, creating plain objects for
// missing or primitive intermediate segments.
func SetPath(o *Object, path string, v Value) error {
	seg, rest, nested := strings.Cut(path, ".")
	if !nested {
		return o.Set(Key(seg), v)
	}
	cur, err := o.Get(Key(seg))
	if err != nil {
		return err
	}
	next, ok := cur.(*Object)
	if !ok || next == nil {
		next = NewPlainObject()
		if err := o.Set(Key(seg), next); err != nil {
			return err
		}
	}
	return SetPath(next, rest, v)
}

// Dot flattens the enumerable own string-keyed properties of o into a
// single-level map keyed by dot paths. Nested plain objects and arrays are
// descended into; every other value is a leaf. Objects already on the
// current path are treated as leaves, so cycles terminate.
//
//	Dot({"a": {"b": 1}, "c": [2]})  → {"a.b": 1, "c.0": 2}
func Dot(o *Object) map[string]Value {
	out := make(map[string]Value)
	dotFlatten("", o, out, map[*Object]bool{})
	return out
}

func dotFlatten(prefix string, o *Object, out map[string]Value, onPath map[*Object]bool) {
	onPath[o] = true
	defer delete(onPath, o)
	for _, k := range o.EnumerableOwnNames() {
		key := k.Name()
		if prefix != "" {
			key = prefix + "." + key
		}
		v, err := o.Get(k)
		if err != nil {
			continue
		}
		if nested, ok := v.(*Object); ok && nested != nil && !onPath[nested] &&
			(nested.kind == KindArray || (nested.kind == KindObject && nested.proto == ObjectPrototype)) {
			dotFlatten(key, nested, out, onPath)
			continue
		}
		out[key] = v
	}
}
