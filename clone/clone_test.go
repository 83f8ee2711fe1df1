package clone_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/hasbyte1/go-value-utils/clone"
	"github.com/hasbyte1/go-value-utils/object"
)

func mustSet(t *testing.T, o *object.Object, key string, v object.Value) {
	t.Helper()
	if err := o.Set(object.Key(key), v); err != nil {
		t.Fatalf("Set(%q): %v", key, err)
	}
}

func mustGet(t *testing.T, o *object.Object, key string) object.Value {
	t.Helper()
	v, err := o.Get(object.Key(key))
	if err != nil {
		t.Fatalf("Get(%q): %v", key, err)
	}
	return v
}

func mustClone(t *testing.T, v object.Value, policy ...clone.Policy) *object.Object {
	t.Helper()
	out, err := clone.Clone(v, policy...)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	return out
}

// sameShape reports whether a and b are structurally identical graphs:
// same kinds, slots, prototypes, extensibility and property descriptors, with
// object-valued properties compared recursively and functions by identity.
func sameShape(a, b *object.Object, seen map[[2]*object.Object]bool) bool {
	if a == b {
		return true
	}
	if seen[[2]*object.Object{a, b}] {
		return true
	}
	seen[[2]*object.Object{a, b}] = true
	if a.Kind() != b.Kind() || a.GetPrototypeOf() != b.GetPrototypeOf() || a.IsExtensible() != b.IsExtensible() {
		return false
	}
	if a.Kind().IsFunction() {
		return false
	}
	if ta, ok := a.Timestamp(); ok {
		tb, _ := b.Timestamp()
		if !object.SameValue(ta, tb) {
			return false
		}
	}
	if ba, ok := a.Bytes(); ok {
		bb, _ := b.Bytes()
		if !bytes.Equal(ba, bb) {
			return false
		}
	}
	ea, eb := a.Entries(), b.Entries()
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if !sameValue(ea[i].Key, eb[i].Key, seen) || !sameValue(ea[i].Value, eb[i].Value, seen) {
			return false
		}
	}
	ka, kb := a.OwnKeys(), b.OwnKeys()
	if len(ka) != len(kb) {
		return false
	}
	for i, k := range ka {
		if kb[i] != k {
			return false
		}
		da, _ := a.GetOwnProperty(k)
		db, _ := b.GetOwnProperty(k)
		if da.Writable != db.Writable || da.Enumerable != db.Enumerable || da.Configurable != db.Configurable {
			return false
		}
		if da.Get != db.Get || da.Set != db.Set || !sameValue(da.Value, db.Value, seen) {
			return false
		}
	}
	return true
}

func sameValue(a, b object.Value, seen map[[2]*object.Object]bool) bool {
	oa, aok := a.(*object.Object)
	ob, bok := b.(*object.Object)
	if aok && bok {
		return sameShape(oa, ob, seen)
	}
	return aok == bok && object.SameValue(a, b)
}

// sampleGraph builds a graph touching every cloneable kind, with a cycle and
// a shared node.
func sampleGraph(t *testing.T) *object.Object {
	t.Helper()
	root := object.NewPlainObject()
	shared := object.NewPlainObject()
	mustSet(t, shared, "n", 1.0)

	m := object.NewMap()
	_ = m.MapSet("shared", shared)
	s := object.NewSet()
	_ = s.SetAdd("x")
	_ = s.SetAdd(shared)

	ta, _ := object.NewTypedArray(object.KindInt16Array, 3)
	_ = ta.SetAt(1, -7.0)

	mustSet(t, root, "self", root)
	mustSet(t, root, "a", shared)
	mustSet(t, root, "b", shared)
	mustSet(t, root, "list", object.ArrayOf(1.0, "two", shared))
	mustSet(t, root, "when", object.NewDate(1000))
	mustSet(t, root, "re", object.MustRegExp("ab+c", "gi"))
	mustSet(t, root, "map", m)
	mustSet(t, root, "set", s)
	mustSet(t, root, "num", object.NewNumber(42))
	mustSet(t, root, "err", object.NewError(object.RangeErrorPrototype, "out of range"))
	mustSet(t, root, "bytes", ta)
	_ = root.DefineProperty(object.Key("hidden"), object.DataDescriptor("h", false, false, true))
	_ = root.DefineProperty(object.SymbolKey(object.NewSymbol("tag")), object.DataDescriptor(true, true, true, true))
	return root
}

// ─── Core properties ──────────────────────────────────────────────────────────

func TestClonePrimitiveRoot(t *testing.T) {
	for _, v := range []object.Value{nil, object.Undefined, true, 1.5, "s", object.NewSymbol("x"), (*object.Object)(nil)} {
		out, err := clone.Clone(v)
		if !errors.Is(err, clone.ErrPrimitive) {
			t.Fatalf("Clone(%v) error = %v; want ErrPrimitive", v, err)
		}
		if out != nil {
			t.Fatalf("Clone(%v) = %v; want nil", v, out)
		}
	}
}

func TestCloneIsDeepAndDistinct(t *testing.T) {
	src := sampleGraph(t)
	once := mustClone(t, src)
	twice := mustClone(t, once)

	if once == src || twice == once {
		t.Fatal("clone returned its input")
	}
	if !sameShape(src, once, map[[2]*object.Object]bool{}) {
		t.Fatal("clone(v) does not match v")
	}
	if !sameShape(once, twice, map[[2]*object.Object]bool{}) {
		t.Fatal("clone(clone(v)) does not match clone(v)")
	}
	if mustGet(t, once, "list") == mustGet(t, src, "list") {
		t.Fatal("nested array shared with source")
	}
}

func TestCloneCycle(t *testing.T) {
	a := object.NewPlainObject()
	mustSet(t, a, "self", a)
	b := object.NewPlainObject()
	mustSet(t, a, "b", b)
	mustSet(t, b, "a", a)

	out := mustClone(t, a)
	if mustGet(t, out, "self") != out {
		t.Fatal("self reference not preserved")
	}
	ob := mustGet(t, out, "b").(*object.Object)
	if ob == b || mustGet(t, ob, "a") != out {
		t.Fatal("mutual reference not preserved")
	}
}

func TestCloneSharedSubgraph(t *testing.T) {
	shared := object.NewPlainObject()
	root := object.NewPlainObject()
	mustSet(t, root, "x", shared)
	mustSet(t, root, "y", shared)

	out := mustClone(t, root)
	x, y := mustGet(t, out, "x"), mustGet(t, out, "y")
	if x != y {
		t.Fatal("shared node cloned twice")
	}
	if x == shared {
		t.Fatal("shared node not cloned")
	}
}

func TestCloneDoesNotMutateSource(t *testing.T) {
	src := sampleGraph(t)
	before := mustClone(t, src)
	_ = mustClone(t, src, clone.Policy{IgnoreAttributes: true, IgnoreExtensibility: true, IgnoreSymbols: true})
	if !sameShape(src, before, map[[2]*object.Object]bool{}) {
		t.Fatal("source changed by Clone")
	}
}

// ─── Kinds ────────────────────────────────────────────────────────────────────

func TestCloneDate(t *testing.T) {
	out := mustClone(t, object.NewDate(1000))
	if ms, _ := out.Timestamp(); ms != 1000 {
		t.Fatalf("Timestamp() = %v; want 1000", ms)
	}
	if out.GetPrototypeOf() != object.DatePrototype {
		t.Fatal("Date prototype lost")
	}
}

func TestCloneRegExp(t *testing.T) {
	src := object.MustRegExp("ab+c", "gi")
	mustSet(t, src, "lastIndex", 3.0)
	out := mustClone(t, src)
	if s, _ := out.Source(); s != "ab+c" {
		t.Fatalf("Source() = %q; want %q", s, "ab+c")
	}
	if f, _ := out.Flags(); f != "gi" {
		t.Fatalf("Flags() = %q; want %q", f, "gi")
	}
	if got := mustGet(t, out, "lastIndex"); got != 3.0 {
		t.Fatalf("lastIndex = %v; want 3", got)
	}
	re, _ := out.Regexp()
	if !re.MatchString("xABBC") {
		t.Fatal("cloned pattern lost the i flag")
	}
}

func TestCloneMap(t *testing.T) {
	key := object.NewPlainObject()
	val := object.NewPlainObject()
	m := object.NewMap()
	_ = m.MapSet("a", 1.0)
	_ = m.MapSet(key, val)
	_ = m.MapSet("self", m)

	out := mustClone(t, m)
	if out == m {
		t.Fatal("map not cloned")
	}
	if v, _ := out.MapGet("a"); v != 1.0 {
		t.Fatalf(`MapGet("a") = %v; want 1`, v)
	}
	v, ok := out.MapGet(key)
	if !ok {
		t.Fatal("object key not shared")
	}
	if v == val {
		t.Fatal("map value not cloned")
	}
	if self, _ := out.MapGet("self"); self != out {
		t.Fatal("map self reference not preserved")
	}
	entries := out.Entries()
	if len(entries) != 3 || entries[0].Key != "a" || entries[2].Key != "self" {
		t.Fatalf("entry order = %v", entries)
	}
	_ = out.MapSet("b", 2.0)
	if m.Has("b") {
		t.Fatal("clone shares its table with the source")
	}
}

func TestCloneSet(t *testing.T) {
	elem := object.NewPlainObject()
	s := object.NewSet()
	_ = s.SetAdd("x")
	_ = s.SetAdd(elem)

	out := mustClone(t, s)
	entries := out.Entries()
	if len(entries) != 2 || entries[0].Key != "x" {
		t.Fatalf("entries = %v", entries)
	}
	if entries[1].Key == elem {
		t.Fatal("set element not cloned")
	}
	if out.Has(elem) {
		t.Fatal("clone holds the source element")
	}
}

func TestCloneWeakCollectionsEmpty(t *testing.T) {
	key := object.NewPlainObject()
	wm := object.NewWeakMap()
	_ = wm.WeakMapSet(key, 1.0)
	ws := object.NewWeakSet()
	_ = ws.WeakSetAdd(key)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	for _, src := range []*object.Object{wm, ws} {
		out := mustClone(t, src, clone.Policy{Logger: logger})
		if out.Kind() != src.Kind() {
			t.Fatalf("Kind() = %v; want %v", out.Kind(), src.Kind())
		}
		if out.WeakHas(key) {
			t.Fatalf("%v clone is not empty", src.Kind())
		}
	}
	if !strings.Contains(buf.String(), "weak collection cloned empty") {
		t.Fatalf("missing debug record, got %q", buf.String())
	}
}

func TestCloneBoxed(t *testing.T) {
	for _, src := range []*object.Object{object.NewNumber(42), object.NewBoolean(true)} {
		out := mustClone(t, src)
		want, _ := src.PrimitiveValue()
		if got, _ := out.PrimitiveValue(); got != want || out == src {
			t.Fatalf("PrimitiveValue() = %v; want %v", got, want)
		}
	}
}

func TestCloneError(t *testing.T) {
	src := object.NewError(object.TypeErrorPrototype, "bad input")
	mustSet(t, src, "code", "E_BAD")
	out := mustClone(t, src)
	if out.GetPrototypeOf() != object.TypeErrorPrototype {
		t.Fatal("TypeError prototype lost")
	}
	if msg, _ := out.Message(); msg != "bad input" {
		t.Fatalf("Message() = %q; want %q", msg, "bad input")
	}
	if d, _ := out.GetOwnProperty(object.Key("message")); d.Enumerable {
		t.Fatal("message became enumerable")
	}
	if got := mustGet(t, out, "code"); got != "E_BAD" {
		t.Fatalf("code = %v; want E_BAD", got)
	}
}

func TestCloneTypedArrays(t *testing.T) {
	for _, k := range object.Kinds() {
		if !k.IsTypedArray() {
			continue
		}
		src, err := object.NewTypedArray(k, 4)
		if err != nil {
			t.Fatalf("NewTypedArray(%v): %v", k, err)
		}
		b, _ := src.Bytes()
		for i := range b {
			b[i] = byte(i + 1)
		}
		src, _ = object.TypedArrayFrom(k, b)

		out := mustClone(t, src)
		if out.Kind() != k || out.GetPrototypeOf() != object.PrototypeFor(k) {
			t.Fatalf("%v: kind or prototype lost", k)
		}
		got, _ := out.Bytes()
		if !bytes.Equal(got, b) {
			t.Fatalf("%v: Bytes() = %v; want %v", k, got, b)
		}
		zero, _ := src.At(0)
		if k == object.KindBigInt64Array || k == object.KindBigUint64Array {
			continue
		}
		_ = out.SetAt(0, 0.0)
		if again, _ := src.At(0); again != zero {
			t.Fatalf("%v: clone shares its buffer", k)
		}
	}
}

func TestCloneSparseArray(t *testing.T) {
	src := object.NewArray(3)
	_ = src.DefineProperty(object.IndexKey(1), object.DataDescriptor("mid", true, true, true))
	out := mustClone(t, src)
	if out.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", out.Len())
	}
	if out.HasOwnProperty(object.IndexKey(0)) || !out.HasOwnProperty(object.IndexKey(1)) {
		t.Fatal("holes not preserved")
	}
}

// ─── Prototypes ───────────────────────────────────────────────────────────────

func TestClonePrototypeShared(t *testing.T) {
	proto := object.NewPlainObject()
	mustSet(t, proto, "greet", "hi")
	child := object.NewObject(proto)
	root := object.NewPlainObject()
	mustSet(t, root, "child", child)
	mustSet(t, root, "proto", proto)

	out := mustClone(t, root)
	oc := mustGet(t, out, "child").(*object.Object)
	if oc.GetPrototypeOf() != proto {
		t.Fatal("prototype copied instead of shared")
	}
	if mustGet(t, out, "proto") != proto {
		t.Fatal("visited prototype cloned as data")
	}
	if mustGet(t, oc, "greet") != "hi" {
		t.Fatal("inherited property lost")
	}
}

func TestCloneNullPrototype(t *testing.T) {
	src := object.NewObject(nil)
	mustSet(t, src, "k", "v")
	out := mustClone(t, src)
	if out.GetPrototypeOf() != nil {
		t.Fatal("null prototype not preserved")
	}
}

// ─── Policy ───────────────────────────────────────────────────────────────────

func TestCloneFunctions(t *testing.T) {
	fn := object.NewFunction("f", 0, nil)
	src := object.NewPlainObject()
	mustSet(t, src, "f", fn)

	_, err := clone.Clone(src)
	if !errors.Is(err, clone.ErrFunction) {
		t.Fatalf("Clone error = %v; want ErrFunction", err)
	}
	var pe *clone.PathError
	if !errors.As(err, &pe) || pe.Path.String() != "f" {
		t.Fatalf("error path = %v; want f", err)
	}

	out := mustClone(t, src, clone.Policy{AllowFunctions: true})
	if mustGet(t, out, "f") != fn {
		t.Fatal("function not shared by reference")
	}
}

func TestCloneFunctionRoot(t *testing.T) {
	gen := object.NewGeneratorFunction("g", 0, nil)
	if _, err := clone.Clone(gen); !errors.Is(err, clone.ErrFunction) {
		t.Fatalf("Clone(generator) error = %v; want ErrFunction", err)
	}
	if out := mustClone(t, gen, clone.Policy{AllowFunctions: true}); out != gen {
		t.Fatal("allowed function root not returned as is")
	}
}

func TestCloneErrorPath(t *testing.T) {
	fn := object.NewFunction("cb", 1, nil)
	tag := object.NewSymbol("hook")
	inner := object.NewPlainObject()
	_ = inner.DefineProperty(object.SymbolKey(tag), object.DataDescriptor(fn, true, true, true))
	m := object.NewMap()
	_ = m.MapSet("k", inner)
	src := object.NewPlainObject()
	mustSet(t, src, "a", object.ArrayOf(0.0, m))

	_, err := clone.Clone(src)
	var pe *clone.PathError
	if !errors.As(err, &pe) {
		t.Fatalf("Clone error = %v; want *PathError", err)
	}
	if got, want := pe.Path.String(), "a[1]<entry 0>[Symbol(hook)]"; got != want {
		t.Fatalf("Path = %q; want %q", got, want)
	}
	keys := pe.Path.Keys()
	if len(keys) != 3 || keys[0].Name() != "a" || keys[2].Symbol() != tag {
		t.Fatalf("Keys() = %v", keys)
	}

	if _, err := clone.Clone(src, clone.Policy{IgnoreSymbols: true}); err != nil {
		t.Fatalf("Clone with IgnoreSymbols: %v", err)
	}
}

func TestCloneAccessors(t *testing.T) {
	getter := object.NewFunction("get", 0, func(object.Value, ...object.Value) (object.Value, error) {
		return "computed", nil
	})
	src := object.NewPlainObject()
	_ = src.DefineProperty(object.Key("v"), object.AccessorDescriptor(getter, nil, true, true))

	_, err := clone.Clone(src)
	if !errors.Is(err, clone.ErrAccessor) {
		t.Fatalf("Clone error = %v; want ErrAccessor", err)
	}
	var pe *clone.PathError
	if !errors.As(err, &pe) || pe.Path.String() != "v" {
		t.Fatalf("error path = %v; want v", err)
	}

	out := mustClone(t, src, clone.Policy{AllowAccessors: true})
	d, ok := out.GetOwnProperty(object.Key("v"))
	if !ok || !d.IsAccessor() || d.Get != getter {
		t.Fatalf("descriptor = %+v; want shared getter", d)
	}
	if mustGet(t, out, "v") != "computed" {
		t.Fatal("getter not callable on clone")
	}
}

func TestCloneAttributes(t *testing.T) {
	src := object.NewPlainObject()
	_ = src.DefineProperty(object.Key("hidden"), object.DataDescriptor(1.0, false, false, false))

	out := mustClone(t, src)
	d, _ := out.GetOwnProperty(object.Key("hidden"))
	if d.Enumerable || d.Writable || d.Configurable {
		t.Fatalf("attributes = %+v; want all false", d)
	}

	out = mustClone(t, src, clone.Policy{IgnoreAttributes: true})
	d, _ = out.GetOwnProperty(object.Key("hidden"))
	if !d.Enumerable || !d.Writable || !d.Configurable || d.Value != 1.0 {
		t.Fatalf("attributes = %+v; want plain data property", d)
	}
}

func TestCloneIgnoreAttributesArrayLength(t *testing.T) {
	src := object.ArrayOf("a", "b")
	out := mustClone(t, src, clone.Policy{IgnoreAttributes: true})
	if out.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", out.Len())
	}
	if d, _ := out.GetOwnProperty(object.Key("length")); d.Enumerable || d.Configurable {
		t.Fatalf("length attributes = %+v", d)
	}
}

func TestCloneExtensibility(t *testing.T) {
	src := object.NewPlainObject()
	src.PreventExtensions()
	if mustClone(t, src).IsExtensible() {
		t.Fatal("non-extensible source gave extensible clone")
	}
	if !mustClone(t, src, clone.Policy{IgnoreExtensibility: true}).IsExtensible() {
		t.Fatal("IgnoreExtensibility clone is not extensible")
	}
}

func TestCloneFrozen(t *testing.T) {
	src := object.ArrayOf(1.0, 2.0)
	src.Freeze()
	if !mustClone(t, src).IsFrozen() {
		t.Fatal("frozen source gave unfrozen clone")
	}
	loose := mustClone(t, src, clone.Policy{IgnoreAttributes: true, IgnoreExtensibility: true})
	if loose.IsFrozen() {
		t.Fatal("relaxed clone is still frozen")
	}
	if err := loose.Set(object.IndexKey(0), 9.0); err != nil {
		t.Fatalf("Set on relaxed clone: %v", err)
	}
}

func TestCloneSymbols(t *testing.T) {
	sym := object.NewSymbol("id")
	src := object.NewPlainObject()
	_ = src.DefineProperty(object.SymbolKey(sym), object.DataDescriptor(7.0, true, true, true))
	mustSet(t, src, "sym", sym)

	out := mustClone(t, src)
	if v, _ := out.Get(object.SymbolKey(sym)); v != 7.0 {
		t.Fatalf("symbol property = %v; want 7", v)
	}
	if mustGet(t, out, "sym") != sym {
		t.Fatal("symbol value not preserved")
	}

	out = mustClone(t, src, clone.Policy{IgnoreSymbols: true})
	if out.HasOwnProperty(object.SymbolKey(sym)) {
		t.Fatal("symbol key copied despite IgnoreSymbols")
	}
}

func TestMustClonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustClone(primitive) did not panic")
		}
	}()
	clone.MustClone(1.0)
}

func TestCloneConcurrent(t *testing.T) {
	src := sampleGraph(t)
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := clone.Clone(src)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Clone: %v", err)
	}
}

func TestCloneErrorKeyOrder(t *testing.T) {
	src := object.NewError(object.ErrorPrototype, "")
	mustSet(t, src, "code", "E_LATE")
	_ = src.DefineProperty(object.Key("message"), object.DataDescriptor("late", true, false, true))

	out := mustClone(t, src)
	keys := out.OwnKeys()
	if len(keys) != 2 || keys[0].Name() != "code" || keys[1].Name() != "message" {
		t.Fatalf("OwnKeys() = %v; want [code message]", keys)
	}
	if msg, _ := out.Message(); msg != "late" {
		t.Fatalf("Message() = %q; want late", msg)
	}
}
