package object

import (
	"fmt"
	"math"
	"math/big"
	"runtime"
	"sync"
	"weak"
)

// ─────────────────────────────────────────────────────────────────────────────
// Map & Set
// ─────────────────────────────────────────────────────────────────────────────

// Entry is one key/value pair of a Map. For a Set, Key and Value are the
// same element.
type Entry struct {
	Key   Value
	Value Value
}

type nanKey struct{}

type bigintKey string

// entryKey maps a value onto a Go map key with SameValueZero semantics.
func entryKey(v Value) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return nanKey{}
		}
		if x == 0 {
			return float64(0)
		}
	case *big.Int:
		return bigintKey(x.String())
	}
	return v
}

// orderedTable keeps entries in insertion order. Deleted entries leave a
// tombstone until more than half of the table is dead.
type orderedTable struct {
	entries []Entry
	live    []bool
	index   map[any]int
	size    int
}

func newOrderedTable() *orderedTable {
	return &orderedTable{index: make(map[any]int)}
}

func (t *orderedTable) get(k Value) (Value, bool) {
	i, ok := t.index[entryKey(k)]
	if !ok {
		return Undefined, false
	}
	return t.entries[i].Value, true
}

func (t *orderedTable) set(k, v Value) {
	ek := entryKey(k)
	if i, ok := t.index[ek]; ok {
		t.entries[i].Value = v
		return
	}
	if f, ok := k.(float64); ok && f == 0 {
		k = float64(0)
	}
	t.index[ek] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: k, Value: v})
	t.live = append(t.live, true)
	t.size++
}

func (t *orderedTable) delete(k Value) bool {
	ek := entryKey(k)
	i, ok := t.index[ek]
	if !ok {
		return false
	}
	delete(t.index, ek)
	t.live[i] = false
	t.entries[i] = Entry{}
	t.size--
	if dead := len(t.entries) - t.size; dead > 8 && dead > t.size {
		t.compact()
	}
	return true
}

func (t *orderedTable) compact() {
	entries := make([]Entry, 0, t.size)
	for i, e := range t.entries {
		if t.live[i] {
			t.index[entryKey(e.Key)] = len(entries)
			entries = append(entries, e)
		}
	}
	t.entries = entries
	t.live = make([]bool, len(entries))
	for i := range t.live {
		t.live[i] = true
	}
}

func (t *orderedTable) snapshot() []Entry {
	out := make([]Entry, 0, t.size)
	for i, e := range t.entries {
		if t.live[i] {
			out = append(out, e)
		}
	}
	return out
}

// NewMap returns an empty Map.
func NewMap() *Object {
	return newObject(KindMap, MapPrototype, newOrderedTable())
}

// NewSet returns an empty Set.
func NewSet() *Object {
	return newObject(KindSet, SetPrototype, newOrderedTable())
}

func (o *Object) table(kinds ...Kind) (*orderedTable, error) {
	t, ok := o.slot.(*orderedTable)
	if ok {
		for _, k := range kinds {
			if o.kind == k {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidKind, o)
}

// MapGet returns the value stored under key in a Map.
func (o *Object) MapGet(key Value) (Value, bool) {
	t, err := o.table(KindMap)
	if err != nil {
		return Undefined, false
	}
	return t.get(key)
}

// MapSet stores value under key in a Map.
func (o *Object) MapSet(key, value Value) error {
	t, err := o.table(KindMap)
	if err != nil {
		return err
	}
	t.set(key, value)
	return nil
}

// SetAdd adds v to a Set.
func (o *Object) SetAdd(v Value) error {
	t, err := o.table(KindSet)
	if err != nil {
		return err
	}
	t.set(v, v)
	return nil
}

// Has reports whether a Map has key or a Set has element key.
func (o *Object) Has(key Value) bool {
	t, err := o.table(KindMap, KindSet)
	if err != nil {
		return false
	}
	_, ok := t.get(key)
	return ok
}

// Remove deletes key from a Map or Set and reports whether it was present.
func (o *Object) Remove(key Value) bool {
	t, err := o.table(KindMap, KindSet)
	if err != nil {
		return false
	}
	return t.delete(key)
}

// Clear empties a Map or Set.
func (o *Object) Clear() {
	if t, err := o.table(KindMap, KindSet); err == nil {
		*t = *newOrderedTable()
	}
}

// Size returns the number of entries of a Map or Set.
func (o *Object) Size() int {
	t, err := o.table(KindMap, KindSet)
	if err != nil {
		return 0
	}
	return t.size
}

// Entries returns a snapshot of the entries of a Map or Set in insertion
// order.
func (o *Object) Entries() []Entry {
	t, err := o.table(KindMap, KindSet)
	if err != nil {
		return nil
	}
	return t.snapshot()
}

// ─────────────────────────────────────────────────────────────────────────────
// WeakMap & WeakSet
// ─────────────────────────────────────────────────────────────────────────────

// weakTable holds its keys weakly: an entry disappears once its key object
// is garbage collected. Values are held strongly, so a value referring to its
// own key keeps that entry alive. Cleanups run on a runtime goroutine,
// hence the mutex.
type weakTable struct {
	mu      sync.Mutex
	entries map[weak.Pointer[Object]]Value
}

func newWeakTable() *weakTable {
	return &weakTable{entries: make(map[weak.Pointer[Object]]Value)}
}

func (t *weakTable) put(key *Object, v Value) {
	wp := weak.Make(key)
	t.mu.Lock()
	_, existed := t.entries[wp]
	t.entries[wp] = v
	t.mu.Unlock()
	if !existed {
		runtime.AddCleanup(key, t.drop, wp)
	}
}

func (t *weakTable) drop(wp weak.Pointer[Object]) {
	t.mu.Lock()
	delete(t.entries, wp)
	t.mu.Unlock()
}

func (t *weakTable) lookup(key *Object) (Value, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[weak.Make(key)]
	return v, ok
}

// NewWeakMap returns an empty WeakMap.
func NewWeakMap() *Object {
	return newObject(KindWeakMap, WeakMapPrototype, newWeakTable())
}

// NewWeakSet returns an empty WeakSet.
func NewWeakSet() *Object {
	return newObject(KindWeakSet, WeakSetPrototype, newWeakTable())
}

func (o *Object) weakTable(kind Kind) (*weakTable, error) {
	t, ok := o.slot.(*weakTable)
	if !ok || o.kind != kind {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, o)
	}
	return t, nil
}

// WeakMapGet returns the value a WeakMap holds for key.
func (o *Object) WeakMapGet(key *Object) (Value, bool) {
	t, err := o.weakTable(KindWeakMap)
	if err != nil || key == nil {
		return Undefined, false
	}
	return t.lookup(key)
}

// WeakMapSet stores value for key in a WeakMap.
func (o *Object) WeakMapSet(key *Object, value Value) error {
	t, err := o.weakTable(KindWeakMap)
	if err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("%w: weak keys must be objects", ErrInvalidKind)
	}
	t.put(key, value)
	return nil
}

// WeakSetAdd adds key to a WeakSet.
func (o *Object) WeakSetAdd(key *Object) error {
	t, err := o.weakTable(KindWeakSet)
	if err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("%w: weak keys must be objects", ErrInvalidKind)
	}
	t.put(key, true)
	return nil
}

// WeakHas reports whether a WeakMap or WeakSet holds key.
func (o *Object) WeakHas(key *Object) bool {
	t, ok := o.slot.(*weakTable)
	if !ok || key == nil {
		return false
	}
	_, found := t.lookup(key)
	return found
}

// WeakDelete removes key from a WeakMap or WeakSet.
func (o *Object) WeakDelete(key *Object) bool {
	t, ok := o.slot.(*weakTable)
	if !ok || key == nil {
		return false
	}
	wp := weak.Make(key)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, found := t.entries[wp]
	delete(t.entries, wp)
	return found
}
