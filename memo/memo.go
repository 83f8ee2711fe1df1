package memo

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ─────────────────────────────────────────────────────────────────────────────
// Options
// ─────────────────────────────────────────────────────────────────────────────

// Options configures a [Func].
type Options[K any] struct {
	// MaxEntries bounds the number of cached results. When a new result
	// would exceed it, the oldest cached result is dropped.
	// Default: 0 (unbounded).
	MaxEntries int

	// Key maps an argument to its cache key. Arguments with equal keys share
	// a result. Required when K is not comparable.
	// Default: nil (the argument itself is the key).
	Key func(K) string

	// CacheErrors keeps failed results in the cache. Otherwise a failure is
	// handed to every caller waiting on that invocation and the next call
	// tries again.
	// Default: false.
	CacheErrors bool
}

// DefaultOptions returns Options for an unbounded cache keyed by the
// argument itself.
func DefaultOptions[K any]() Options[K] {
	return Options[K]{}
}

func validateOptions[K any](opts Options[K]) error {
	if opts.MaxEntries < 0 {
		return fmt.Errorf("%w: max entries must be ≥ 0, got %d", ErrInvalidOption, opts.MaxEntries)
	}
	if opts.Key == nil && !reflect.TypeFor[K]().Comparable() {
		return fmt.Errorf("%w: %v is not comparable and no Key function was given",
			ErrInvalidOption, reflect.TypeFor[K]())
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Func
// ─────────────────────────────────────────────────────────────────────────────

// entry is one cache slot. A pending entry has done == false; its id names
// the in-flight call in the singleflight group.
type entry[V any] struct {
	id   string
	done bool
	val  V
	err  error
}

// Func is a memoized function. It is safe for concurrent use.
type Func[K, V any] struct {
	fn   func(K) (V, error)
	opts Options[K]

	group singleflight.Group

	mu      sync.Mutex
	entries map[any]*entry[V]
	order   []any // completed keys, oldest first
	seq     uint64
}

// New wraps fn in a cache configured by opts. Use [DefaultOptions] for an
// unbounded cache.
func New[K, V any](fn func(K) (V, error), opts Options[K]) (*Func[K, V], error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Func[K, V]{
		fn:      fn,
		opts:    opts,
		entries: make(map[any]*entry[V]),
	}, nil
}

// Memoize caches a function that cannot fail, keyed by its argument.
func Memoize[K comparable, V any](fn func(K) V) func(K) V {
	f, _ := New(func(k K) (V, error) { return fn(k), nil }, DefaultOptions[K]())
	return func(k K) V {
		v, _ := f.Call(k)
		return v
	}
}

func (f *Func[K, V]) cacheKey(k K) any {
	if f.opts.Key != nil {
		return f.opts.Key(k)
	}
	return k
}

// Call returns the cached result for k, invoking the wrapped function when
// there is none. Callers arriving while the function runs for the same key
// wait for that invocation instead of starting another.
func (f *Func[K, V]) Call(k K) (V, error) {
	ck := f.cacheKey(k)

	f.mu.Lock()
	e, ok := f.entries[ck]
	if ok && e.done {
		f.mu.Unlock()
		return e.val, e.err
	}
	if !ok {
		f.seq++
		e = &entry[V]{id: strconv.FormatUint(f.seq, 36)}
		f.entries[ck] = e
	}
	f.mu.Unlock()

	v, err, _ := f.group.Do(e.id, func() (any, error) {
		f.mu.Lock()
		if e.done {
			defer f.mu.Unlock()
			return e.val, e.err
		}
		f.mu.Unlock()

		val, err := f.fn(k)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.entries[ck] == e {
			if err != nil && !f.opts.CacheErrors {
				delete(f.entries, ck)
			} else {
				e.done, e.val, e.err = true, val, err
				f.order = append(f.order, ck)
				f.evict()
			}
		}
		return val, err
	})
	out, _ := v.(V)
	return out, err
}

// evict drops the oldest results beyond MaxEntries. f.mu must be held.
func (f *Func[K, V]) evict() {
	for f.opts.MaxEntries > 0 && len(f.order) > f.opts.MaxEntries {
		delete(f.entries, f.order[0])
		f.order = f.order[1:]
	}
}

// Peek returns the cached result for k without invoking the function.
func (f *Func[K, V]) Peek(k K) (V, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[f.cacheKey(k)]
	if !ok || !e.done || e.err != nil {
		var zero V
		return zero, false
	}
	return e.val, true
}

// Forget drops the result cached for k. A call for k that is still running
// completes normally but its result is not cached.
func (f *Func[K, V]) Forget(k K) {
	ck := f.cacheKey(k)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[ck]; !ok {
		return
	}
	delete(f.entries, ck)
	if i := slices.Index(f.order, ck); i >= 0 {
		f.order = slices.Delete(f.order, i, i+1)
	}
}

// Reset drops every cached result.
func (f *Func[K, V]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.entries)
	f.order = nil
}

// Len returns the number of cached results.
func (f *Func[K, V]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.order)
}
