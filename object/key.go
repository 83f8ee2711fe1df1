package object

import (
	"math"
	"strconv"
)

// PropertyKey names a property: either a string name or a *Symbol.
// PropertyKey values are comparable and usable as map keys.
type PropertyKey struct {
	name string
	sym  *Symbol
}

// Key returns the property key for a string name.
func Key(name string) PropertyKey { return PropertyKey{name: name} }

// SymbolKey returns the property key for a symbol.
func SymbolKey(sym *Symbol) PropertyKey { return PropertyKey{sym: sym} }

// IndexKey returns the canonical string key of an array index.
func IndexKey(i int) PropertyKey { return PropertyKey{name: strconv.Itoa(i)} }

// IsSymbol reports whether k is a symbol key.
func (k PropertyKey) IsSymbol() bool { return k.sym != nil }

// Name returns the string name of k, or "" for symbol keys.
func (k PropertyKey) Name() string { return k.name }

// Symbol returns the symbol of k, or nil for name keys.
func (k PropertyKey) Symbol() *Symbol { return k.sym }

// Index reports whether k is an array index (a canonical decimal integer in
// [0, 2³²-2]) and returns it.
func (k PropertyKey) Index() (uint32, bool) {
	if k.sym != nil || k.name == "" {
		return 0, false
	}
	if len(k.name) > 1 && k.name[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(k.name, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// Value returns k as a [Value]: a string or a *Symbol.
func (k PropertyKey) Value() Value {
	if k.sym != nil {
		return k.sym
	}
	return k.name
}

// String returns the name, or "Symbol(description)" for symbol keys.
func (k PropertyKey) String() string {
	if k.sym != nil {
		return k.sym.String()
	}
	return k.name
}
