package clone

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hasbyte1/go-value-utils/arr"
	"github.com/hasbyte1/go-value-utils/object"
)

type segmentKind uint8

const (
	segProperty segmentKind = iota
	segEntry
	segField
	segIndex
	segMapKey
)

// Segment is one step of a [Path]: an object property, a Map or Set entry,
// or, for native Go values, a struct field, slice index or map key.
type Segment struct {
	kind   segmentKind
	key    object.PropertyKey
	name   string
	index  int
	mapKey reflect.Value
}

func propertySegment(k object.PropertyKey) Segment { return Segment{kind: segProperty, key: k} }
func entrySegment(i int) Segment                   { return Segment{kind: segEntry, index: i} }
func fieldSegment(name string) Segment             { return Segment{kind: segField, name: name} }
func indexSegment(i int) Segment                   { return Segment{kind: segIndex, index: i} }
func mapKeySegment(k reflect.Value) Segment        { return Segment{kind: segMapKey, mapKey: k} }

// Key returns the property key of a property segment.
func (s Segment) Key() (object.PropertyKey, bool) {
	return s.key, s.kind == segProperty
}

// String renders the segment the way it would be written in an accessor
// expression: ".name", "[0]", "[Symbol(tag)]", "<entry 2>", `["key"]`.
func (s Segment) String() string {
	switch s.kind {
	case segProperty:
		if s.key.IsSymbol() {
			return "[" + s.key.String() + "]"
		}
		if _, ok := s.key.Index(); ok {
			return "[" + s.key.Name() + "]"
		}
		return "." + s.key.Name()
	case segEntry:
		return fmt.Sprintf("<entry %d>", s.index)
	case segField:
		return "." + s.name
	case segIndex:
		return fmt.Sprintf("[%d]", s.index)
	case segMapKey:
		if s.mapKey.IsValid() && s.mapKey.CanInterface() {
			return fmt.Sprintf("[%#v]", s.mapKey.Interface())
		}
		return "[?]"
	}
	return "?"
}

// Path is the route from the clone root to a node.
type Path []Segment

// String renders the whole path, e.g. "a.b[0][Symbol(id)]".
func (p Path) String() string {
	s := strings.Join(arr.Map(p, func(seg Segment, _ int) string { return seg.String() }), "")
	return strings.TrimPrefix(s, ".")
}

// Keys returns the property keys along the path, skipping entry and native
// segments.
func (p Path) Keys() []object.PropertyKey {
	props := arr.Filter(p, func(seg Segment, _ int) bool { return seg.kind == segProperty })
	return arr.Map(props, func(seg Segment, _ int) object.PropertyKey { return seg.key })
}
