package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"time"

	"github.com/go-json-experiment/json/jsontext"
)

// ParseJSON decodes data into an object graph: JSON objects become plain
// objects whose keys keep their document order, arrays become arrays,
// numbers become float64. A repeated object key keeps its first position and
// its last value.
func ParseJSON(data []byte) (Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data), jsontext.AllowDuplicateNames(true))
	v, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrInvalidJSON)
	}
	return v, nil
}

func parseValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return tok.Bool(), nil
	case '"':
		return tok.String(), nil
	case '0':
		return tok.Float(), nil
	case '[':
		a := NewArray(0)
		for i := 0; dec.PeekKind() != ']'; i++ {
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			if err := a.DefineProperty(IndexKey(i), DataDescriptor(v, true, true, true)); err != nil {
				return nil, err
			}
		}
		_, err := dec.ReadToken()
		return a, err
	case '{':
		o := NewPlainObject()
		for dec.PeekKind() != '}' {
			tok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// A token is only valid until the next decoder call.
			name := tok.String()
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			if err := o.DefineProperty(Key(name), DataDescriptor(v, true, true, true)); err != nil {
				return nil, err
			}
		}
		_, err := dec.ReadToken()
		return o, err
	}
	return nil, fmt.Errorf("unexpected token %v", tok.Kind())
}

// StringifyJSON encodes v the way JSON.stringify does: only enumerable own
// string keys are written (getters are called), functions, symbols and
// undefined are skipped inside objects and written as null inside arrays,
// Dates become ISO-8601 strings (null when invalid), Boolean and Number
// wrappers are unwrapped and non-finite numbers become null. Map, Set, weak
// collection and typed array contents are slots, so only their enumerable
// own properties are written.
//
// A cycle fails with [ErrCyclicJSON]; a bigint, or a top-level function,
// symbol or undefined, fails with [ErrUnserializable].
func StringifyJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.AllowInvalidUTF8(true))
	s := &stringifier{enc: enc, stack: make(map[*Object]bool)}
	if s.skipped(v) {
		return nil, fmt.Errorf("%w: %T", ErrUnserializable, v)
	}
	if err := s.write(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

type stringifier struct {
	enc   *jsontext.Encoder
	stack map[*Object]bool
}

// skipped reports whether v has no JSON form and is left out of objects.
func (s *stringifier) skipped(v Value) bool {
	switch x := v.(type) {
	case UndefinedType, *Symbol:
		return true
	case *Object:
		return x != nil && x.kind.IsFunction()
	}
	return false
}

func (s *stringifier) write(v Value) error {
	switch x := v.(type) {
	case nil:
		return s.enc.WriteToken(jsontext.Null)
	case bool:
		return s.enc.WriteToken(jsontext.Bool(x))
	case string:
		return s.enc.WriteToken(jsontext.String(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return s.enc.WriteToken(jsontext.Null)
		}
		return s.enc.WriteToken(jsontext.Float(x + 0))
	case *big.Int:
		return fmt.Errorf("%w: bigint", ErrUnserializable)
	case *Object:
		if x == nil {
			return s.enc.WriteToken(jsontext.Null)
		}
		return s.writeObject(x)
	}
	if s.skipped(v) {
		return s.enc.WriteToken(jsontext.Null)
	}
	return fmt.Errorf("%w: %T", ErrUnserializable, v)
}

func (s *stringifier) writeObject(o *Object) error {
	switch o.kind {
	case KindFunction, KindGeneratorFunction:
		return s.enc.WriteToken(jsontext.Null)
	case KindBoolean, KindNumber:
		return s.write(o.slot)
	case KindDate:
		t, ok := o.Time()
		if !ok {
			return s.enc.WriteToken(jsontext.Null)
		}
		return s.enc.WriteToken(jsontext.String(isoString(t)))
	}
	if s.stack[o] {
		return ErrCyclicJSON
	}
	s.stack[o] = true
	defer delete(s.stack, o)

	if o.kind == KindArray {
		if err := s.enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for i := 0; i < o.Len(); i++ {
			v, err := o.Get(IndexKey(i))
			if err != nil {
				return err
			}
			if err := s.write(v); err != nil {
				return err
			}
		}
		return s.enc.WriteToken(jsontext.EndArray)
	}

	if err := s.enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, k := range o.EnumerableOwnNames() {
		v, err := o.Get(k)
		if err != nil {
			return err
		}
		if s.skipped(v) {
			continue
		}
		if err := s.enc.WriteToken(jsontext.String(k.Name())); err != nil {
			return err
		}
		if err := s.write(v); err != nil {
			return err
		}
	}
	return s.enc.WriteToken(jsontext.EndObject)
}

// isoString formats t like Date.prototype.toISOString, using the expanded
// six-digit year form outside years 0–9999.
func isoString(t time.Time) string {
	if y := t.Year(); y < 0 || y > 9999 {
		sign := "+"
		if y < 0 {
			sign, y = "-", -y
		}
		return fmt.Sprintf("%s%06d%s", sign, y, t.Format("-01-02T15:04:05.000Z"))
	}
	return t.Format("2006-01-02T15:04:05.000Z")
}
