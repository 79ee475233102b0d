// Package document defines the structured-document boundary the converter
// reads and writes: a small, self-contained tree type (Value) with typed
// accessors, plus a JSON-backed reader/writer. The core treats this tree as
// opaque; only the conversion functions in this package know the field
// names a solution document must carry.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tandemgo/tws/errs"
)

// Kind discriminates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindArray
	KindObject
)

// Value is a tagged union over the node types a structured document is
// built from. The zero Value is KindNull.
type Value struct {
	kind Kind
	str  string
	num  int64
	arr  []Value
	obj  map[string]Value
}

func Null() Value             { return Value{kind: KindNull} }
func String(s string) Value   { return Value{kind: KindString, str: s} }
func Integer(n int64) Value   { return Value{kind: KindInteger, num: n} }
func Array(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Field looks up a key on an object Value, reporting false if v is not an
// object or the key is absent.
func (v Value) Field(key string) (Value, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return Value{}, false
	}
	f, ok := obj[key]
	return f, ok
}

// Keys returns an object Value's field names in sorted order, for stable
// unknown-field diagnostics.
func (v Value) Keys() []string {
	obj, ok := v.AsObject()
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindInteger:
		return json.Marshal(v.num)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("document: unhandled kind %d", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler, preserving whole numbers as
// Integer values and rejecting fractional numbers, which this format has
// no use for.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("document: non-integer number %q", t.String())
		}
		return Integer(n), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return Object(fields), nil
	case bool:
		return Value{}, fmt.Errorf("%w: boolean values are not part of this document model", errs.ErrUnknownField)
	default:
		return Value{}, fmt.Errorf("document: unsupported JSON value of type %T", raw)
	}
}

// Parse decodes a JSON-encoded document into a Value tree.
func Parse(data []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Bytes renders a Value tree as JSON.
func (v Value) Bytes() ([]byte, error) {
	return json.Marshal(v)
}
