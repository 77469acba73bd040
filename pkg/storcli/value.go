package storcli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind is the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a decoded JSON value from storcli output. Objects keep the key
// order storcli printed them in. Every value remembers where it was found so
// lookup failures name the full path.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  *Object
	path []string
}

// Object is an ordered JSON object.
type Object struct {
	keys   []string
	fields map[string]Value
}

// Keys returns the object keys in output order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// ParseValue decodes a single JSON document. Trailing data is an error.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec, nil)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, path []string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Value{kind: KindNull, path: path}, nil
	case bool:
		return Value{kind: KindBool, b: t, path: path}, nil
	case json.Number:
		return Value{kind: KindNumber, num: t, path: path}, nil
	case string:
		return Value{kind: KindString, str: t, path: path}, nil
	case json.Delim:
		switch t {
		case '[':
			var arr []Value
			for dec.More() {
				elem, err := decodeValue(dec, childPath(path, "["+strconv.Itoa(len(arr))+"]"))
				if err != nil {
					return Value{}, err
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, arr: arr, path: path}, nil
		case '{':
			obj := &Object{fields: make(map[string]Value)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				field, err := decodeValue(dec, childPath(path, key))
				if err != nil {
					return Value{}, err
				}
				if _, dup := obj.fields[key]; !dup {
					obj.keys = append(obj.keys, key)
				}
				obj.fields[key] = field
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindObject, obj: obj, path: path}, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func childPath(path []string, elem string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null or the zero Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Path returns the keys leading to v from the document root.
func (v Value) Path() []string { return append([]string(nil), v.path...) }

// Has reports whether v is an object containing key.
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj.fields[key]
	return ok
}

// Get returns the value stored under key. It fails with a *KeyError when
// the key is absent and a *TypeError when v is not an object.
func (v Value) Get(key string) (Value, error) {
	if v.kind != KindObject {
		return Value{}, &TypeError{Path: v.path, Want: KindObject, Got: v.kind}
	}
	field, ok := v.obj.fields[key]
	if !ok {
		return Value{}, &KeyError{Path: childPath(v.path, key)}
	}
	return field, nil
}

// Lookup follows a chain of object keys.
func (v Value) Lookup(keys ...string) (Value, error) {
	cur := v
	for _, key := range keys {
		next, err := cur.Get(key)
		if err != nil {
			return Value{}, err
		}
		cur = next
	}
	return cur, nil
}

// FirstOf returns the value of the first key in keys that v contains.
func (v Value) FirstOf(keys ...string) (Value, error) {
	if v.kind != KindObject {
		return Value{}, &TypeError{Path: v.path, Want: KindObject, Got: v.kind}
	}
	for _, key := range keys {
		if field, ok := v.obj.fields[key]; ok {
			return field, nil
		}
	}
	return Value{}, &KeyError{Path: childPath(v.path, strings.Join(keys, " | "))}
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindArray {
		return Value{}, &TypeError{Path: v.path, Want: KindArray, Got: v.kind}
	}
	if i < 0 || i >= len(v.arr) {
		return Value{}, &KeyError{Path: childPath(v.path, "["+strconv.Itoa(i)+"]")}
	}
	return v.arr[i], nil
}

// Len returns the number of elements of an array or keys of an object, and
// zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Array returns the elements of an array value.
func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, &TypeError{Path: v.path, Want: KindArray, Got: v.kind}
	}
	return append([]Value(nil), v.arr...), nil
}

// Object returns the ordered object behind v.
func (v Value) Object() (*Object, error) {
	if v.kind != KindObject {
		return nil, &TypeError{Path: v.path, Want: KindObject, Got: v.kind}
	}
	return v.obj, nil
}

// Str returns a string value.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Path: v.path, Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

// Int returns a number, or a string holding a number, as an integer.
func (v Value) Int() (int64, error) {
	switch v.kind {
	case KindNumber:
		return v.num.Int64()
	case KindString:
		return strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
	default:
		return 0, &TypeError{Path: v.path, Want: KindNumber, Got: v.kind}
	}
}

// Float returns a number, or a string holding a number, as a float.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num.Float64()
	case KindString:
		return strconv.ParseFloat(strings.TrimSpace(v.str), 64)
	default:
		return 0, &TypeError{Path: v.path, Want: KindNumber, Got: v.kind}
	}
}

// Bool returns a boolean value.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeError{Path: v.path, Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// Text renders any value as a string: strings as-is, numbers in their
// original notation, containers as compact JSON and null as "".
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	default:
		data, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Interface converts v to plain Go values (map[string]any, []any, string,
// json.Number, bool, nil). Key order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, elem := range v.arr {
			out[i] = elem.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, key := range v.obj.keys {
			out[key] = v.obj.fields[key].Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v keeping object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.num.String())
	case KindString:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindArray:
		buf.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elem.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, key := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			if err := v.obj.fields[key].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
