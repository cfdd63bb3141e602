package vals

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// FromGo converts a Go value, such as one produced by encoding/json, to a
// Value. Unsupported types are converted to their fmt representation.
func FromGo(x any) Value {
	switch x := x.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return Str(x)
	case float64:
		return Num(x)
	case float32:
		return Num(x)
	case int:
		return Num(x)
	case int64:
		return Num(x)
	case json.Number:
		f, _ := x.Float64()
		return Num(f)
	case []string:
		l := &List{}
		for _, s := range x {
			l.Elems = append(l.Elems, Str(s))
		}
		return l
	case []any:
		l := &List{}
		for _, e := range x {
			l.Elems = append(l.Elems, FromGo(e))
		}
		return l
	case map[string]any:
		o := NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.Set(k, FromGo(x[k]))
		}
		return o
	case map[string]string:
		o := NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.Set(k, Str(x[k]))
		}
		return o
	}
	return Str(fmt.Sprint(x))
}

// ToGo converts a Value to plain Go data suitable for encoding/json.
// Instances, modules and callables become their display strings.
func ToGo(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(v)
	case Num:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case Str:
		return string(v)
	case *List:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ToGo(e)
		}
		return out
	case *Object:
		return orderedObject{v}
	case interface{ Fields() *Object }:
		return orderedObject{v.Fields()}
	}
	return Repr(v)
}

// orderedObject marshals an Object with its keys in insertion order.
type orderedObject struct{ o *Object }

func (oo orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range oo.o.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(ToGo(oo.o.m[k]))
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}

// ToJSON encodes a value as JSON text.
func ToJSON(v Value) (string, error) {
	b, err := json.Marshal(ToGo(v))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromJSON decodes JSON text into a Value. Object keys keep the order in
// which they appear in the text.
func FromJSON(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '[':
			l := &List{}
			for dec.More() {
				e, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				l.Elems = append(l.Elems, e)
			}
			_, err := dec.Token()
			return l, err
		case '{':
			o := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				o.Set(kt.(string), v)
			}
			_, err := dec.Token()
			return o, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", tok)
	default:
		return FromGo(tok), nil
	}
}
