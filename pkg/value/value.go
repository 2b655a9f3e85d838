package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
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
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the engine's closed, tagged representation of a JSON-shaped
// value: Null, Bool, Int, Float, String, Array of Value, or Object
// keyed by string. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind

	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string
	arrayVal  []Value
	objectVal map[string]Value
}

// Null returns the Null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, boolVal: b} }

// Int wraps a 64-bit integer.
func Int(i int64) Value { return Value{Kind: KindInt, intVal: i} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{Kind: KindFloat, floatVal: f} }

// String wraps a string, preserved verbatim including embedded quotes.
func String(s string) Value { return Value{Kind: KindString, stringVal: s} }

// Array wraps a slice of Value.
func Array(items []Value) Value { return Value{Kind: KindArray, arrayVal: items} }

// Object wraps a map of string to Value. A defensive copy is not made;
// callers should treat the map as owned by the Value once constructed.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{Kind: KindObject, objectVal: fields}
}

// EmptyObject returns a fresh, mutable empty Object.
func EmptyObject() Value {
	return Value{Kind: KindObject, objectVal: map[string]Value{}}
}

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Bool returns the boolean payload; false if v is not a Bool.
func (v Value) Bool() bool { return v.boolVal }

// Int returns the integer payload; zero if v is not an Int.
func (v Value) Int() int64 { return v.intVal }

// Float returns the float payload. Int values are widened.
func (v Value) Float() float64 {
	if v.Kind == KindInt {
		return float64(v.intVal)
	}
	return v.floatVal
}

// String returns the string payload; empty if v is not a String.
func (v Value) String() string { return v.stringVal }

// Array returns the array payload; nil if v is not an Array.
func (v Value) Array() []Value { return v.arrayVal }

// Object returns the underlying field map; nil if v is not an Object.
// The returned map is shared with v — mutate through Set, not directly,
// unless building a fresh Value that nothing else references yet.
func (v Value) Object() map[string]Value { return v.objectVal }

// Get looks up a single, non-dotted key on an Object. Returns Null and
// false for any other Kind or a missing key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Null(), false
	}
	val, ok := v.objectVal[key]
	return val, ok
}

// WithField returns a copy of v (which must be an Object, or Null) with
// key set to val. Used by the resolver when it needs to create
// intermediate objects without mutating a shared parent.
func (v Value) WithField(key string, val Value) Value {
	var fields map[string]Value
	if v.Kind == KindObject {
		fields = make(map[string]Value, len(v.objectVal)+1)
		for k, existing := range v.objectVal {
			fields[k] = existing
		}
	} else {
		fields = make(map[string]Value, 1)
	}
	fields[key] = val
	return Object(fields)
}

// Equal reports deep structural equality, used by tests.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intVal == b.intVal
	case KindFloat:
		return a.floatVal == b.floatVal
	case KindString:
		return a.stringVal == b.stringVal
	case KindArray:
		if len(a.arrayVal) != len(b.arrayVal) {
			return false
		}
		for i := range a.arrayVal {
			if !Equal(a.arrayVal[i], b.arrayVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.objectVal) != len(b.objectVal) {
			return false
		}
		for k, av := range a.objectVal {
			bv, ok := b.objectVal[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolVal)
	case KindInt:
		return json.Marshal(v.intVal)
	case KindFloat:
		return json.Marshal(v.floatVal)
	case KindString:
		return json.Marshal(v.stringVal)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.arrayVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		keys := make([]string, 0, len(v.objectVal))
		for k := range v.objectVal {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := v.objectVal[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("value: unknown kind %d", v.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler, decoding into the closed
// variant set. JSON numbers without a fractional part or exponent
// become Int; everything else numeric becomes Float.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = fromRaw(raw)
	return nil
}

func fromRaw(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i)
		}
		f, _ := t.Float64()
		return Float(f)
	case string:
		return String(t)
	case []interface{}:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = fromRaw(item)
		}
		return Array(items)
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = fromRaw(item)
		}
		return Object(fields)
	default:
		return Null()
	}
}

// FromJSON parses raw JSON bytes into a Value.
func FromJSON(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Null(), err
	}
	return v, nil
}

// FromInterface converts a generic Go value — as produced by
// gopkg.in/yaml.v3 decoding into interface{}, or by any other decoder
// that yields the usual dynamic-typing set — into a Value. This is the
// profile loader's bridge from YAML filter/default literals into the
// engine's closed variant (value.Value has no YAML (un)marshaler of
// its own; profile.go decodes filter literals as interface{} and
// calls this).
func FromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case string:
		return String(t)
	case []interface{}:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromInterface(item)
		}
		return Array(items)
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = FromInterface(item)
		}
		return Object(fields)
	case map[interface{}]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[fmt.Sprintf("%v", k)] = FromInterface(item)
		}
		return Object(fields)
	default:
		return Null()
	}
}
