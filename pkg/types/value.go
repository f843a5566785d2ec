package types

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// Value is an arbitrary JSON-equivalent value: nil, bool, float64, string,
// []any or map[string]any once normalized.
type Value = any

// Map is a string-keyed mapping of values, the unit stores and codecs work on.
type Map = map[string]Value

// Normalize converts v into its canonical JSON form by encoding and decoding
// it. Integers become float64, structs and typed maps become map[string]any.
// Values that cannot be represented as JSON return an error.
func Normalize(v Value) (Value, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not representable as JSON: %w", err)
	}
	var out Value
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("value is not representable as JSON: %w", err)
	}
	return out, nil
}

// NormalizeMap normalizes every value of m into a new map.
func NormalizeMap(m Map) (Map, error) {
	if m == nil {
		return nil, nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		nv, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

// Clone returns a deep copy of v so callers never share memory with a cache.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		// Normalized values are plain maps, slices and scalars, which
		// copystructure always handles.
		panic(fmt.Sprintf("types: cannot clone value of type %T: %v", v, err))
	}
	return c
}

// CloneMap deep-copies m. A nil map stays nil.
func CloneMap(m Map) Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

// Equal reports whether two normalized values are structurally identical.
func Equal(a, b Value) bool {
	return reflect.DeepEqual(a, b)
}
