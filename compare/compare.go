// Package compare implements the result comparator every execution strategy
// uses to judge a submission's output against the expected value.
package compare

import (
	"encoding/json"
	"math"
	"reflect"
)

// FloatTolerance is the absolute tolerance applied when both values are
// numeric. It is a fixed property of the comparator, not a per-call option.
const FloatTolerance = 1e-9

// Equal reports whether actual matches expected.
//
// Rules, in order: two nils are equal and a single nil is not; two numerics
// (any Go integer or float width) are equal within FloatTolerance; two
// sequences are equal iff they have the same length and every element pair
// is Equal, in order; anything else falls back to canonical JSON
// serialization comparison (map keys are sorted by encoding/json, so
// mappings compare structurally). The function is pure and symmetric.
func Equal(expected, actual any) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	if ef, ok := asFloat(expected); ok {
		af, ok := asFloat(actual)
		if !ok {
			return false
		}
		return math.Abs(ef-af) < FloatTolerance
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)
	if isSequence(ev) {
		if !isSequence(av) {
			return false
		}
		if ev.Len() != av.Len() {
			return false
		}
		for i := 0; i < ev.Len(); i++ {
			if !Equal(ev.Index(i).Interface(), av.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	if isSequence(av) {
		return false
	}

	eb, err := json.Marshal(expected)
	if err != nil {
		return false
	}
	ab, err := json.Marshal(actual)
	if err != nil {
		return false
	}
	return string(eb) == string(ab)
}

func isSequence(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		// []byte is a string in disguise, not a sequence of numbers.
		return v.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
